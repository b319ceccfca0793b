package analysis

import (
	"context"
	"fmt"
	"os"

	"github.com/AdityaPradhan01/Bloom/internal/models"
)

// Analyzer turns a product label image into a structured analysis.
type Analyzer interface {
	// Load initializes the analyzer and its client connections.
	Load(ctx context.Context) error
	// Analyze sends one label image for analysis. It either returns a
	// complete AnalysisResult or a classified *Error; raw transport
	// errors never escape.
	Analyze(ctx context.Context, imageData []byte) (*models.AnalysisResult, error)
}

// Config selects and configures an analyzer backend.
type Config struct {
	Provider        string `json:"provider"` // "google" or "stub"
	ProjectID       string `json:"project_id"`
	Location        string `json:"location"`
	CredentialsFile string `json:"credentials_file"`
	Model           string `json:"model"`
}

// FillFromEnv backfills credentials left empty by the config file.
func (c *Config) FillFromEnv() {
	if c.ProjectID == "" {
		c.ProjectID = os.Getenv("GOOGLE_PROJECT_ID")
	}
	if c.Location == "" {
		c.Location = os.Getenv("GOOGLE_LOCATION")
	}
	if c.CredentialsFile == "" {
		c.CredentialsFile = os.Getenv("GOOGLE_CREDENTIALS_FILE")
	}
}

// New creates an analyzer for the configured provider.
func New(cfg Config) (Analyzer, error) {
	cfg.FillFromEnv()
	switch cfg.Provider {
	case "google":
		return NewGoogleAnalyzer(cfg), nil
	case "stub":
		return NewStubAnalyzer(), nil
	default:
		return nil, fmt.Errorf("unsupported analyzer provider: %s", cfg.Provider)
	}
}
