package analysis

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"github.com/AdityaPradhan01/Bloom/internal/models"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const defaultModel = "gemini-2.0-flash"

// labelPrompt fixes the output schema the model must produce. The
// unreadability constraint is what the acceptance gate in response.go
// keys on.
const labelPrompt = `Analyze this product label image with high-fidelity technical precision.
Return a structured JSON object.

1. productName: The commercial name of the product.
2. healthScore: Integer 0-100 based on nutritional density and chemical safety.
3. composition: Array of {name, purpose, healthImpact}. healthImpact must be one of: 'positive', 'neutral', 'negative'.
4. processingMethod: A concise technical description of how it was manufactured (e.g. "Ultra-pasteurized and homogenized").
5. quantities: Array of {label, amount, unit, level}. level must be one of: 'low', 'moderate', 'high'. Focus on critical items like Sugars, Saturated Fat, Sodium.
6. visualMarkers: Array of {location, issue, severity}. severity must be one of: 'low', 'medium', 'high'. Be spatially descriptive (e.g. "Upper half ingredient block").
7. detailedBreakdown: A technical 3-paragraph summary.
8. dailyImpact: {shortTerm, longTerm, verdict}. verdict must be one of: 'Excellent', 'Good', 'Fair', 'Caution', 'Avoid'.

Constraint: If parts of the text are unreadable, make the most educated guess based on context.
If the image is completely unreadable, blurry, or not a product label, set productName to "Unknown" and describe the issue in detailedBreakdown (e.g., "The image is too blurry to read the ingredients").
Strictness: Return ONLY valid JSON.`

// GoogleAnalyzer implements Analyzer on Vertex AI Gemini.
type GoogleAnalyzer struct {
	config Config
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGoogleAnalyzer creates an unloaded Google analyzer.
func NewGoogleAnalyzer(cfg Config) *GoogleAnalyzer {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &GoogleAnalyzer{config: cfg}
}

// Load creates the Vertex AI client.
func (a *GoogleAnalyzer) Load(ctx context.Context) error {
	opts := []option.ClientOption{}
	if a.config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(a.config.CredentialsFile))
	}

	client, err := genai.NewClient(ctx, a.config.ProjectID, a.config.Location, opts...)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	a.client = client
	model := client.GenerativeModel(a.config.Model)
	model.GenerationConfig.ResponseMIMEType = "application/json"
	a.model = model
	return nil
}

// Analyze sends a single request, no streaming and no multi-turn exchange,
// and runs the response through the validation pipeline. The accepted
// result is stamped with a fresh id, the current timestamp and the source
// image re-encoded as a data URI.
func (a *GoogleAnalyzer) Analyze(ctx context.Context, imageData []byte) (*models.AnalysisResult, error) {
	if a.model == nil {
		return nil, fmt.Errorf("analyzer not loaded")
	}

	img := genai.ImageData("image/jpeg", imageData)
	resp, err := a.model.GenerateContent(ctx, img, genai.Text(labelPrompt))
	if err != nil {
		return nil, newError(classifyText(err.Error()), err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, newError(KindEmptyResponse, nil)
	}
	textContent := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	result, err := decodeAnalysis(textContent)
	if err != nil {
		return nil, err
	}

	stampResult(result, imageData)
	return result, nil
}

func stampResult(r *models.AnalysisResult, imageData []byte) {
	r.ID = uuid.New().String()
	r.Timestamp = time.Now().UnixMilli()
	r.CapturedImage = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageData)
}
