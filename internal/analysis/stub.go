package analysis

import (
	"context"

	"github.com/AdityaPradhan01/Bloom/internal/models"
)

// StubAnalyzer returns a canned analysis without any network call.
// Useful for frontend development and offline testing.
type StubAnalyzer struct{}

func NewStubAnalyzer() *StubAnalyzer { return &StubAnalyzer{} }

func (s *StubAnalyzer) Load(ctx context.Context) error { return nil }

func (s *StubAnalyzer) Analyze(ctx context.Context, imageData []byte) (*models.AnalysisResult, error) {
	result := &models.AnalysisResult{
		ProductName: "Sample Oat Drink",
		HealthScore: 72,
		Composition: []models.Ingredient{
			{Name: "Oats", Purpose: "Base ingredient", HealthImpact: models.ImpactPositive},
			{Name: "Rapeseed oil", Purpose: "Texture and mouthfeel", HealthImpact: models.ImpactNeutral},
			{Name: "Dipotassium phosphate", Purpose: "Acidity regulator", HealthImpact: models.ImpactNegative},
		},
		ProcessingMethod: "UHT treated and homogenized",
		Quantities: []models.NutritionValue{
			{Label: "Sugars", Amount: "4.0", Unit: "g", Level: models.LevelModerate},
			{Label: "Sodium", Amount: "0.1", Unit: "g", Level: models.LevelLow},
		},
		VisualMarkers: []models.VisualMarker{
			{Location: "Lower right nutrition table", Issue: "Added stabilizers listed in fine print", Severity: models.SeverityLow},
		},
		DetailedBreakdown: "Stub analysis generated without contacting the model service.",
		DailyImpact: models.DailyImpact{
			ShortTerm: "No notable short-term effect.",
			LongTerm:  "Acceptable as a regular dairy substitute.",
			Verdict:   models.VerdictGood,
		},
	}
	stampResult(result, imageData)
	return result, nil
}
