package models

// HealthImpact rates a single ingredient.
type HealthImpact string

const (
	ImpactPositive HealthImpact = "positive"
	ImpactNeutral  HealthImpact = "neutral"
	ImpactNegative HealthImpact = "negative"
)

// Level rates a nutrition value against daily guidance.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// Severity rates a visual marker found on the label.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Verdict is the five-point qualitative health rating of a product.
type Verdict string

const (
	VerdictExcellent Verdict = "Excellent"
	VerdictGood      Verdict = "Good"
	VerdictFair      Verdict = "Fair"
	VerdictCaution   Verdict = "Caution"
	VerdictAvoid     Verdict = "Avoid"
)

// Ingredient is one entry of the label's composition list.
type Ingredient struct {
	Name         string       `json:"name"`
	Purpose      string       `json:"purpose"`
	HealthImpact HealthImpact `json:"healthImpact"`
}

// NutritionValue is one quantified nutrient from the label.
type NutritionValue struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Level  Level  `json:"level"`
}

// VisualMarker describes an issue spotted at a location on the label image.
type VisualMarker struct {
	Location string   `json:"location"`
	Issue    string   `json:"issue"`
	Severity Severity `json:"severity"`
}

// DailyImpact summarizes what regular consumption means for the user.
type DailyImpact struct {
	ShortTerm string  `json:"shortTerm"`
	LongTerm  string  `json:"longTerm"`
	Verdict   Verdict `json:"verdict"`
}

// AnalysisResult is one completed label analysis. Once created it is
// immutable: it is only ever appended to or read from history.
type AnalysisResult struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"` // milliseconds since epoch

	ProductName       string           `json:"productName"`
	HealthScore       int              `json:"healthScore"` // 0-100
	Composition       []Ingredient     `json:"composition"`
	ProcessingMethod  string           `json:"processingMethod"`
	Quantities        []NutritionValue `json:"quantities"`
	VisualMarkers     []VisualMarker   `json:"visualMarkers"`
	DetailedBreakdown string           `json:"detailedBreakdown"`
	DailyImpact       DailyImpact      `json:"dailyImpact"`

	// CapturedImage is the source image re-encoded as a data URI,
	// retained for later display.
	CapturedImage string `json:"capturedImage,omitempty"`
}
