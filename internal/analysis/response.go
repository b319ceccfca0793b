package analysis

import (
	"encoding/json"
	"strings"

	"github.com/AdityaPradhan01/Bloom/internal/models"
)

// decodeAnalysis turns the raw model output into an AnalysisResult,
// applying the validation steps in order: empty check, fence stripping,
// JSON parse, then the heuristic acceptance gate.
func decodeAnalysis(text string) (*models.AnalysisResult, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil, newError(KindEmptyResponse, nil)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(extractJSON(cleaned)), &result); err != nil {
		return nil, newError(KindUnclassified, err)
	}

	if err := vetResult(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// vetResult is the heuristic acceptance gate. A result that looks like the
// model could not identify the product is rejected only when the breakdown
// text names a recognizable cause; otherwise it is accepted as-is, even
// with an "unknown"-like name. That loose acceptance is intentional.
func vetResult(r *models.AnalysisResult) error {
	name := strings.ToLower(r.ProductName)
	if !strings.Contains(name, "unknown") && r.ProductName != "" && r.HealthScore != 0 {
		return nil
	}

	breakdown := strings.ToLower(r.DetailedBreakdown)
	if strings.Contains(breakdown, "blurry") || strings.Contains(breakdown, "unreadable") {
		return newError(KindImageBlurry, nil)
	}
	if strings.Contains(breakdown, "not a label") || strings.Contains(breakdown, "no ingredients") {
		return newError(KindNotALabel, nil)
	}
	return nil
}

// extractJSON strips a markdown code fence around the model output, or
// falls back to the outermost brace pair. Models occasionally wrap the
// JSON even when told not to.
func extractJSON(response string) string {
	const marker = "```"

	startIdx := strings.Index(response, marker)
	if startIdx == -1 {
		openIdx := strings.Index(response, "{")
		closeIdx := strings.LastIndex(response, "}")
		if openIdx == -1 || closeIdx == -1 || closeIdx < openIdx {
			return response
		}
		return strings.TrimSpace(response[openIdx : closeIdx+1])
	}

	rest := response[startIdx+len(marker):]
	endIdx := strings.Index(rest, marker)
	if endIdx == -1 {
		return response
	}
	content := strings.TrimSpace(rest[:endIdx])
	content = strings.TrimPrefix(content, "json")
	return strings.TrimSpace(content)
}
