package app

import "github.com/AdityaPradhan01/Bloom/internal/models"

// State is the single active application screen/mode. Exactly one State is
// active at a time; there are no stacked or concurrent states.
type State int

const (
	StateLanding State = iota
	StateAuth
	StateDashboard
	StateHistory
	StateIdle // scanner open, waiting for a capture
	StateProcessing
	StateResult
	StateSettings
)

func (s State) String() string {
	switch s {
	case StateLanding:
		return "landing"
	case StateAuth:
		return "auth"
	case StateDashboard:
		return "dashboard"
	case StateHistory:
		return "history"
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateResult:
		return "result"
	case StateSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ResultView is the payload carried by StateResult: the record being shown
// and its origin, which decides where the back action returns to.
type ResultView struct {
	Record      models.AnalysisResult `json:"record"`
	FromHistory bool                  `json:"fromHistory"`
}
