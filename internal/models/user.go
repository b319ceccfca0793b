package models

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Preferences holds the per-profile settings.
// Allergies is carried for forward compatibility; nothing populates it yet.
type Preferences struct {
	Diet       string   `json:"diet"`
	Allergies  []string `json:"allergies"`
	Monitoring []string `json:"monitoring"`
	Theme      Theme    `json:"theme"`
}

// User is the single local profile. Exactly one exists in memory and in
// storage at a time. History is ordered newest first and capped at
// MaxHistory entries.
type User struct {
	ID          string           `json:"id"`
	Email       string           `json:"email"`
	Name        string           `json:"name"`
	Preferences Preferences      `json:"preferences"`
	History     []AnalysisResult `json:"history"`
}

// MaxHistory is the history cap; inserting past it drops the oldest entry.
const MaxHistory = 50
