package app

import (
	"context"
	"fmt"

	"github.com/AdityaPradhan01/Bloom/internal/analysis"
	"github.com/AdityaPradhan01/Bloom/internal/models"
	"github.com/AdityaPradhan01/Bloom/internal/session"
	"github.com/google/uuid"
)

// Machine drives the application through its finite set of states. All
// events arrive from a single event-handling context, so no locking is
// used. Every profile mutation builds a fresh User value and goes through
// setUser, which persists the replacement; fields are never edited in
// place behind the store's back.
type Machine struct {
	store    session.Store
	analyzer analysis.Analyzer

	state  State
	user   *models.User
	result *ResultView
	banner string // error overlay, orthogonal to state; empty means hidden
}

// NewMachine creates a machine, rehydrating the profile from the store.
// With a stored profile the machine starts at Dashboard, otherwise at
// Landing.
func NewMachine(ctx context.Context, store session.Store, analyzer analysis.Analyzer) (*Machine, error) {
	m := &Machine{
		store:    store,
		analyzer: analyzer,
		state:    StateLanding,
	}

	user, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if user != nil {
		m.user = user
		m.state = StateDashboard
	}
	return m, nil
}

// State returns the active state.
func (m *Machine) State() State { return m.state }

// User returns the current profile, nil when unauthenticated.
func (m *Machine) User() *models.User { return m.user }

// Result returns the payload shown in StateResult, nil otherwise.
func (m *Machine) Result() *ResultView { return m.result }

// Banner returns the error overlay text, empty when hidden.
func (m *Machine) Banner() string { return m.banner }

func (m *Machine) require(event string, allowed ...State) error {
	for _, s := range allowed {
		if m.state == s {
			return nil
		}
	}
	return fmt.Errorf("event %q not valid in state %s", event, m.state)
}

// setUser replaces the profile and persists the replacement.
func (m *Machine) setUser(ctx context.Context, user *models.User) error {
	m.user = user
	if err := m.store.Save(ctx, user); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Start moves from the landing screen to authentication.
func (m *Machine) Start() error {
	if err := m.require("start", StateLanding); err != nil {
		return err
	}
	m.state = StateAuth
	return nil
}

// Authenticate accepts any submitted identity and creates the profile with
// default preferences and an empty history. There is no credential check;
// blank fields fall back to placeholder identities.
func (m *Machine) Authenticate(ctx context.Context, email, name string) error {
	if err := m.require("authenticate", StateAuth); err != nil {
		return err
	}
	if email == "" {
		email = "operator@bloom.ai"
	}
	if name == "" {
		name = "New Operator"
	}

	user := &models.User{
		ID:    "usr_" + uuid.New().String(),
		Email: email,
		Name:  name,
		Preferences: models.Preferences{
			Diet:       "Standard",
			Allergies:  []string{},
			Monitoring: []string{"Sugars", "Sodium", "Additives"},
			Theme:      models.ThemeDark,
		},
		History: []models.AnalysisResult{},
	}
	if err := m.setUser(ctx, user); err != nil {
		return err
	}
	m.state = StateDashboard
	return nil
}

// StartScan opens the scanner.
func (m *Machine) StartScan() error {
	if err := m.require("start_scan", StateDashboard); err != nil {
		return err
	}
	m.state = StateIdle
	return nil
}

// QuitScan abandons the scanner without submitting.
func (m *Machine) QuitScan() error {
	if err := m.require("quit_scan", StateIdle); err != nil {
		return err
	}
	m.state = StateDashboard
	return nil
}

// SubmitImage sends a captured or uploaded image through the analysis
// gateway. Entering Processing is the in-flight exclusion: no second
// submission can be issued before this one settles, and there is no
// cancellation. Success lands on Result and appends to history; failure
// lands back on Dashboard with the classified message in the banner.
// Accepted from Idle (camera capture) and Dashboard (direct upload).
func (m *Machine) SubmitImage(ctx context.Context, imageData []byte) error {
	if err := m.require("submit_image", StateIdle, StateDashboard); err != nil {
		return err
	}
	m.state = StateProcessing
	m.banner = ""
	m.result = nil

	result, err := m.analyzer.Analyze(ctx, imageData)
	if err != nil {
		m.banner = analysis.UserMessage(err)
		m.state = StateDashboard
		return nil
	}

	if m.user != nil {
		if err := m.setUser(ctx, session.AppendHistory(m.user, *result)); err != nil {
			return err
		}
	}
	m.result = &ResultView{Record: *result, FromHistory: false}
	m.state = StateResult
	return nil
}

// SelectRecord shows an existing history record. The origin (Dashboard or
// History) travels with the Result payload and decides where CloseResult
// returns to.
func (m *Machine) SelectRecord(id string) error {
	if err := m.require("select_record", StateDashboard, StateHistory); err != nil {
		return err
	}
	if m.user == nil {
		return fmt.Errorf("select_record without an authenticated user")
	}

	for _, r := range m.user.History {
		if r.ID == id {
			m.result = &ResultView{Record: r, FromHistory: m.state == StateHistory}
			m.state = StateResult
			return nil
		}
	}
	return fmt.Errorf("no history record with id %s", id)
}

// CloseResult leaves the result view, returning to the history list when
// the record was opened from there, otherwise to the dashboard. The
// payload and the error banner are cleared.
func (m *Machine) CloseResult() error {
	if err := m.require("close_result", StateResult); err != nil {
		return err
	}
	target := StateDashboard
	if m.result != nil && m.result.FromHistory {
		target = StateHistory
	}
	m.result = nil
	m.banner = ""
	m.state = target
	return nil
}

// ViewHistory opens the history list.
func (m *Machine) ViewHistory() error {
	if err := m.require("view_history", StateDashboard); err != nil {
		return err
	}
	m.state = StateHistory
	return nil
}

// Back returns from the history list or settings to the dashboard.
func (m *Machine) Back() error {
	if err := m.require("back", StateHistory, StateSettings); err != nil {
		return err
	}
	m.state = StateDashboard
	return nil
}

// OpenSettings opens the settings screen.
func (m *Machine) OpenSettings() error {
	if err := m.require("open_settings", StateDashboard, StateHistory, StateResult); err != nil {
		return err
	}
	m.result = nil
	m.state = StateSettings
	return nil
}

// SetTheme switches the profile theme.
func (m *Machine) SetTheme(ctx context.Context, theme models.Theme) error {
	if err := m.require("set_theme", StateSettings); err != nil {
		return err
	}
	if theme != models.ThemeLight && theme != models.ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	updated := *m.user
	updated.Preferences.Theme = theme
	return m.setUser(ctx, &updated)
}

// SetDiet switches the profile diet category.
func (m *Machine) SetDiet(ctx context.Context, diet string) error {
	if err := m.require("set_diet", StateSettings); err != nil {
		return err
	}
	updated := *m.user
	updated.Preferences.Diet = diet
	return m.setUser(ctx, &updated)
}

// Logout destroys the profile, clears the durable slot and returns to the
// landing screen.
func (m *Machine) Logout(ctx context.Context) error {
	if err := m.require("logout", StateSettings); err != nil {
		return err
	}
	if err := m.setUser(ctx, nil); err != nil {
		return err
	}
	m.result = nil
	m.banner = ""
	m.state = StateLanding
	return nil
}

// DismissError hides the error banner without changing state.
func (m *Machine) DismissError() {
	m.banner = ""
}

// RetryScan dismisses the error banner and reopens the scanner.
func (m *Machine) RetryScan() error {
	if err := m.require("retry_scan", StateDashboard); err != nil {
		return err
	}
	m.banner = ""
	m.state = StateIdle
	return nil
}
