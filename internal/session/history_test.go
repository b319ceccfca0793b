package session

import (
	"fmt"
	"testing"

	"github.com/AdityaPradhan01/Bloom/internal/models"
)

func makeResult(n int) models.AnalysisResult {
	return models.AnalysisResult{
		ID:          fmt.Sprintf("res_%03d", n),
		Timestamp:   int64(n),
		ProductName: fmt.Sprintf("Product %d", n),
		HealthScore: 50,
	}
}

func TestAppendHistoryPrepends(t *testing.T) {
	user := &models.User{ID: "usr_1", History: []models.AnalysisResult{makeResult(1)}}

	updated := AppendHistory(user, makeResult(2))

	if len(updated.History) != 2 {
		t.Fatalf("len(History) = %d, want 2", len(updated.History))
	}
	if updated.History[0].ID != "res_002" {
		t.Errorf("History[0].ID = %s, want res_002 (newest first)", updated.History[0].ID)
	}
	if updated.History[1].ID != "res_001" {
		t.Errorf("History[1].ID = %s, want res_001", updated.History[1].ID)
	}
}

func TestAppendHistoryTruncatesAtCap(t *testing.T) {
	user := &models.User{ID: "usr_1"}
	for i := 0; i < models.MaxHistory; i++ {
		user.History = append(user.History, makeResult(i))
	}
	// user.History is oldest-last by construction: entry 0 is at index 0.
	// Reverse so it is newest-first like real history.
	for i, j := 0, len(user.History)-1; i < j; i, j = i+1, j-1 {
		user.History[i], user.History[j] = user.History[j], user.History[i]
	}
	oldestID := user.History[len(user.History)-1].ID

	updated := AppendHistory(user, makeResult(models.MaxHistory))

	if len(updated.History) != models.MaxHistory {
		t.Fatalf("len(History) = %d, want %d", len(updated.History), models.MaxHistory)
	}
	if updated.History[0].ID != fmt.Sprintf("res_%03d", models.MaxHistory) {
		t.Errorf("History[0].ID = %s, want the new entry first", updated.History[0].ID)
	}
	for _, r := range updated.History {
		if r.ID == oldestID {
			t.Errorf("oldest entry %s survived the truncation", oldestID)
		}
	}
}

func TestAppendHistoryDoesNotMutateInput(t *testing.T) {
	user := &models.User{ID: "usr_1", History: []models.AnalysisResult{makeResult(1)}}

	_ = AppendHistory(user, makeResult(2))

	if len(user.History) != 1 {
		t.Errorf("input history length changed to %d", len(user.History))
	}
	if user.History[0].ID != "res_001" {
		t.Errorf("input history head changed to %s", user.History[0].ID)
	}
}
