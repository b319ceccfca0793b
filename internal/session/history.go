package session

import "github.com/AdityaPradhan01/Bloom/internal/models"

// AppendHistory returns a new User with result prepended to the history,
// truncated to the most recent models.MaxHistory entries. The input user
// is not mutated; every mutation path replaces the whole value so that
// persistence stays observably synchronized.
func AppendHistory(user *models.User, result models.AnalysisResult) *models.User {
	updated := *user

	history := make([]models.AnalysisResult, 0, len(user.History)+1)
	history = append(history, result)
	history = append(history, user.History...)
	if len(history) > models.MaxHistory {
		history = history[:models.MaxHistory]
	}

	updated.History = history
	return &updated
}
