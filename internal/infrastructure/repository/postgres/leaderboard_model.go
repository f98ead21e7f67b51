package postgres

import (
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
)

type leaderboardTableModel struct {
	WeekID                      string    `db:"week_id"`
	Entries                     string    `db:"entries"`
	ActualTieBreakerTotalPoints int       `db:"actual_tie_breaker_total_points"`
	BuiltAt                     time.Time `db:"built_at"`
}

type leaderboardEntryModel struct {
	UserID              string  `json:"user_id"`
	Username            string  `json:"username"`
	TotalCorrectPicks   int     `json:"total_correct_picks"`
	TotalWinnerBucksWon float64 `json:"total_winner_bucks_won"`
	TieBreakerPoints    int     `json:"tie_breaker_points"`
}

func (m leaderboardTableModel) toDomain() (leaderboard.Leaderboard, error) {
	var models []leaderboardEntryModel
	if m.Entries != "" && m.Entries != "[]" {
		if err := sonic.Unmarshal([]byte(m.Entries), &models); err != nil {
			return leaderboard.Leaderboard{}, err
		}
	}

	entries := make([]leaderboard.Entry, 0, len(models))
	for _, model := range models {
		entries = append(entries, leaderboard.Entry{
			UserID:              model.UserID,
			Username:            model.Username,
			TotalCorrectPicks:   model.TotalCorrectPicks,
			TotalWinnerBucksWon: model.TotalWinnerBucksWon,
			TieBreakerPoints:    model.TieBreakerPoints,
		})
	}

	return leaderboard.Leaderboard{
		WeekID:                      m.WeekID,
		Entries:                     entries,
		ActualTieBreakerTotalPoints: m.ActualTieBreakerTotalPoints,
		BuiltAt:                     m.BuiltAt.UTC(),
	}, nil
}

// marshalLeaderboardEntries keeps the ranked order, JSON arrays are ordered.
func marshalLeaderboardEntries(entries []leaderboard.Entry) (string, error) {
	if len(entries) == 0 {
		return "[]", nil
	}
	models := make([]leaderboardEntryModel, 0, len(entries))
	for _, entry := range entries {
		models = append(models, leaderboardEntryModel{
			UserID:              entry.UserID,
			Username:            entry.Username,
			TotalCorrectPicks:   entry.TotalCorrectPicks,
			TotalWinnerBucksWon: entry.TotalWinnerBucksWon,
			TieBreakerPoints:    entry.TieBreakerPoints,
		})
	}
	raw, err := sonic.Marshal(models)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
