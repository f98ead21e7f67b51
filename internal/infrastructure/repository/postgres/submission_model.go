package postgres

import (
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/pickem-league/internal/domain/submission"
)

type submissionTableModel struct {
	PublicID            string    `db:"public_id"`
	UserID              string    `db:"user_id"`
	WeekID              string    `db:"week_id"`
	Tier                int       `db:"tier"`
	TieBreakerPoints    int       `db:"tie_breaker_points"`
	Picks               string    `db:"picks"`
	SubmittedAt         time.Time `db:"submitted_at"`
	IsSettled           bool      `db:"is_settled"`
	TotalCorrectPicks   int       `db:"total_correct_picks"`
	TotalWinnerBucksWon float64   `db:"total_winner_bucks_won"`
}

func (m submissionTableModel) toDomain() (submission.Submission, error) {
	picks, err := unmarshalPicks(m.Picks)
	if err != nil {
		return submission.Submission{}, err
	}

	return submission.Submission{
		ID:                  m.PublicID,
		UserID:              m.UserID,
		WeekID:              m.WeekID,
		Tier:                submission.Tier(m.Tier),
		TieBreakerPoints:    m.TieBreakerPoints,
		Picks:               picks,
		SubmittedAt:         m.SubmittedAt.UTC(),
		IsSettled:           m.IsSettled,
		TotalCorrectPicks:   m.TotalCorrectPicks,
		TotalWinnerBucksWon: m.TotalWinnerBucksWon,
	}, nil
}

type submissionInsertModel struct {
	PublicID         string    `db:"public_id"`
	UserID           string    `db:"user_id"`
	WeekID           string    `db:"week_id"`
	Tier             int       `db:"tier"`
	TieBreakerPoints int       `db:"tie_breaker_points"`
	Picks            string    `db:"picks"`
	SubmittedAt      time.Time `db:"submitted_at"`
}

type submissionPickModel struct {
	GameID   string  `json:"game_id"`
	Team     string  `json:"team"`
	Tier     int     `json:"tier"`
	Outcome  string  `json:"outcome"`
	Winnings float64 `json:"winnings"`
}

func marshalPicks(picks map[string]submission.Pick) (string, error) {
	if len(picks) == 0 {
		return "{}", nil
	}
	models := make(map[string]submissionPickModel, len(picks))
	for gameID, pick := range picks {
		models[gameID] = submissionPickModel{
			GameID:   pick.GameID,
			Team:     pick.Team,
			Tier:     int(pick.Tier),
			Outcome:  string(pick.Outcome),
			Winnings: pick.Winnings,
		}
	}
	raw, err := sonic.Marshal(models)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalPicks(raw string) (map[string]submission.Pick, error) {
	picks := make(map[string]submission.Pick)
	if raw == "" || raw == "{}" {
		return picks, nil
	}
	models := make(map[string]submissionPickModel)
	if err := sonic.Unmarshal([]byte(raw), &models); err != nil {
		return nil, err
	}
	for gameID, model := range models {
		picks[gameID] = submission.Pick{
			GameID:   model.GameID,
			Team:     model.Team,
			Tier:     submission.Tier(model.Tier),
			Outcome:  submission.Outcome(model.Outcome),
			Winnings: model.Winnings,
		}
	}
	return picks, nil
}

// mergeSettledPicks folds a settlement update into the stored picks. A
// decided stored pick always wins over whatever the update carries.
func mergeSettledPicks(current, update map[string]submission.Pick) map[string]submission.Pick {
	merged := make(map[string]submission.Pick, len(current))
	for gameID, pick := range current {
		merged[gameID] = pick
	}
	for gameID, pick := range update {
		if existing, ok := merged[gameID]; ok && existing.Outcome.Decided() {
			continue
		}
		merged[gameID] = pick
	}
	return merged
}
