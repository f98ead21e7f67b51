package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

type weekTableModel struct {
	WeekID                      string    `db:"week_id"`
	BettingWindowStart          time.Time `db:"betting_window_start"`
	BettingWindowEnd            time.Time `db:"betting_window_end"`
	PicksRevealTime             time.Time `db:"picks_reveal_time"`
	TieBreakerGameID            string    `db:"tie_breaker_game_id"`
	ActualTieBreakerTotalPoints *int      `db:"actual_tie_breaker_total_points"`
	CreatedAt                   time.Time `db:"created_at"`
	UpdatedAt                   time.Time `db:"updated_at"`
}

func (m weekTableModel) toDomain() week.Week {
	return week.Week{
		ID:                          m.WeekID,
		BettingWindowStart:          m.BettingWindowStart,
		BettingWindowEnd:            m.BettingWindowEnd,
		PicksRevealTime:             m.PicksRevealTime,
		TieBreakerGameID:            m.TieBreakerGameID,
		ActualTieBreakerTotalPoints: m.ActualTieBreakerTotalPoints,
		CreatedAt:                   m.CreatedAt,
		UpdatedAt:                   m.UpdatedAt,
	}
}

type weekGameTableModel struct {
	GameID       string     `db:"game_id"`
	HomeTeam     string     `db:"home_team"`
	AwayTeam     string     `db:"away_team"`
	CommenceTime *time.Time `db:"commence_time"`
	Moneyline    string     `db:"moneyline"`
	HomeScore    *int       `db:"home_score"`
	AwayScore    *int       `db:"away_score"`
	Completed    bool       `db:"completed"`
}

func (m weekGameTableModel) toDomain() (week.Game, error) {
	game := week.Game{
		ID:        m.GameID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Completed: m.Completed,
	}
	if m.CommenceTime != nil {
		game.CommenceTime = m.CommenceTime.UTC()
	}
	if m.Moneyline != "" && m.Moneyline != "{}" {
		moneyline := make(map[string]int)
		if err := sonic.Unmarshal([]byte(m.Moneyline), &moneyline); err != nil {
			return week.Game{}, fmt.Errorf("decode moneyline: %w", err)
		}
		game.Moneyline = moneyline
	}
	return game, nil
}

func marshalMoneyline(moneyline map[string]int) (string, error) {
	if len(moneyline) == 0 {
		return "{}", nil
	}
	raw, err := sonic.Marshal(moneyline)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// nullableTime maps the zero time to NULL. A game learned from a score-only
// report has no kickoff yet.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
