package memory

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

// SeedProfiles are demo users for database-less runs.
func SeedProfiles(now time.Time) []profile.Profile {
	return []profile.Profile{
		{
			UserID:          "demo-alice",
			Username:        "alice",
			PredictorPoints: 1000,
			WeeklyEntries:   map[string]int{},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			UserID:          "demo-bob",
			Username:        "bob",
			PredictorPoints: 1000,
			WeeklyEntries:   map[string]int{},
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
}

// SeedWeek builds a demo week around the current instant so a run without a
// provider key still has games to pick. Kickoffs land on the Sunday of the
// week, after betting closes.
func SeedWeek(now time.Time, loc *time.Location) week.Week {
	bounds := week.BoundsAt(now, loc)
	sunday := bounds.BettingWindowStart.AddDate(0, 0, 5)

	games := []week.Game{
		{
			ID:           "demo-buf-nyj",
			HomeTeam:     "Buffalo Bills",
			AwayTeam:     "New York Jets",
			CommenceTime: time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 13, 0, 0, 0, loc).UTC(),
			Moneyline:    map[string]int{"Buffalo Bills": -240, "New York Jets": 198},
		},
		{
			ID:           "demo-phi-dal",
			HomeTeam:     "Philadelphia Eagles",
			AwayTeam:     "Dallas Cowboys",
			CommenceTime: time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 16, 25, 0, 0, loc).UTC(),
			Moneyline:    map[string]int{"Philadelphia Eagles": -155, "Dallas Cowboys": 132},
		},
		{
			ID:           "demo-kc-det",
			HomeTeam:     "Kansas City Chiefs",
			AwayTeam:     "Detroit Lions",
			CommenceTime: time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 20, 20, 0, 0, loc).UTC(),
			Moneyline:    map[string]int{"Kansas City Chiefs": -120, "Detroit Lions": 102},
		},
	}

	return week.Week{
		ID:                 bounds.WeekID,
		BettingWindowStart: bounds.BettingWindowStart,
		BettingWindowEnd:   bounds.BettingWindowEnd,
		PicksRevealTime:    bounds.PicksRevealTime,
		Games:              games,
		CreatedAt:          now.UTC(),
		UpdatedAt:          now.UTC(),
	}
}
