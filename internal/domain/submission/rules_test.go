package submission

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

func weekGames() []week.Game {
	kickoff := time.Date(2025, time.September, 14, 13, 0, 0, 0, time.UTC)
	return []week.Game{
		{ID: "g1", HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", CommenceTime: kickoff},
		{ID: "g2", HomeTeam: "Dallas Cowboys", AwayTeam: "Philadelphia Eagles", CommenceTime: kickoff.Add(3 * time.Hour)},
	}
}

func validEntry() Submission {
	return Submission{
		ID:               "s1",
		UserID:           "u1",
		WeekID:           "2025-09-09",
		Tier:             50,
		TieBreakerPoints: 45,
		Picks: map[string]Pick{
			"g1": {GameID: "g1", Team: "Buffalo Bills", Tier: 50, Outcome: OutcomePending},
			"g2": {GameID: "g2", Team: "Philadelphia Eagles", Tier: 50, Outcome: OutcomePending},
		},
	}
}

func TestValidateEntry(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name      string
		mutate    func(*Submission)
		games     []week.Game
		targetErr error
	}{
		{
			name:   "valid entry",
			mutate: func(_ *Submission) {},
			games:  weekGames(),
		},
		{
			name: "unknown tier",
			mutate: func(value *Submission) {
				value.Tier = 75
			},
			games:     weekGames(),
			targetErr: ErrUnknownTier,
		},
		{
			name: "negative tie breaker",
			mutate: func(value *Submission) {
				value.TieBreakerPoints = -1
			},
			games:     weekGames(),
			targetErr: ErrNegativeTieBreaker,
		},
		{
			name:      "week without games",
			mutate:    func(_ *Submission) {},
			games:     nil,
			targetErr: ErrNoGamesToPick,
		},
		{
			name: "pick for unknown game",
			mutate: func(value *Submission) {
				value.Picks["g9"] = Pick{GameID: "g9", Team: "Buffalo Bills", Tier: 50, Outcome: OutcomePending}
			},
			games:     weekGames(),
			targetErr: ErrUnknownGame,
		},
		{
			name: "team outside game",
			mutate: func(value *Submission) {
				value.Picks["g1"] = Pick{GameID: "g1", Team: "Dallas Cowboys", Tier: 50, Outcome: OutcomePending}
			},
			games:     weekGames(),
			targetErr: ErrTeamNotInGame,
		},
		{
			name: "pick tier drifts from submission tier",
			mutate: func(value *Submission) {
				value.Picks["g2"] = Pick{GameID: "g2", Team: "Dallas Cowboys", Tier: 25, Outcome: OutcomePending}
			},
			games:     weekGames(),
			targetErr: ErrMixedTiers,
		},
		{
			name: "missing pick for one game",
			mutate: func(value *Submission) {
				delete(value.Picks, "g2")
			},
			games:     weekGames(),
			targetErr: ErrMissingGamePick,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value := validEntry()
			tt.mutate(&value)

			err := ValidateEntry(value, tt.games, rules)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
		})
	}
}

func TestRulesEntryCost(t *testing.T) {
	rules := DefaultRules()

	if cost := rules.EntryCost(50); cost != 50 {
		t.Fatalf("expected entry cost 50, got %d", cost)
	}
	if _, ok := rules.MultiplierFor(75); ok {
		t.Fatalf("expected no multiplier for tier 75")
	}
	multiplier, ok := rules.MultiplierFor(100)
	if !ok || multiplier != 0.15 {
		t.Fatalf("expected multiplier 0.15 for tier 100, got %v ok=%v", multiplier, ok)
	}
}
