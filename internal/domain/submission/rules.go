package submission

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

var (
	ErrUnknownTier        = errors.New("unknown stake tier")
	ErrMixedTiers         = errors.New("pick tier differs from submission tier")
	ErrUnknownGame        = errors.New("pick references unknown game")
	ErrTeamNotInGame      = errors.New("picked team does not play in game")
	ErrMissingGamePick    = errors.New("missing pick for game")
	ErrNegativeTieBreaker = errors.New("tie breaker guess must not be negative")
	ErrNoGamesToPick      = errors.New("week has no games to pick")
)

// Rules holds the entry validation and payout parameters.
type Rules struct {
	MaxEntriesPerWeek       int
	StartingPredictorPoints int
	PayoutMultipliers       map[Tier]float64
}

func DefaultRules() Rules {
	return Rules{
		MaxEntriesPerWeek:       3,
		StartingPredictorPoints: 1000,
		PayoutMultipliers: map[Tier]float64{
			25:  0.10,
			50:  0.12,
			100: 0.15,
		},
	}
}

// MultiplierFor returns the payout multiplier of a tier.
func (r Rules) MultiplierFor(tier Tier) (float64, bool) {
	multiplier, ok := r.PayoutMultipliers[tier]
	return multiplier, ok
}

// EntryCost is the predictor point debit for entering at a tier.
func (r Rules) EntryCost(tier Tier) int {
	return int(tier)
}

// ValidateEntry checks a new submission against the week's game list. Every
// game currently in the week needs exactly one pick and every pick must name
// a team that actually plays in its game.
func ValidateEntry(value Submission, games []week.Game, rules Rules) error {
	if _, ok := rules.PayoutMultipliers[value.Tier]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTier, value.Tier)
	}
	if value.TieBreakerPoints < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeTieBreaker, value.TieBreakerPoints)
	}
	if len(games) == 0 {
		return ErrNoGamesToPick
	}

	gameByID := make(map[string]week.Game, len(games))
	for _, game := range games {
		gameByID[game.ID] = game
	}

	for gameID, pick := range value.Picks {
		if pick.GameID != gameID {
			return fmt.Errorf("pick key %s does not match game id %s", gameID, pick.GameID)
		}
		game, ok := gameByID[gameID]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
		}
		if pick.Team == "" {
			return fmt.Errorf("team is required for game %s", gameID)
		}
		if pick.Team != game.HomeTeam && pick.Team != game.AwayTeam {
			return fmt.Errorf("%w: team=%s game=%s", ErrTeamNotInGame, pick.Team, gameID)
		}
		if pick.Tier != value.Tier {
			return fmt.Errorf("%w: pick=%d submission=%d", ErrMixedTiers, pick.Tier, value.Tier)
		}
	}

	for _, game := range games {
		if _, ok := value.Picks[game.ID]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingGamePick, game.ID)
		}
	}

	return nil
}
