package submission

import (
	"sort"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

// Result is one settlement pass over a submission. Picks holds the full
// updated pick set, Decided lists the game ids resolved by this pass and
// MissingGames lists picks whose game is absent from the week, which keeps
// the submission unsettled until the game shows up.
type Result struct {
	Picks               map[string]Pick
	TotalCorrectPicks   int
	TotalWinnerBucksWon float64
	IsSettled           bool
	Decided             []string
	MissingGames        []string
}

// Settle resolves the pending picks of a submission against the week's
// games. Decided picks are carried over untouched and only re-summed, so
// running Settle twice over the same input produces the same totals. A
// pending pick resolves only once its game is completed: the stronger score
// wins, a tie counts as a loss, winnings are the pick tier times its payout
// multiplier. An already settled submission passes through unchanged.
func Settle(value Submission, wk week.Week, rules Rules) Result {
	out := Result{Picks: make(map[string]Pick, len(value.Picks))}
	if value.IsSettled {
		for gameID, pick := range value.Picks {
			out.Picks[gameID] = pick
		}
		out.TotalCorrectPicks = value.TotalCorrectPicks
		out.TotalWinnerBucksWon = value.TotalWinnerBucksWon
		out.IsSettled = true
		return out
	}

	allDecided := true
	for gameID, pick := range value.Picks {
		if pick.Outcome.Decided() {
			out.Picks[gameID] = pick
			continue
		}

		game, ok := wk.GameByID(gameID)
		if !ok {
			out.MissingGames = append(out.MissingGames, gameID)
			out.Picks[gameID] = pick
			allDecided = false
			continue
		}
		if !game.Completed {
			out.Picks[gameID] = pick
			allDecided = false
			continue
		}
		if _, reported := game.TotalPoints(); !reported {
			// Completed without scores is a provider inconsistency, wait for
			// a readable report instead of guessing an outcome.
			out.Picks[gameID] = pick
			allDecided = false
			continue
		}

		winner, hasWinner := game.Winner()
		if hasWinner && winner == pick.Team {
			pick.Outcome = OutcomeWin
			multiplier, _ := rules.MultiplierFor(pick.Tier)
			pick.Winnings = float64(pick.Tier) * multiplier
		} else {
			pick.Outcome = OutcomeLoss
			pick.Winnings = 0
		}
		out.Picks[gameID] = pick
		out.Decided = append(out.Decided, gameID)
	}

	for _, pick := range out.Picks {
		if pick.Outcome == OutcomeWin {
			out.TotalCorrectPicks++
		}
		out.TotalWinnerBucksWon += pick.Winnings
	}
	out.IsSettled = allDecided && len(value.Picks) > 0

	sort.Strings(out.Decided)
	sort.Strings(out.MissingGames)
	return out
}
