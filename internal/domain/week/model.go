package week

import "time"

// Game is one NFL matchup tracked inside a week. Scores stay nil until a
// provider reports them and Completed never flips back to false once set.
type Game struct {
	ID           string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Moneyline    map[string]int
	HomeScore    *int
	AwayScore    *int
	Completed    bool
}

// Week is the settlement unit. Games are append only and keep insertion order.
type Week struct {
	ID                          string
	BettingWindowStart          time.Time
	BettingWindowEnd            time.Time
	PicksRevealTime             time.Time
	TieBreakerGameID            string
	ActualTieBreakerTotalPoints *int
	Games                       []Game
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// Winner returns the winning team name. The second return is false while the
// game is not completed, while either score is missing, or on a tie.
func (g Game) Winner() (string, bool) {
	if !g.Completed || g.HomeScore == nil || g.AwayScore == nil {
		return "", false
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return g.HomeTeam, true
	case *g.AwayScore > *g.HomeScore:
		return g.AwayTeam, true
	default:
		return "", false
	}
}

// TotalPoints sums both scores for tie breaker comparison.
func (g Game) TotalPoints() (int, bool) {
	if g.HomeScore == nil || g.AwayScore == nil {
		return 0, false
	}
	return *g.HomeScore + *g.AwayScore, true
}

// AllCompleted reports whether every game in the week finished.
func (w Week) AllCompleted() bool {
	if len(w.Games) == 0 {
		return false
	}
	for _, game := range w.Games {
		if !game.Completed {
			return false
		}
	}
	return true
}

// GameByID looks a game up inside the week.
func (w Week) GameByID(gameID string) (Game, bool) {
	for _, game := range w.Games {
		if game.ID == gameID {
			return game, true
		}
	}
	return Game{}, false
}

// LastGameID picks the chronologically last game of the week, the one whose
// combined score decides ties. Equal kickoff times keep the earlier entry.
func LastGameID(games []Game) (string, bool) {
	if len(games) == 0 {
		return "", false
	}
	last := games[0]
	for _, game := range games[1:] {
		if game.CommenceTime.After(last.CommenceTime) {
			last = game
		}
	}
	return last.ID, true
}
