package submission

import "time"

// Outcome is the lifecycle of one pick. It starts pending and moves to win
// or loss exactly once, settlement never walks a decided pick back.
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
)

// Decided reports whether the outcome reached a terminal state.
func (o Outcome) Decided() bool {
	return o == OutcomeWin || o == OutcomeLoss
}

// Tier is the stake level of an entry, denominated in predictor points.
type Tier int

// Pick is one game-level selection. Tier repeats the submission tier so a
// pick can be settled without loading its parent.
type Pick struct {
	GameID   string
	Team     string
	Tier     Tier
	Outcome  Outcome
	Winnings float64
}

// Submission is one user's entry for one week, keyed by game id. It is
// immutable after creation except for the fields settlement owns: pick
// outcomes, the two totals and IsSettled.
type Submission struct {
	ID                  string
	UserID              string
	WeekID              string
	Tier                Tier
	TieBreakerPoints    int
	Picks               map[string]Pick
	SubmittedAt         time.Time
	IsSettled           bool
	TotalCorrectPicks   int
	TotalWinnerBucksWon float64
}
