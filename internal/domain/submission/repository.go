package submission

import "context"

// SettlementUpdate carries one settlement pass back to the store. Outcomes
// are applied set-if-pending per pick, IsSettled is sticky once true, so a
// stale concurrent pass can never undo a decided pick or reopen a settled
// submission.
type SettlementUpdate struct {
	SubmissionID        string
	Picks               map[string]Pick
	TotalCorrectPicks   int
	TotalWinnerBucksWon float64
	IsSettled           bool
}

// Repository persists submissions. ListByWeek returns entries in submission
// order so downstream passes iterate deterministically.
type Repository interface {
	GetByID(ctx context.Context, submissionID string) (Submission, bool, error)
	ListByWeek(ctx context.Context, weekID string) ([]Submission, error)
	ListByUserWeek(ctx context.Context, userID, weekID string) ([]Submission, error)
	Create(ctx context.Context, value Submission) error
	ApplySettlement(ctx context.Context, update SettlementUpdate) error
}
