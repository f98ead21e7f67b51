package profile

import "context"

// Repository persists profiles. The increment and debit methods are atomic
// and guarded so concurrent submissions can never push a balance negative or
// push a week past its entry cap. Create reports false when the profile
// already exists and leaves the stored ledger untouched.
type Repository interface {
	GetByID(ctx context.Context, userID string) (Profile, bool, error)
	Create(ctx context.Context, value Profile) (bool, error)
	CreditWinnerBucks(ctx context.Context, userID string, delta float64) error
	DebitPredictorPoints(ctx context.Context, userID string, amount int) (bool, error)
	RefundPredictorPoints(ctx context.Context, userID string, amount int) error
	IncrementWeeklyEntries(ctx context.Context, userID, weekID string, maxEntries int) (bool, error)
	DecrementWeeklyEntries(ctx context.Context, userID, weekID string) error
}
