package profile

import "time"

// Profile is one user's ledger. PredictorPoints is the spendable stake
// currency, WinnerBucks the payout currency and WeeklyEntries counts
// submissions per week id against the entry cap.
type Profile struct {
	UserID          string
	Username        string
	PredictorPoints int
	WinnerBucks     float64
	WeeklyEntries   map[string]int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EntriesFor returns the submission count for a week.
func (p Profile) EntriesFor(weekID string) int {
	return p.WeeklyEntries[weekID]
}
