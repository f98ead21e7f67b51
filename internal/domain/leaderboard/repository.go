package leaderboard

import "context"

// Repository persists leaderboards, one per week, replaced wholesale.
type Repository interface {
	GetByWeek(ctx context.Context, weekID string) (Leaderboard, bool, error)
	Replace(ctx context.Context, value Leaderboard) error
}
