package week

import "context"

// Repository persists weeks and their games. Upsert owns the temporal
// fields and the game list only, the tie breaker fields survive it. The two
// Set methods are write once, repeated calls with any value leave the first
// write in place so overlapping reconcile passes stay safe.
type Repository interface {
	Get(ctx context.Context, weekID string) (Week, bool, error)
	Upsert(ctx context.Context, value Week) error
	SetTieBreakerGame(ctx context.Context, weekID, gameID string) (bool, error)
	SetActualTieBreakerTotal(ctx context.Context, weekID string, totalPoints int) (bool, error)
}
