package jobscheduler

import "context"

// Repository keeps the dispatch audit trail. UpsertEvent is keyed by
// dispatch id and status, re-sending the same event is harmless.
type Repository interface {
	UpsertEvent(ctx context.Context, event DispatchEvent) error
}
