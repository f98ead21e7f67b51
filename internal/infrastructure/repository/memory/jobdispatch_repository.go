package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
)

// JobDispatchRepository keeps the wake-up audit trail keyed by dispatch id,
// latest status wins.
type JobDispatchRepository struct {
	mu     sync.RWMutex
	items  map[string]jobscheduler.DispatchEvent
	orders []string
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{items: make(map[string]jobscheduler.DispatchEvent)}
}

func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[event.DispatchID]; !exists {
		r.orders = append(r.orders, event.DispatchID)
	}
	r.items[event.DispatchID] = cloneDispatchEvent(event)

	return nil
}

// Events returns the audit trail in first-seen order.
func (r *JobDispatchRepository) Events(_ context.Context) ([]jobscheduler.DispatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobscheduler.DispatchEvent, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneDispatchEvent(r.items[id]))
	}

	return out, nil
}

func cloneDispatchEvent(e jobscheduler.DispatchEvent) jobscheduler.DispatchEvent {
	copied := e
	if e.Payload != nil {
		copied.Payload = make(map[string]any, len(e.Payload))
		for key, value := range e.Payload {
			copied.Payload[key] = value
		}
	}

	return copied
}
