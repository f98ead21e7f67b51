package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/submission"
)

type SubmissionRepository struct {
	mu     sync.RWMutex
	items  map[string]submission.Submission
	orders []string
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{items: make(map[string]submission.Submission)}
}

func (r *SubmissionRepository) GetByID(_ context.Context, submissionID string) (submission.Submission, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[submissionID]
	if !ok {
		return submission.Submission{}, false, nil
	}

	return cloneSubmission(value), true, nil
}

func (r *SubmissionRepository) ListByWeek(_ context.Context, weekID string) ([]submission.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]submission.Submission, 0, len(r.orders))
	for _, id := range r.orders {
		if value := r.items[id]; value.WeekID == weekID {
			out = append(out, cloneSubmission(value))
		}
	}

	return out, nil
}

func (r *SubmissionRepository) ListByUserWeek(_ context.Context, userID, weekID string) ([]submission.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]submission.Submission, 0, len(r.orders))
	for _, id := range r.orders {
		if value := r.items[id]; value.UserID == userID && value.WeekID == weekID {
			out = append(out, cloneSubmission(value))
		}
	}

	return out, nil
}

func (r *SubmissionRepository) Create(_ context.Context, value submission.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[value.ID]; exists {
		return fmt.Errorf("submission %s already exists", value.ID)
	}
	r.items[value.ID] = cloneSubmission(value)
	r.orders = append(r.orders, value.ID)

	return nil
}

// ApplySettlement writes outcomes set-if-pending per pick and keeps
// IsSettled sticky. The totals are replaced wholesale, they are re-derived
// from the full pick set on every pass.
func (r *SubmissionRepository) ApplySettlement(_ context.Context, update submission.SettlementUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[update.SubmissionID]
	if !ok {
		return fmt.Errorf("submission %s not found", update.SubmissionID)
	}

	for gameID, pick := range update.Picks {
		current, exists := value.Picks[gameID]
		if exists && current.Outcome.Decided() {
			continue
		}
		value.Picks[gameID] = pick
	}
	value.TotalCorrectPicks = update.TotalCorrectPicks
	value.TotalWinnerBucksWon = update.TotalWinnerBucksWon
	if update.IsSettled {
		value.IsSettled = true
	}
	r.items[update.SubmissionID] = value

	return nil
}

func cloneSubmission(s submission.Submission) submission.Submission {
	copied := s
	if s.Picks != nil {
		copied.Picks = make(map[string]submission.Pick, len(s.Picks))
		for gameID, pick := range s.Picks {
			copied.Picks[gameID] = pick
		}
	}

	return copied
}
