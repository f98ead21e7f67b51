package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]profile.Profile
}

func NewProfileRepository(profiles ...profile.Profile) *ProfileRepository {
	items := make(map[string]profile.Profile, len(profiles))
	for _, p := range profiles {
		items[p.UserID] = cloneProfile(p)
	}

	return &ProfileRepository{items: items}
}

func (r *ProfileRepository) GetByID(_ context.Context, userID string) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[userID]
	if !ok {
		return profile.Profile{}, false, nil
	}

	return cloneProfile(value), true, nil
}

// Create is set-if-absent. A second create for the same user reports false
// and leaves the stored profile untouched.
func (r *ProfileRepository) Create(_ context.Context, value profile.Profile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[value.UserID]; exists {
		return false, nil
	}
	r.items[value.UserID] = cloneProfile(value)

	return true, nil
}

func (r *ProfileRepository) CreditWinnerBucks(_ context.Context, userID string, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("profile %s not found", userID)
	}
	value.WinnerBucks += delta
	r.items[userID] = value

	return nil
}

// DebitPredictorPoints reports false without writing when the balance does
// not cover the amount.
func (r *ProfileRepository) DebitPredictorPoints(_ context.Context, userID string, amount int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[userID]
	if !ok {
		return false, fmt.Errorf("profile %s not found", userID)
	}
	if value.PredictorPoints < amount {
		return false, nil
	}
	value.PredictorPoints -= amount
	r.items[userID] = value

	return true, nil
}

func (r *ProfileRepository) RefundPredictorPoints(_ context.Context, userID string, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("profile %s not found", userID)
	}
	value.PredictorPoints += amount
	r.items[userID] = value

	return nil
}

// IncrementWeeklyEntries counts an entry against the weekly cap and reports
// false without writing once the cap is reached.
func (r *ProfileRepository) IncrementWeeklyEntries(_ context.Context, userID, weekID string, maxEntries int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[userID]
	if !ok {
		return false, fmt.Errorf("profile %s not found", userID)
	}
	if value.WeeklyEntries[weekID] >= maxEntries {
		return false, nil
	}
	value.WeeklyEntries[weekID]++
	r.items[userID] = value

	return true, nil
}

func (r *ProfileRepository) DecrementWeeklyEntries(_ context.Context, userID, weekID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("profile %s not found", userID)
	}
	if value.WeeklyEntries[weekID] > 0 {
		value.WeeklyEntries[weekID]--
	}
	r.items[userID] = value

	return nil
}

func cloneProfile(p profile.Profile) profile.Profile {
	copied := p
	copied.WeeklyEntries = make(map[string]int, len(p.WeeklyEntries))
	for weekID, count := range p.WeeklyEntries {
		copied.WeeklyEntries[weekID] = count
	}

	return copied
}
