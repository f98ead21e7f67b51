package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	mu    sync.RWMutex
	items map[string]leaderboard.Leaderboard
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{items: make(map[string]leaderboard.Leaderboard)}
}

func (r *LeaderboardRepository) GetByWeek(_ context.Context, weekID string) (leaderboard.Leaderboard, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[weekID]
	if !ok {
		return leaderboard.Leaderboard{}, false, nil
	}

	return cloneLeaderboard(value), true, nil
}

func (r *LeaderboardRepository) Replace(_ context.Context, value leaderboard.Leaderboard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[value.WeekID] = cloneLeaderboard(value)
	return nil
}

func cloneLeaderboard(l leaderboard.Leaderboard) leaderboard.Leaderboard {
	copied := l
	copied.Entries = append([]leaderboard.Entry(nil), l.Entries...)
	return copied
}
