package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

type WeekRepository struct {
	mu    sync.RWMutex
	items map[string]week.Week
}

func NewWeekRepository(weeks ...week.Week) *WeekRepository {
	items := make(map[string]week.Week, len(weeks))
	for _, w := range weeks {
		items[w.ID] = cloneWeek(w)
	}

	return &WeekRepository{items: items}
}

func (r *WeekRepository) Get(_ context.Context, weekID string) (week.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.items[weekID]
	if !ok {
		return week.Week{}, false, nil
	}

	return cloneWeek(value), true, nil
}

// Upsert owns the temporal fields and the game list. The tie breaker fields
// survive it so a sync pass cannot erase what settlement already pinned.
func (r *WeekRepository) Upsert(_ context.Context, value week.Week) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneWeek(value)
	if current, ok := r.items[value.ID]; ok {
		stored.TieBreakerGameID = current.TieBreakerGameID
		stored.ActualTieBreakerTotalPoints = current.ActualTieBreakerTotalPoints
	}
	r.items[value.ID] = stored

	return nil
}

func (r *WeekRepository) SetTieBreakerGame(_ context.Context, weekID, gameID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[weekID]
	if !ok || value.TieBreakerGameID != "" {
		return false, nil
	}
	value.TieBreakerGameID = gameID
	r.items[weekID] = value

	return true, nil
}

func (r *WeekRepository) SetActualTieBreakerTotal(_ context.Context, weekID string, totalPoints int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	value, ok := r.items[weekID]
	if !ok || value.ActualTieBreakerTotalPoints != nil {
		return false, nil
	}
	value.ActualTieBreakerTotalPoints = &totalPoints
	r.items[weekID] = value

	return true, nil
}

func cloneWeek(w week.Week) week.Week {
	copied := w
	if w.ActualTieBreakerTotalPoints != nil {
		total := *w.ActualTieBreakerTotalPoints
		copied.ActualTieBreakerTotalPoints = &total
	}
	if w.Games != nil {
		copied.Games = make([]week.Game, len(w.Games))
		for i, game := range w.Games {
			copied.Games[i] = cloneGame(game)
		}
	}

	return copied
}

func cloneGame(g week.Game) week.Game {
	copied := g
	if g.Moneyline != nil {
		copied.Moneyline = make(map[string]int, len(g.Moneyline))
		for team, price := range g.Moneyline {
			copied.Moneyline[team] = price
		}
	}
	if g.HomeScore != nil {
		score := *g.HomeScore
		copied.HomeScore = &score
	}
	if g.AwayScore != nil {
		score := *g.AwayScore
		copied.AwayScore = &score
	}

	return copied
}
