package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

// WeekService reads week documents. The current week always resolves, even
// before the first provider sync, by deriving the empty document from the
// clock without persisting it.
type WeekService struct {
	weekRepo week.Repository
	gameSync *GameSyncService
	location *time.Location
	now      func() time.Time
}

func NewWeekService(weekRepo week.Repository, gameSync *GameSyncService, location *time.Location) *WeekService {
	if location == nil {
		location = time.UTC
	}
	return &WeekService{
		weekRepo: weekRepo,
		gameSync: gameSync,
		location: location,
		now:      time.Now,
	}
}

func (s *WeekService) Current(ctx context.Context) (week.Week, error) {
	bounds := week.BoundsAt(s.now(), s.location)

	wk, exists, err := s.weekRepo.Get(ctx, bounds.WeekID)
	if err != nil {
		return week.Week{}, fmt.Errorf("get current week: %w", err)
	}
	if exists {
		return wk, nil
	}

	return week.Week{
		ID:                 bounds.WeekID,
		BettingWindowStart: bounds.BettingWindowStart,
		BettingWindowEnd:   bounds.BettingWindowEnd,
		PicksRevealTime:    bounds.PicksRevealTime,
	}, nil
}

func (s *WeekService) Get(ctx context.Context, weekID string) (week.Week, error) {
	weekID = strings.TrimSpace(weekID)
	if weekID == "" {
		return week.Week{}, fmt.Errorf("%w: week id is required", ErrInvalidInput)
	}

	wk, exists, err := s.weekRepo.Get(ctx, weekID)
	if err != nil {
		return week.Week{}, fmt.Errorf("get week by id: %w", err)
	}
	if !exists {
		return week.Week{}, fmt.Errorf("%w: week %s", ErrNotFound, weekID)
	}

	return wk, nil
}

// RefreshOdds pulls the provider feeds for the current week on demand and
// returns the refreshed document. Settlement is not part of this trigger.
func (s *WeekService) RefreshOdds(ctx context.Context) (week.Week, error) {
	wk, err := s.gameSync.SyncCurrentWeek(ctx)
	if err != nil {
		return week.Week{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	return wk, nil
}
