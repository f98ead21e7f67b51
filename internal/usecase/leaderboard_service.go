package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// LeaderboardService rebuilds and serves weekly rankings. A board exists
// only after every game of the week completed and the tie breaker total is
// on record, partial weeks never leak a provisional ranking.
type LeaderboardService struct {
	weekRepo        week.Repository
	submissionRepo  submission.Repository
	profileRepo     profile.Repository
	leaderboardRepo leaderboard.Repository
	logger          *logging.Logger
	now             func() time.Time
}

func NewLeaderboardService(
	weekRepo week.Repository,
	submissionRepo submission.Repository,
	profileRepo profile.Repository,
	leaderboardRepo leaderboard.Repository,
	logger *logging.Logger,
) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		weekRepo:        weekRepo,
		submissionRepo:  submissionRepo,
		profileRepo:     profileRepo,
		leaderboardRepo: leaderboardRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// RebuildWeek replaces the week's board from its settled submissions. It
// reports false without touching the store while the week is still open.
// Rebuilding an already built board from the same input is a harmless
// replace with identical content.
func (s *LeaderboardService) RebuildWeek(ctx context.Context, weekID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.RebuildWeek")
	defer span.End()

	wk, found, err := s.weekRepo.Get(ctx, weekID)
	if err != nil {
		return false, fmt.Errorf("load week weekID=%s: %w", weekID, err)
	}
	if !found {
		return false, nil
	}
	if !wk.AllCompleted() {
		return false, nil
	}
	if wk.ActualTieBreakerTotalPoints == nil {
		s.logger.WarnContext(ctx, "week complete but tie breaker total missing",
			"week_id", weekID,
			"tie_breaker_game_id", wk.TieBreakerGameID,
		)
		return false, nil
	}

	submissions, err := s.submissionRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return false, fmt.Errorf("list submissions weekID=%s: %w", weekID, err)
	}

	usernames := make(map[string]string)
	entries := make([]leaderboard.Entry, 0, len(submissions))
	for _, entry := range submissions {
		if !entry.IsSettled {
			continue
		}
		entries = append(entries, leaderboard.Entry{
			UserID:              entry.UserID,
			Username:            s.usernameFor(ctx, usernames, entry.UserID),
			TotalCorrectPicks:   entry.TotalCorrectPicks,
			TotalWinnerBucksWon: entry.TotalWinnerBucksWon,
			TieBreakerPoints:    entry.TieBreakerPoints,
		})
	}

	board := leaderboard.Build(weekID, entries, *wk.ActualTieBreakerTotalPoints, s.now().UTC())
	if err := s.leaderboardRepo.Replace(ctx, board); err != nil {
		return false, fmt.Errorf("replace leaderboard weekID=%s: %w", weekID, err)
	}
	return true, nil
}

// GetByWeek returns the stored board of a week.
func (s *LeaderboardService) GetByWeek(ctx context.Context, weekID string) (leaderboard.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetByWeek")
	defer span.End()

	board, found, err := s.leaderboardRepo.GetByWeek(ctx, weekID)
	if err != nil {
		return leaderboard.Leaderboard{}, fmt.Errorf("load leaderboard weekID=%s: %w", weekID, err)
	}
	if !found {
		return leaderboard.Leaderboard{}, fmt.Errorf("%w: leaderboard for week %s", ErrNotFound, weekID)
	}
	return board, nil
}

func (s *LeaderboardService) usernameFor(ctx context.Context, cache map[string]string, userID string) string {
	if name, ok := cache[userID]; ok {
		return name
	}
	owner, found, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil || !found {
		s.logger.WarnContext(ctx, "profile missing for leaderboard entry",
			"user_id", userID,
			"error", err,
		)
		cache[userID] = userID
		return userID
	}
	cache[userID] = owner.Username
	return owner.Username
}
