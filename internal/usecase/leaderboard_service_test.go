package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

func leaderboardTestWeek(allDone bool, actualTotal *int) week.Week {
	kickoff := time.Date(2025, time.September, 14, 17, 0, 0, 0, time.UTC)
	wk := week.Week{
		ID:                          "2025-09-09",
		TieBreakerGameID:            "g2",
		ActualTieBreakerTotalPoints: actualTotal,
		Games: []week.Game{
			{ID: "g1", HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", CommenceTime: kickoff, HomeScore: intPtr(24), AwayScore: intPtr(10), Completed: true},
			{ID: "g2", HomeTeam: "Dallas Cowboys", AwayTeam: "Philadelphia Eagles", CommenceTime: kickoff.Add(3 * time.Hour)},
		},
	}
	if allDone {
		wk.Games[1].HomeScore = intPtr(30)
		wk.Games[1].AwayScore = intPtr(20)
		wk.Games[1].Completed = true
	}
	return wk
}

func settledSubmission(id, userID string, correct int, bucks float64, guess int) submission.Submission {
	return submission.Submission{
		ID:                  id,
		UserID:              userID,
		WeekID:              "2025-09-09",
		Tier:                50,
		TieBreakerPoints:    guess,
		Picks:               map[string]submission.Pick{},
		IsSettled:           true,
		TotalCorrectPicks:   correct,
		TotalWinnerBucksWon: bucks,
	}
}

func TestLeaderboardService_RebuildWeek_RanksWithTieBreaker(t *testing.T) {
	t.Parallel()

	weekRepo := newStubWeekRepository()
	actual := 50
	if err := weekRepo.Upsert(context.Background(), leaderboardTestWeek(true, &actual)); err != nil {
		t.Fatalf("seed week: %v", err)
	}

	submissionRepo := newStubSubmissionRepository()
	// Same record for both users, only the tie breaker guess differs.
	for _, value := range []submission.Submission{
		settledSubmission("s-y", "uY", 7, 10, 55),
		settledSubmission("s-x", "uX", 7, 10, 48),
	} {
		if err := submissionRepo.Create(context.Background(), value); err != nil {
			t.Fatalf("seed submission: %v", err)
		}
	}

	profileRepo := newStubProfileRepository(
		profile.Profile{UserID: "uX", Username: "xavier"},
		profile.Profile{UserID: "uY", Username: "yolanda"},
	)
	boardRepo := newStubLeaderboardRepository()
	service := NewLeaderboardService(weekRepo, submissionRepo, profileRepo, boardRepo, nil)

	built, err := service.RebuildWeek(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("RebuildWeek error: %v", err)
	}
	if !built {
		t.Fatalf("expected board built")
	}

	board, err := service.GetByWeek(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("GetByWeek error: %v", err)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board.Entries))
	}
	if board.Entries[0].UserID != "uX" || board.Entries[0].Username != "xavier" {
		t.Fatalf("expected closer guess on top, got %+v", board.Entries[0])
	}
	if board.Entries[1].UserID != "uY" {
		t.Fatalf("expected farther guess second, got %+v", board.Entries[1])
	}
	if board.ActualTieBreakerTotalPoints != 50 {
		t.Fatalf("expected actual total 50, got %d", board.ActualTieBreakerTotalPoints)
	}
}

func TestLeaderboardService_RebuildWeek_OpenWeekBuildsNothing(t *testing.T) {
	t.Parallel()

	weekRepo := newStubWeekRepository()
	if err := weekRepo.Upsert(context.Background(), leaderboardTestWeek(false, nil)); err != nil {
		t.Fatalf("seed week: %v", err)
	}
	boardRepo := newStubLeaderboardRepository()
	service := NewLeaderboardService(weekRepo, newStubSubmissionRepository(), newStubProfileRepository(), boardRepo, nil)

	built, err := service.RebuildWeek(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("RebuildWeek error: %v", err)
	}
	if built {
		t.Fatalf("expected no board for an open week")
	}
	if boardRepo.replaces != 0 {
		t.Fatalf("expected no store writes, got %d", boardRepo.replaces)
	}
	if _, err := service.GetByWeek(context.Background(), "2025-09-09"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaderboardService_RebuildWeek_MissingActualTotalBuildsNothing(t *testing.T) {
	t.Parallel()

	weekRepo := newStubWeekRepository()
	if err := weekRepo.Upsert(context.Background(), leaderboardTestWeek(true, nil)); err != nil {
		t.Fatalf("seed week: %v", err)
	}
	boardRepo := newStubLeaderboardRepository()
	service := NewLeaderboardService(weekRepo, newStubSubmissionRepository(), newStubProfileRepository(), boardRepo, nil)

	built, err := service.RebuildWeek(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("RebuildWeek error: %v", err)
	}
	if built || boardRepo.replaces != 0 {
		t.Fatalf("expected build skipped without the recorded total")
	}
}

func TestLeaderboardService_RebuildWeek_ReplacesWholesale(t *testing.T) {
	t.Parallel()

	weekRepo := newStubWeekRepository()
	actual := 50
	if err := weekRepo.Upsert(context.Background(), leaderboardTestWeek(true, &actual)); err != nil {
		t.Fatalf("seed week: %v", err)
	}

	submissionRepo := newStubSubmissionRepository()
	if err := submissionRepo.Create(context.Background(), settledSubmission("s1", "u1", 5, 6, 40)); err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	profileRepo := newStubProfileRepository(profile.Profile{UserID: "u1", Username: "alice"}, profile.Profile{UserID: "u2", Username: "bob"})
	boardRepo := newStubLeaderboardRepository()
	service := NewLeaderboardService(weekRepo, submissionRepo, profileRepo, boardRepo, nil)

	if _, err := service.RebuildWeek(context.Background(), "2025-09-09"); err != nil {
		t.Fatalf("first rebuild error: %v", err)
	}

	// A late settled submission joins and the whole board is rebuilt.
	if err := submissionRepo.Create(context.Background(), settledSubmission("s2", "u2", 9, 12, 49)); err != nil {
		t.Fatalf("seed late submission: %v", err)
	}
	if _, err := service.RebuildWeek(context.Background(), "2025-09-09"); err != nil {
		t.Fatalf("second rebuild error: %v", err)
	}

	board, err := service.GetByWeek(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("GetByWeek error: %v", err)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("expected rebuilt board with 2 entries, got %d", len(board.Entries))
	}
	if board.Entries[0].UserID != "u2" {
		t.Fatalf("expected the stronger late entry on top, got %+v", board.Entries[0])
	}
	if boardRepo.replaces != 2 {
		t.Fatalf("expected 2 wholesale replaces, got %d", boardRepo.replaces)
	}
}

func TestLeaderboardService_RebuildWeek_SkipsUnsettledSubmissions(t *testing.T) {
	t.Parallel()

	weekRepo := newStubWeekRepository()
	actual := 50
	if err := weekRepo.Upsert(context.Background(), leaderboardTestWeek(true, &actual)); err != nil {
		t.Fatalf("seed week: %v", err)
	}

	submissionRepo := newStubSubmissionRepository()
	if err := submissionRepo.Create(context.Background(), settledSubmission("s1", "u1", 5, 6, 40)); err != nil {
		t.Fatalf("seed submission: %v", err)
	}
	open := settledSubmission("s2", "u2", 0, 0, 44)
	open.IsSettled = false
	if err := submissionRepo.Create(context.Background(), open); err != nil {
		t.Fatalf("seed open submission: %v", err)
	}

	profileRepo := newStubProfileRepository(profile.Profile{UserID: "u1", Username: "alice"})
	boardRepo := newStubLeaderboardRepository()
	service := NewLeaderboardService(weekRepo, submissionRepo, profileRepo, boardRepo, nil)

	if _, err := service.RebuildWeek(context.Background(), "2025-09-09"); err != nil {
		t.Fatalf("RebuildWeek error: %v", err)
	}

	board, err := service.GetByWeek(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("GetByWeek error: %v", err)
	}
	if len(board.Entries) != 1 || board.Entries[0].UserID != "u1" {
		t.Fatalf("expected only the settled entry ranked, got %+v", board.Entries)
	}
}

type stubLeaderboardRepository struct {
	mu       sync.Mutex
	byWeek   map[string]leaderboard.Leaderboard
	replaces int
}

func newStubLeaderboardRepository() *stubLeaderboardRepository {
	return &stubLeaderboardRepository{byWeek: make(map[string]leaderboard.Leaderboard)}
}

func (s *stubLeaderboardRepository) GetByWeek(_ context.Context, weekID string) (leaderboard.Leaderboard, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.byWeek[weekID]
	return value, ok, nil
}

func (s *stubLeaderboardRepository) Replace(_ context.Context, value leaderboard.Leaderboard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byWeek[value.WeekID] = value
	s.replaces++
	return nil
}
