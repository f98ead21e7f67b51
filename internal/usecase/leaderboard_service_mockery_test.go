package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
	leaderboardmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/leaderboard"
	profilemock "github.com/riskibarqy/pickem-league/internal/mocks/domain/profile"
	submissionmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/submission"
	weekmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/week"
	"github.com/stretchr/testify/mock"
)

func TestLeaderboardService_RebuildWeek_ReplacesBoardUsingMockery(t *testing.T) {
	t.Parallel()

	weekRepo := weekmock.NewRepository(t)
	submissionRepo := submissionmock.NewRepository(t)
	profileRepo := profilemock.NewRepository(t)
	leaderboardRepo := leaderboardmock.NewRepository(t)

	service := NewLeaderboardService(weekRepo, submissionRepo, profileRepo, leaderboardRepo, nil)
	weekID := "2025-09-09"
	total := 34

	// RebuildWeek derives its repo contexts from usecase spans, so the
	// expectations match on mock.Anything instead of the caller's context.
	weekRepo.
		On("Get", mock.Anything, weekID).
		Return(week.Week{
			ID:                          weekID,
			TieBreakerGameID:            "g2",
			ActualTieBreakerTotalPoints: &total,
			Games: []week.Game{
				{ID: "g1", Completed: true},
				{ID: "g2", Completed: true},
			},
		}, true, nil).
		Once()
	submissionRepo.
		On("ListByWeek", mock.Anything, weekID).
		Return([]submission.Submission{
			{ID: "s1", UserID: "u1", WeekID: weekID, IsSettled: true, TotalCorrectPicks: 1, TotalWinnerBucksWon: 2.5, TieBreakerPoints: 30},
			{ID: "s2", UserID: "u2", WeekID: weekID, IsSettled: true, TotalCorrectPicks: 2, TotalWinnerBucksWon: 6, TieBreakerPoints: 41},
			{ID: "s3", UserID: "u1", WeekID: weekID, IsSettled: false},
		}, nil).
		Once()
	profileRepo.
		On("GetByID", mock.Anything, "u1").
		Return(profile.Profile{UserID: "u1", Username: "alice"}, true, nil).
		Once()
	profileRepo.
		On("GetByID", mock.Anything, "u2").
		Return(profile.Profile{UserID: "u2", Username: "bob"}, true, nil).
		Once()
	leaderboardRepo.
		On("Replace", mock.Anything, mock.MatchedBy(func(v leaderboard.Leaderboard) bool {
			return v.WeekID == weekID &&
				v.ActualTieBreakerTotalPoints == total &&
				len(v.Entries) == 2 &&
				v.Entries[0].UserID == "u2" &&
				v.Entries[0].Username == "bob" &&
				v.Entries[1].UserID == "u1"
		})).
		Return(nil).
		Once()

	built, err := service.RebuildWeek(context.Background(), weekID)
	if err != nil {
		t.Fatalf("rebuild week: %v", err)
	}
	if !built {
		t.Fatalf("expected the board rebuilt")
	}
}

func TestLeaderboardService_RebuildWeek_OpenWeekSkipsUsingMockery(t *testing.T) {
	t.Parallel()

	weekRepo := weekmock.NewRepository(t)
	submissionRepo := submissionmock.NewRepository(t)
	profileRepo := profilemock.NewRepository(t)
	leaderboardRepo := leaderboardmock.NewRepository(t)

	service := NewLeaderboardService(weekRepo, submissionRepo, profileRepo, leaderboardRepo, nil)
	weekID := "2025-09-09"

	// No expectations on the other repositories, a touch on any of them
	// fails the test.
	weekRepo.
		On("Get", mock.Anything, weekID).
		Return(week.Week{
			ID: weekID,
			Games: []week.Game{
				{ID: "g1", Completed: true},
				{ID: "g2"},
			},
		}, true, nil).
		Once()

	built, err := service.RebuildWeek(context.Background(), weekID)
	if err != nil {
		t.Fatalf("rebuild week: %v", err)
	}
	if built {
		t.Fatalf("expected no rebuild while a game is still open")
	}
}
