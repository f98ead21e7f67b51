package usecase

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWeekService_Current_SynthesizesBeforeFirstSync(t *testing.T) {
	t.Parallel()

	repo := newStubWeekRepository()
	service := NewWeekService(repo, nil, time.UTC)
	service.now = syncTestNow

	got, err := service.Current(context.Background())
	if err != nil {
		t.Fatalf("Current error: %v", err)
	}
	if got.ID != "2025-09-09" {
		t.Fatalf("expected the clock derived week id, got %s", got.ID)
	}
	if len(got.Games) != 0 {
		t.Fatalf("expected no games before the first sync, got %d", len(got.Games))
	}
	if got.BettingWindowEnd != time.Date(2025, time.September, 11, 17, 0, 0, 0, time.UTC) {
		t.Fatalf("unexpected betting close %s", got.BettingWindowEnd)
	}
	if repo.upserts != 0 {
		t.Fatalf("expected the synthesized week not persisted, got %d writes", repo.upserts)
	}
}

func TestWeekService_Current_PrefersStoredWeek(t *testing.T) {
	t.Parallel()

	repo := newStubWeekRepository()
	if err := repo.Upsert(context.Background(), submissionTestWeek()); err != nil {
		t.Fatalf("seed week: %v", err)
	}
	service := NewWeekService(repo, nil, time.UTC)
	service.now = syncTestNow

	got, err := service.Current(context.Background())
	if err != nil {
		t.Fatalf("Current error: %v", err)
	}
	if len(got.Games) != 2 {
		t.Fatalf("expected the stored games, got %d", len(got.Games))
	}
}

func TestWeekService_Get(t *testing.T) {
	t.Parallel()

	repo := newStubWeekRepository()
	if err := repo.Upsert(context.Background(), submissionTestWeek()); err != nil {
		t.Fatalf("seed week: %v", err)
	}
	service := NewWeekService(repo, nil, time.UTC)

	got, err := service.Get(context.Background(), "2025-09-09")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "2025-09-09" {
		t.Fatalf("expected the stored week, got %s", got.ID)
	}

	if _, err := service.Get(context.Background(), "2099-01-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.Get(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestWeekService_RefreshOdds_ReturnsFreshWeek(t *testing.T) {
	t.Parallel()

	repo := newStubWeekRepository()
	gameSync := NewGameSyncService(repo, syncTestProvider(), time.UTC, "draftkings", 3, nil)
	gameSync.now = syncTestNow
	service := NewWeekService(repo, gameSync, time.UTC)
	service.now = syncTestNow

	got, err := service.RefreshOdds(context.Background())
	if err != nil {
		t.Fatalf("RefreshOdds error: %v", err)
	}
	if len(got.Games) != 2 {
		t.Fatalf("expected both in-week games persisted, got %d", len(got.Games))
	}
	if repo.upserts == 0 {
		t.Fatalf("expected the refresh to persist the week")
	}

	failing := syncTestProvider()
	failing.oddsErr = errors.New("provider down")
	gameSync2 := NewGameSyncService(newStubWeekRepository(), failing, time.UTC, "draftkings", 3, nil)
	gameSync2.now = syncTestNow
	service2 := NewWeekService(newStubWeekRepository(), gameSync2, time.UTC)

	if _, err := service2.RefreshOdds(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
