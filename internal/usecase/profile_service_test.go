package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/submission"
)

func TestProfileService_Create_StartsWithAllowance(t *testing.T) {
	t.Parallel()

	repo := newStubProfileRepository()
	service := NewProfileService(repo, submission.DefaultRules())
	service.now = func() time.Time {
		return time.Date(2025, time.September, 9, 8, 0, 0, 0, time.UTC)
	}

	created, err := service.Create(context.Background(), CreateProfileInput{UserID: "u1", Username: "  alice  "})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Username != "alice" {
		t.Fatalf("expected the username trimmed, got %q", created.Username)
	}
	if created.PredictorPoints != 1000 {
		t.Fatalf("expected the starting allowance, got %d", created.PredictorPoints)
	}
	if created.WinnerBucks != 0 {
		t.Fatalf("expected zero winner bucks, got %v", created.WinnerBucks)
	}

	stored, exists, err := repo.GetByID(context.Background(), "u1")
	if err != nil || !exists {
		t.Fatalf("expected the profile stored, exists=%v err=%v", exists, err)
	}
	if stored.CreatedAt != created.CreatedAt {
		t.Fatalf("expected matching timestamps, got %s vs %s", stored.CreatedAt, created.CreatedAt)
	}
}

func TestProfileService_Create_SecondCreateRejected(t *testing.T) {
	t.Parallel()

	repo := newStubProfileRepository()
	service := NewProfileService(repo, submission.DefaultRules())

	if _, err := service.Create(context.Background(), CreateProfileInput{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := service.Create(context.Background(), CreateProfileInput{UserID: "u1", Username: "impostor"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on duplicate create, got %v", err)
	}

	stored, _, err := repo.GetByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if stored.Username != "alice" {
		t.Fatalf("expected the original profile untouched, got %q", stored.Username)
	}
}

func TestProfileService_Get(t *testing.T) {
	t.Parallel()

	repo := newStubProfileRepository()
	service := NewProfileService(repo, submission.DefaultRules())

	if _, err := service.Get(context.Background(), "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := service.Create(context.Background(), CreateProfileInput{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := service.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("expected alice, got %q", got.Username)
	}
}
