package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/submission"
)

type CreateProfileInput struct {
	UserID   string
	Username string
}

// ProfileService creates and reads player profiles. A fresh profile starts
// with the configured predictor point allowance, creating it twice is
// rejected without touching the stored one.
type ProfileService struct {
	profileRepo profile.Repository
	rules       submission.Rules
	now         func() time.Time
}

func NewProfileService(profileRepo profile.Repository, rules submission.Rules) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		rules:       rules,
		now:         time.Now,
	}
}

func (s *ProfileService) Create(ctx context.Context, input CreateProfileInput) (profile.Profile, error) {
	input.UserID = strings.TrimSpace(input.UserID)
	input.Username = strings.TrimSpace(input.Username)
	if input.UserID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.Username == "" {
		return profile.Profile{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	value := profile.Profile{
		UserID:          input.UserID,
		Username:        input.Username,
		PredictorPoints: s.rules.StartingPredictorPoints,
		WeeklyEntries:   make(map[string]int),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.profileRepo.Create(ctx, value)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("create profile user=%s: %w", input.UserID, err)
	}
	if !created {
		return profile.Profile{}, fmt.Errorf("%w: profile already exists for user %s", ErrInvalidInput, input.UserID)
	}

	return value, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (profile.Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	value, exists, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile by id: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile %s", ErrNotFound, userID)
	}

	return value, nil
}
