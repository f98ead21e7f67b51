package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type SubmitPicksInput struct {
	UserID           string
	Tier             int
	TieBreakerPoints int
	Picks            map[string]string
}

// SubmissionService takes pick sheets during the betting window and charges
// the entry fee up front. A submission that fails any check is rejected
// before the first write, the user's balances stay untouched.
type SubmissionService struct {
	weekRepo       week.Repository
	submissionRepo submission.Repository
	profileRepo    profile.Repository
	rules          submission.Rules
	idGen          idgen.Generator
	logger         *logging.Logger
	location       *time.Location
	now            func() time.Time
}

func NewSubmissionService(
	weekRepo week.Repository,
	submissionRepo submission.Repository,
	profileRepo profile.Repository,
	rules submission.Rules,
	idGen idgen.Generator,
	location *time.Location,
	logger *logging.Logger,
) *SubmissionService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{
		weekRepo:       weekRepo,
		submissionRepo: submissionRepo,
		profileRepo:    profileRepo,
		rules:          rules,
		idGen:          idGen,
		logger:         logger,
		location:       location,
		now:            time.Now,
	}
}

// SubmitPicks validates the sheet against the current week, charges the
// tier's entry fee in predictor points and stores the submission. The
// weekly entry cap and the balance are both enforced atomically in the
// store, a race that loses either guard rolls the other one back.
func (s *SubmissionService) SubmitPicks(ctx context.Context, input SubmitPicksInput) (submission.Submission, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubmissionService.SubmitPicks")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return submission.Submission{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(input.Picks) == 0 {
		return submission.Submission{}, fmt.Errorf("%w: picks are required", ErrInvalidInput)
	}

	now := s.now()
	bounds := week.BoundsAt(now, s.location)
	if !now.Before(bounds.BettingWindowEnd) {
		return submission.Submission{}, fmt.Errorf("%w: picks for week %s closed at %s", ErrBettingWindowClosed, bounds.WeekID, bounds.BettingWindowEnd.Format(time.RFC3339))
	}

	wk, exists, err := s.weekRepo.Get(ctx, bounds.WeekID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get week for submission: %w", err)
	}
	if !exists || len(wk.Games) == 0 {
		return submission.Submission{}, fmt.Errorf("%w: week %s has no games to pick yet", ErrInvalidInput, bounds.WeekID)
	}

	entry := submission.Submission{
		UserID:           input.UserID,
		WeekID:           bounds.WeekID,
		Tier:             submission.Tier(input.Tier),
		TieBreakerPoints: input.TieBreakerPoints,
		Picks:            make(map[string]submission.Pick, len(input.Picks)),
	}
	for gameID, team := range input.Picks {
		gameID = strings.TrimSpace(gameID)
		team = strings.TrimSpace(team)
		entry.Picks[gameID] = submission.Pick{
			GameID:  gameID,
			Team:    team,
			Tier:    entry.Tier,
			Outcome: submission.OutcomePending,
		}
	}

	if err := submission.ValidateEntry(entry, wk.Games, s.rules); err != nil {
		return submission.Submission{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	prof, exists, err := s.profileRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get profile for submission: %w", err)
	}
	if !exists {
		return submission.Submission{}, fmt.Errorf("%w: create a profile before submitting picks", ErrInvalidInput)
	}

	cost := s.rules.EntryCost(entry.Tier)
	if prof.EntriesFor(bounds.WeekID) >= s.rules.MaxEntriesPerWeek {
		return submission.Submission{}, fmt.Errorf("%w: week %s allows %d entries", ErrEntryLimitReached, bounds.WeekID, s.rules.MaxEntriesPerWeek)
	}
	if prof.PredictorPoints < cost {
		return submission.Submission{}, fmt.Errorf("%w: tier %d costs %d predictor points, balance is %d", ErrInsufficientPoints, entry.Tier, cost, prof.PredictorPoints)
	}

	submissionID, err := s.idGen.NewID()
	if err != nil {
		return submission.Submission{}, fmt.Errorf("generate submission id: %w", err)
	}
	entry.ID = submissionID
	entry.SubmittedAt = now.UTC()

	debited, err := s.profileRepo.DebitPredictorPoints(ctx, input.UserID, cost)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("debit entry fee user=%s: %w", input.UserID, err)
	}
	if !debited {
		return submission.Submission{}, fmt.Errorf("%w: tier %d costs %d predictor points", ErrInsufficientPoints, entry.Tier, cost)
	}

	counted, err := s.profileRepo.IncrementWeeklyEntries(ctx, input.UserID, bounds.WeekID, s.rules.MaxEntriesPerWeek)
	if err != nil {
		s.refundEntryFee(ctx, input.UserID, cost)
		return submission.Submission{}, fmt.Errorf("count weekly entry user=%s week=%s: %w", input.UserID, bounds.WeekID, err)
	}
	if !counted {
		s.refundEntryFee(ctx, input.UserID, cost)
		return submission.Submission{}, fmt.Errorf("%w: week %s allows %d entries", ErrEntryLimitReached, bounds.WeekID, s.rules.MaxEntriesPerWeek)
	}

	if err := s.submissionRepo.Create(ctx, entry); err != nil {
		s.rollbackEntry(ctx, input.UserID, bounds.WeekID, cost)
		return submission.Submission{}, fmt.Errorf("create submission user=%s week=%s: %w", input.UserID, bounds.WeekID, err)
	}

	s.logger.InfoContext(ctx, "submission accepted",
		"submission_id", entry.ID,
		"user_id", entry.UserID,
		"week_id", entry.WeekID,
		"tier", int(entry.Tier),
		"pick_count", len(entry.Picks),
	)
	return entry, nil
}

// GetByID returns one submission, owners only.
func (s *SubmissionService) GetByID(ctx context.Context, userID, submissionID string) (submission.Submission, error) {
	userID = strings.TrimSpace(userID)
	submissionID = strings.TrimSpace(submissionID)
	if userID == "" || submissionID == "" {
		return submission.Submission{}, fmt.Errorf("%w: user id and submission id are required", ErrInvalidInput)
	}

	entry, exists, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return submission.Submission{}, fmt.Errorf("get submission by id: %w", err)
	}
	if !exists {
		return submission.Submission{}, fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
	}
	if entry.UserID != userID {
		return submission.Submission{}, fmt.Errorf("%w: submission belongs to another user", ErrUnauthorized)
	}

	return entry, nil
}

// ListMine returns the caller's submissions for one week in submission
// order.
func (s *SubmissionService) ListMine(ctx context.Context, userID, weekID string) ([]submission.Submission, error) {
	userID = strings.TrimSpace(userID)
	weekID = strings.TrimSpace(weekID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if weekID == "" {
		return nil, fmt.Errorf("%w: week id is required", ErrInvalidInput)
	}

	items, err := s.submissionRepo.ListByUserWeek(ctx, userID, weekID)
	if err != nil {
		return nil, fmt.Errorf("list submissions user=%s week=%s: %w", userID, weekID, err)
	}
	return items, nil
}

// ListWeekPicks exposes every sheet of a week once the reveal time has
// passed. Before that the picks stay private even to other entrants.
func (s *SubmissionService) ListWeekPicks(ctx context.Context, weekID string) ([]submission.Submission, error) {
	weekID = strings.TrimSpace(weekID)
	if weekID == "" {
		return nil, fmt.Errorf("%w: week id is required", ErrInvalidInput)
	}

	wk, exists, err := s.weekRepo.Get(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("get week for picks reveal: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: week %s", ErrNotFound, weekID)
	}
	if wk.PicksRevealTime.IsZero() || s.now().Before(wk.PicksRevealTime) {
		return nil, fmt.Errorf("%w: picks for week %s reveal at %s", ErrPicksNotRevealed, weekID, wk.PicksRevealTime.Format(time.RFC3339))
	}

	items, err := s.submissionRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list submissions for week=%s: %w", weekID, err)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubmittedAt.Before(items[j].SubmittedAt)
	})
	return items, nil
}

func (s *SubmissionService) refundEntryFee(ctx context.Context, userID string, cost int) {
	if err := s.profileRepo.RefundPredictorPoints(ctx, userID, cost); err != nil {
		s.logger.ErrorContext(ctx, "refund entry fee failed",
			"user_id", userID,
			"amount", cost,
			"error", err,
		)
	}
}

func (s *SubmissionService) rollbackEntry(ctx context.Context, userID, weekID string, cost int) {
	if err := s.profileRepo.DecrementWeeklyEntries(ctx, userID, weekID); err != nil {
		s.logger.ErrorContext(ctx, "roll back weekly entry count failed",
			"user_id", userID,
			"week_id", weekID,
			"error", err,
		)
	}
	s.refundEntryFee(ctx, userID, cost)
}
