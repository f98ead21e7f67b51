package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

// JobQueue hands a delayed wake-up to an external queue. The deduplication
// id collapses retries of the same time slot.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

type ReconcilerConfig struct {
	LiveInterval   time.Duration
	IdleInterval   time.Duration
	PreKickoffLead time.Duration
}

// ReconcileResult reports one pass: the week that was refreshed, the
// settlement outcome and whether the board was rebuilt.
type ReconcileResult struct {
	WeekID           string            `json:"week_id"`
	GameCount        int               `json:"game_count"`
	CompletedGames   int               `json:"completed_game_count"`
	Settlement       SettlementSummary `json:"settlement"`
	LeaderboardBuilt bool              `json:"leaderboard_built"`
	NextWakeIn       string            `json:"next_wake_in,omitempty"`
	NextWakeDelay    time.Duration     `json:"-"`
	Shared           bool              `json:"shared,omitempty"`
}

// ReconciliationService drives the periodic pass: refresh the week's games,
// settle submissions, rebuild the board, in that order. Overlapping
// triggers collapse into one running pass, and a pass that fails during the
// fetch phase leaves every store untouched.
type ReconciliationService struct {
	gameSync     *GameSyncService
	settlement   *SettlementService
	leaderboards *LeaderboardService
	queue        JobQueue
	dispatchRepo jobscheduler.Repository
	cfg          ReconcilerConfig
	logger       *logging.Logger
	now          func() time.Time
	passFlight   resilience.SingleFlight
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

const reconcileJobPath = "/v1/internal/jobs/reconcile"

func NewReconciliationService(
	gameSync *GameSyncService,
	settlement *SettlementService,
	leaderboards *LeaderboardService,
	queue JobQueue,
	dispatchRepo jobscheduler.Repository,
	cfg ReconcilerConfig,
	logger *logging.Logger,
) *ReconciliationService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.LiveInterval <= 0 {
		cfg.LiveInterval = time.Minute
	}
	if cfg.IdleInterval <= 0 {
		cfg.IdleInterval = 15 * time.Minute
	}
	if cfg.PreKickoffLead <= 0 {
		cfg.PreKickoffLead = 15 * time.Minute
	}

	return &ReconciliationService{
		gameSync:     gameSync,
		settlement:   settlement,
		leaderboards: leaderboards,
		queue:        queue,
		dispatchRepo: dispatchRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// RunPass executes one reconcile pass for the current week. Concurrent
// callers share the running pass instead of stacking a second one on top.
func (s *ReconciliationService) RunPass(ctx context.Context) (ReconcileResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconciliationService.RunPass")
	defer span.End()

	v, err, shared := s.passFlight.Do("reconcile:pass", func() (any, error) {
		return s.runPassOnce(ctx)
	})
	if err != nil {
		return ReconcileResult{}, err
	}

	result, _ := v.(ReconcileResult)
	result.Shared = shared
	return result, nil
}

func (s *ReconciliationService) runPassOnce(ctx context.Context) (ReconcileResult, error) {
	started := s.now().UTC()

	wk, err := s.gameSync.SyncCurrentWeek(ctx)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	result := ReconcileResult{WeekID: wk.ID, GameCount: len(wk.Games)}
	for _, game := range wk.Games {
		if game.Completed {
			result.CompletedGames++
		}
	}

	summary, err := s.settlement.SettleWeek(ctx, wk.ID)
	if err != nil {
		return ReconcileResult{}, err
	}
	result.Settlement = summary

	built, err := s.leaderboards.RebuildWeek(ctx, wk.ID)
	if err != nil {
		return ReconcileResult{}, err
	}
	result.LeaderboardBuilt = built

	delay := s.nextWakeDelay(wk, started)
	result.NextWakeIn = delay.String()
	result.NextWakeDelay = delay
	s.enqueueWake(ctx, wk.ID, delay, started)

	s.logger.InfoContext(ctx, "reconcile pass finished",
		"week_id", wk.ID,
		"game_count", result.GameCount,
		"completed_games", result.CompletedGames,
		"decided_picks", summary.DecidedPicks,
		"settled_submissions", summary.SettledCount,
		"leaderboard_built", built,
		"next_wake_in", result.NextWakeIn,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

// nextWakeDelay picks how soon the next pass should run. Live games poll at
// the live interval, a near kickoff wakes the pass just before it, a fully
// settled week sleeps until there is something to do again.
func (s *ReconciliationService) nextWakeDelay(wk week.Week, now time.Time) time.Duration {
	minDelay := time.Minute

	hasLive := false
	var nearestKickoff *time.Time
	for _, game := range wk.Games {
		if game.Completed {
			continue
		}
		if !game.CommenceTime.After(now) {
			hasLive = true
			continue
		}
		if nearestKickoff == nil || game.CommenceTime.Before(*nearestKickoff) {
			kickoff := game.CommenceTime
			nearestKickoff = &kickoff
		}
	}

	if hasLive {
		return maxDuration(s.cfg.LiveInterval, minDelay)
	}
	if nearestKickoff != nil {
		delay := nearestKickoff.Add(-s.cfg.PreKickoffLead).Sub(now)
		if delay <= 0 {
			return maxDuration(s.cfg.LiveInterval, minDelay)
		}
		return maxDuration(delay, minDelay)
	}

	return maxDuration(s.cfg.IdleInterval, minDelay)
}

// enqueueWake is best effort, the in-process scheduler keeps ticking even
// when the queue is down.
func (s *ReconciliationService) enqueueWake(ctx context.Context, weekID string, delay time.Duration, now time.Time) {
	dedupID := dedupKey("reconcile", weekID, now.Add(delay), s.cfg.LiveInterval)
	payload := map[string]any{
		"week_id":     weekID,
		"dispatch_id": dedupID,
	}
	if err := s.queue.Enqueue(ctx, reconcileJobPath, payload, delay, dedupID); err != nil {
		s.logger.WarnContext(ctx, "enqueue reconcile wake failed",
			"week_id", weekID,
			"dispatch_id", dedupID,
			"error", err,
		)
		s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
			DispatchID:   dedupID,
			JobName:      "reconcile",
			JobPath:      reconcileJobPath,
			WeekID:       weekID,
			Status:       jobscheduler.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now,
		})
		return
	}
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dedupID,
		JobName:    "reconcile",
		JobPath:    reconcileJobPath,
		WeekID:     weekID,
		Status:     jobscheduler.StatusSent,
		Payload:    payload,
		OccurredAt: now,
	})
}

func (s *ReconciliationService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}

func dedupKey(prefix, weekID string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	prefix = sanitizeDedupSegment(prefix)
	weekID = sanitizeDedupSegment(weekID)
	return prefix + "-" + weekID + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func maxDuration(left, right time.Duration) time.Duration {
	if left > right {
		return left
	}
	return right
}
