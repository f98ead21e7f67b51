package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

const (
	defaultSettlementWorkers = 8
	maxSettlementWorkers     = 16

	settlementStatusSettled = "settled"
	settlementStatusPartial = "partial"
	settlementStatusSkipped = "skipped"
	settlementStatusFailed  = "failed"
)

// SettlementSummary reports one settlement pass over a week.
type SettlementSummary struct {
	WeekID          string          `json:"week_id"`
	SubmissionCount int             `json:"submission_count"`
	SettledCount    int             `json:"settled_count"`
	PartialCount    int             `json:"partial_count"`
	SkippedCount    int             `json:"skipped_count"`
	FailedCount     int             `json:"failed_count"`
	DecidedPicks    int             `json:"decided_picks"`
	CreditedBucks   float64         `json:"credited_bucks"`
	WorkerCount     int             `json:"worker_count"`
	Results         []SettlementRow `json:"results"`
}

type SettlementRow struct {
	SubmissionID  string  `json:"submission_id"`
	UserID        string  `json:"user_id"`
	Status        string  `json:"status"`
	DecidedPicks  int     `json:"decided_picks"`
	CreditedBucks float64 `json:"credited_bucks"`
	Message       string  `json:"message,omitempty"`
}

// SettlementService resolves the pending picks of a week's submissions and
// credits profiles with the winnings delta of each pass. Every step is
// idempotent, rerunning a pass over settled state changes nothing.
type SettlementService struct {
	weekRepo       week.Repository
	submissionRepo submission.Repository
	profileRepo    profile.Repository
	rules          submission.Rules
	logger         *logging.Logger
	workers        int
}

func NewSettlementService(
	weekRepo week.Repository,
	submissionRepo submission.Repository,
	profileRepo profile.Repository,
	rules submission.Rules,
	workers int,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		weekRepo:       weekRepo,
		submissionRepo: submissionRepo,
		profileRepo:    profileRepo,
		rules:          rules,
		logger:         logger,
		workers:        workers,
	}
}

// SettleWeek runs one settlement pass over every submission of the week.
// Already settled submissions are never reprocessed. Failures of single
// submissions are reported in the summary and do not abort the pass.
func (s *SettlementService) SettleWeek(ctx context.Context, weekID string) (SettlementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleWeek")
	defer span.End()

	summary := SettlementSummary{WeekID: weekID}

	wk, found, err := s.weekRepo.Get(ctx, weekID)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("load week weekID=%s: %w", weekID, err)
	}
	if !found {
		return summary, nil
	}

	submissions, err := s.submissionRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("list submissions weekID=%s: %w", weekID, err)
	}

	summary.SubmissionCount = len(submissions)
	if len(submissions) == 0 {
		return summary, nil
	}

	workerCount := normalizeSettlementWorkerCount(s.workers, len(submissions))
	summary.WorkerCount = workerCount

	results := make(chan SettlementRow, len(submissions))
	var decidedPicks atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SettlementSummary{}, fmt.Errorf("create settlement pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, entry := range submissions {
		entry := entry
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := s.settleOne(ctx, entry, wk)
			decidedPicks.Add(int32(row.DecidedPicks))
			results <- row
		}); err != nil {
			workers.Done()
			return SettlementSummary{}, fmt.Errorf("submit settlement task: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		summary.Results = append(summary.Results, row)
		summary.CreditedBucks += row.CreditedBucks
		switch row.Status {
		case settlementStatusSettled:
			summary.SettledCount++
		case settlementStatusPartial:
			summary.PartialCount++
		case settlementStatusSkipped:
			summary.SkippedCount++
		default:
			summary.FailedCount++
		}
	}

	sort.SliceStable(summary.Results, func(i, j int) bool {
		return summary.Results[i].SubmissionID < summary.Results[j].SubmissionID
	})
	summary.DecidedPicks = int(decidedPicks.Load())

	return summary, nil
}

// settleOne resolves one submission and persists the pass. The submission
// update lands before the profile credit so a rerun never recomputes a
// delta that was already stored.
func (s *SettlementService) settleOne(ctx context.Context, entry submission.Submission, wk week.Week) SettlementRow {
	row := SettlementRow{SubmissionID: entry.ID, UserID: entry.UserID}

	if entry.IsSettled {
		row.Status = settlementStatusSkipped
		return row
	}

	result := submission.Settle(entry, wk, s.rules)
	for _, gameID := range result.MissingGames {
		s.logger.WarnContext(ctx, "pick references game missing from week",
			"week_id", wk.ID,
			"submission_id", entry.ID,
			"game_id", gameID,
		)
	}

	row.DecidedPicks = len(result.Decided)
	if len(result.Decided) == 0 && result.IsSettled == entry.IsSettled {
		row.Status = settlementStatusPartial
		return row
	}

	update := submission.SettlementUpdate{
		SubmissionID:        entry.ID,
		Picks:               result.Picks,
		TotalCorrectPicks:   result.TotalCorrectPicks,
		TotalWinnerBucksWon: result.TotalWinnerBucksWon,
		IsSettled:           result.IsSettled,
	}
	if err := s.submissionRepo.ApplySettlement(ctx, update); err != nil {
		row.Status = settlementStatusFailed
		row.Message = fmt.Sprintf("apply settlement: %v", err)
		return row
	}

	delta := result.TotalWinnerBucksWon - entry.TotalWinnerBucksWon
	if delta > 0 {
		if err := s.profileRepo.CreditWinnerBucks(ctx, entry.UserID, delta); err != nil {
			s.logger.ErrorContext(ctx, "credit winner bucks failed",
				"user_id", entry.UserID,
				"submission_id", entry.ID,
				"delta", delta,
				"error", err,
			)
			row.Status = settlementStatusFailed
			row.Message = fmt.Sprintf("credit winner bucks: %v", err)
			return row
		}
		row.CreditedBucks = delta
	}

	if result.IsSettled {
		row.Status = settlementStatusSettled
	} else {
		row.Status = settlementStatusPartial
	}
	return row
}

func normalizeSettlementWorkerCount(value, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = defaultSettlementWorkers
	}
	if value > maxSettlementWorkers {
		value = maxSettlementWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
