package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type SubmissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

var submissionColumns = []string{
	"public_id",
	"user_id",
	"week_id",
	"tier",
	"tie_breaker_points",
	"picks",
	"submitted_at",
	"is_settled",
	"total_correct_picks",
	"total_winner_bucks_won",
}

func (r *SubmissionRepository) GetByID(ctx context.Context, submissionID string) (submission.Submission, bool, error) {
	query, args, err := qb.Select(submissionColumns...).From("submissions").
		Where(
			qb.Eq("public_id", submissionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("build select submission query: %w", err)
	}

	var row submissionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return submission.Submission{}, false, nil
		}
		return submission.Submission{}, false, fmt.Errorf("select submission: %w", err)
	}

	value, err := row.toDomain()
	if err != nil {
		return submission.Submission{}, false, fmt.Errorf("decode submission %s: %w", submissionID, err)
	}

	return value, true, nil
}

func (r *SubmissionRepository) ListByWeek(ctx context.Context, weekID string) ([]submission.Submission, error) {
	return r.list(ctx,
		qb.Eq("week_id", weekID),
		qb.IsNull("deleted_at"),
	)
}

func (r *SubmissionRepository) ListByUserWeek(ctx context.Context, userID, weekID string) ([]submission.Submission, error) {
	return r.list(ctx,
		qb.Eq("user_id", userID),
		qb.Eq("week_id", weekID),
		qb.IsNull("deleted_at"),
	)
}

// list returns submissions in creation order, which is the row id order.
func (r *SubmissionRepository) list(ctx context.Context, conditions ...qb.Condition) ([]submission.Submission, error) {
	query, args, err := qb.Select(submissionColumns...).From("submissions").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select submissions query: %w", err)
	}

	var rows []submissionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select submissions: %w", err)
	}

	out := make([]submission.Submission, 0, len(rows))
	for _, row := range rows {
		value, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode submission %s: %w", row.PublicID, err)
		}
		out = append(out, value)
	}

	return out, nil
}

func (r *SubmissionRepository) Create(ctx context.Context, value submission.Submission) error {
	picksJSON, err := marshalPicks(value.Picks)
	if err != nil {
		return fmt.Errorf("marshal submission picks: %w", err)
	}

	query, args, err := qb.InsertModel("submissions", submissionInsertModel{
		PublicID:         value.ID,
		UserID:           value.UserID,
		WeekID:           value.WeekID,
		Tier:             int(value.Tier),
		TieBreakerPoints: value.TieBreakerPoints,
		Picks:            picksJSON,
		SubmittedAt:      value.SubmittedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert submission query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert submission %s: %w", value.ID, err)
	}

	return nil
}

// ApplySettlement locks the row, folds the update into the stored picks
// with decided outcomes kept, and writes the result back. is_settled only
// ever moves to true.
func (r *SubmissionRepository) ApplySettlement(ctx context.Context, update submission.SettlementUpdate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for settlement apply: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const lockQuery = `
SELECT picks
FROM submissions
WHERE public_id = $1
  AND deleted_at IS NULL
FOR UPDATE`

	var storedPicks string
	if err := tx.GetContext(ctx, &storedPicks, lockQuery, update.SubmissionID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("submission %s not found", update.SubmissionID)
		}
		return fmt.Errorf("lock submission %s: %w", update.SubmissionID, err)
	}

	current, err := unmarshalPicks(storedPicks)
	if err != nil {
		return fmt.Errorf("decode stored picks %s: %w", update.SubmissionID, err)
	}

	picksJSON, err := marshalPicks(mergeSettledPicks(current, update.Picks))
	if err != nil {
		return fmt.Errorf("marshal settled picks %s: %w", update.SubmissionID, err)
	}

	const updateQuery = `
UPDATE submissions
SET picks = :picks,
    total_correct_picks = :total_correct_picks,
    total_winner_bucks_won = :total_winner_bucks_won,
    is_settled = is_settled OR :is_settled,
    updated_at = NOW()
WHERE public_id = :public_id
  AND deleted_at IS NULL`

	updateSQL, updateArgs, err := sqlx.Named(updateQuery, map[string]any{
		"public_id":              update.SubmissionID,
		"picks":                  picksJSON,
		"total_correct_picks":    update.TotalCorrectPicks,
		"total_winner_bucks_won": update.TotalWinnerBucksWon,
		"is_settled":             update.IsSettled,
	})
	if err != nil {
		return fmt.Errorf("bind settlement update query: %w", err)
	}
	updateSQL = tx.Rebind(updateSQL)
	if _, err := tx.ExecContext(ctx, updateSQL, updateArgs...); err != nil {
		return fmt.Errorf("apply settlement %s: %w", update.SubmissionID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settlement apply tx: %w", err)
	}

	return nil
}
