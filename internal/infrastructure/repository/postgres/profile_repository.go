package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select(
		"user_id",
		"username",
		"predictor_points",
		"winner_bucks",
		"created_at",
		"updated_at",
	).From("profiles").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build select profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("select profile: %w", err)
	}

	entries, err := r.listWeeklyEntries(ctx, userID)
	if err != nil {
		return profile.Profile{}, false, err
	}

	return profile.Profile{
		UserID:          row.UserID,
		Username:        row.Username,
		PredictorPoints: row.PredictorPoints,
		WinnerBucks:     row.WinnerBucks,
		WeeklyEntries:   entries,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}, true, nil
}

func (r *ProfileRepository) listWeeklyEntries(ctx context.Context, userID string) (map[string]int, error) {
	query, args, err := qb.Select("week_id", "entries").From("profile_week_entries").
		Where(
			qb.Eq("user_id", userID),
			qb.Expr("entries > 0"),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly entries query: %w", err)
	}

	var rows []profileWeekEntriesModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly entries: %w", err)
	}

	entries := make(map[string]int, len(rows))
	for _, row := range rows {
		entries[row.WeekID] = row.Entries
	}

	return entries, nil
}

// Create is set-if-absent via ON CONFLICT DO NOTHING. The affected row
// count tells whether this call won the insert.
func (r *ProfileRepository) Create(ctx context.Context, value profile.Profile) (bool, error) {
	const createQuery = `
INSERT INTO profiles (user_id, username, predictor_points, winner_bucks)
VALUES (:user_id, :username, :predictor_points, :winner_bucks)
ON CONFLICT (user_id) DO NOTHING`

	createSQL, createArgs, err := sqlx.Named(createQuery, map[string]any{
		"user_id":          value.UserID,
		"username":         value.Username,
		"predictor_points": value.PredictorPoints,
		"winner_bucks":     value.WinnerBucks,
	})
	if err != nil {
		return false, fmt.Errorf("bind insert profile query: %w", err)
	}
	createSQL = r.db.Rebind(createSQL)

	result, err := r.db.ExecContext(ctx, createSQL, createArgs...)
	if err != nil {
		return false, fmt.Errorf("insert profile %s: %w", value.UserID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read insert profile result: %w", err)
	}

	return affected > 0, nil
}

func (r *ProfileRepository) CreditWinnerBucks(ctx context.Context, userID string, delta float64) error {
	query, args, err := qb.Update("profiles").
		SetExpr("winner_bucks", "winner_bucks + ?", delta).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build credit winner bucks query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("credit winner bucks user=%s: %w", userID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read credit winner bucks result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s not found", userID)
	}

	return nil
}

// DebitPredictorPoints reports false without writing when the balance does
// not cover the amount. The balance guard sits in the WHERE clause so the
// check and the write are one statement.
func (r *ProfileRepository) DebitPredictorPoints(ctx context.Context, userID string, amount int) (bool, error) {
	query, args, err := qb.Update("profiles").
		SetExpr("predictor_points", "predictor_points - ?", amount).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.Expr("predictor_points >= ?", amount),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build debit predictor points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("debit predictor points user=%s: %w", userID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read debit predictor points result: %w", err)
	}
	if affected > 0 {
		return true, nil
	}

	exists, err := r.exists(ctx, userID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("profile %s not found", userID)
	}

	return false, nil
}

func (r *ProfileRepository) RefundPredictorPoints(ctx context.Context, userID string, amount int) error {
	query, args, err := qb.Update("profiles").
		SetExpr("predictor_points", "predictor_points + ?", amount).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build refund predictor points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("refund predictor points user=%s: %w", userID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read refund predictor points result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s not found", userID)
	}

	return nil
}

// IncrementWeeklyEntries counts an entry against the cap. The conflict arm
// only fires below the cap, so the affected row count reports whether this
// entry still fits. The foreign key rejects counts for unknown users.
func (r *ProfileRepository) IncrementWeeklyEntries(ctx context.Context, userID, weekID string, maxEntries int) (bool, error) {
	if maxEntries <= 0 {
		return false, nil
	}

	const incrementQuery = `
INSERT INTO profile_week_entries (user_id, week_id, entries)
VALUES (:user_id, :week_id, 1)
ON CONFLICT (user_id, week_id)
DO UPDATE SET
    entries = profile_week_entries.entries + 1,
    updated_at = NOW()
WHERE profile_week_entries.entries < :max_entries`

	incrementSQL, incrementArgs, err := sqlx.Named(incrementQuery, map[string]any{
		"user_id":     userID,
		"week_id":     weekID,
		"max_entries": maxEntries,
	})
	if err != nil {
		return false, fmt.Errorf("bind increment weekly entries query: %w", err)
	}
	incrementSQL = r.db.Rebind(incrementSQL)

	result, err := r.db.ExecContext(ctx, incrementSQL, incrementArgs...)
	if err != nil {
		return false, fmt.Errorf("increment weekly entries user=%s week=%s: %w", userID, weekID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read increment weekly entries result: %w", err)
	}

	return affected > 0, nil
}

func (r *ProfileRepository) DecrementWeeklyEntries(ctx context.Context, userID, weekID string) error {
	query, args, err := qb.Update("profile_week_entries").
		SetExpr("entries", "entries - 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("week_id", weekID),
			qb.Expr("entries > 0"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build decrement weekly entries query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("decrement weekly entries user=%s week=%s: %w", userID, weekID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read decrement weekly entries result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Zero counts are a valid no-op, a vanished profile is not.
	exists, err := r.exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("profile %s not found", userID)
	}

	return nil
}

func (r *ProfileRepository) exists(ctx context.Context, userID string) (bool, error) {
	const existsQuery = `
SELECT EXISTS (
    SELECT 1
    FROM profiles
    WHERE user_id = $1
      AND deleted_at IS NULL
)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, existsQuery, userID); err != nil {
		return false, fmt.Errorf("check profile exists user=%s: %w", userID, err)
	}

	return exists, nil
}
