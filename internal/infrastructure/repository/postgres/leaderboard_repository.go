package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) GetByWeek(ctx context.Context, weekID string) (leaderboard.Leaderboard, bool, error) {
	query, args, err := qb.Select(
		"week_id",
		"entries",
		"actual_tie_breaker_total_points",
		"built_at",
	).From("leaderboards").
		Where(
			qb.Eq("week_id", weekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return leaderboard.Leaderboard{}, false, fmt.Errorf("build select leaderboard query: %w", err)
	}

	var row leaderboardTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return leaderboard.Leaderboard{}, false, nil
		}
		return leaderboard.Leaderboard{}, false, fmt.Errorf("select leaderboard: %w", err)
	}

	value, err := row.toDomain()
	if err != nil {
		return leaderboard.Leaderboard{}, false, fmt.Errorf("decode leaderboard %s: %w", weekID, err)
	}

	return value, true, nil
}

// Replace swaps the whole ranking in one statement, a rebuild never patches
// rows.
func (r *LeaderboardRepository) Replace(ctx context.Context, value leaderboard.Leaderboard) error {
	entriesJSON, err := marshalLeaderboardEntries(value.Entries)
	if err != nil {
		return fmt.Errorf("marshal leaderboard entries: %w", err)
	}

	const replaceQuery = `
INSERT INTO leaderboards (week_id, entries, actual_tie_breaker_total_points, built_at)
VALUES (:week_id, :entries, :actual_tie_breaker_total_points, :built_at)
ON CONFLICT (week_id)
DO UPDATE SET
    entries = EXCLUDED.entries,
    actual_tie_breaker_total_points = EXCLUDED.actual_tie_breaker_total_points,
    built_at = EXCLUDED.built_at,
    updated_at = NOW(),
    deleted_at = NULL`

	replaceSQL, replaceArgs, err := sqlx.Named(replaceQuery, map[string]any{
		"week_id":                         value.WeekID,
		"entries":                         entriesJSON,
		"actual_tie_breaker_total_points": value.ActualTieBreakerTotalPoints,
		"built_at":                        value.BuiltAt,
	})
	if err != nil {
		return fmt.Errorf("bind replace leaderboard query: %w", err)
	}
	replaceSQL = r.db.Rebind(replaceSQL)

	if _, err := r.db.ExecContext(ctx, replaceSQL, replaceArgs...); err != nil {
		return fmt.Errorf("replace leaderboard %s: %w", value.WeekID, err)
	}

	return nil
}
