package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type WeekRepository struct {
	db *sqlx.DB
}

func NewWeekRepository(db *sqlx.DB) *WeekRepository {
	return &WeekRepository{db: db}
}

func (r *WeekRepository) Get(ctx context.Context, weekID string) (week.Week, bool, error) {
	query, args, err := qb.Select(
		"week_id",
		"betting_window_start",
		"betting_window_end",
		"picks_reveal_time",
		"tie_breaker_game_id",
		"actual_tie_breaker_total_points",
		"created_at",
		"updated_at",
	).From("weeks").
		Where(
			qb.Eq("week_id", weekID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return week.Week{}, false, fmt.Errorf("build select week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return week.Week{}, false, nil
		}
		return week.Week{}, false, fmt.Errorf("select week: %w", err)
	}

	games, err := r.listGames(ctx, weekID)
	if err != nil {
		return week.Week{}, false, err
	}

	value := row.toDomain()
	value.Games = games

	return value, true, nil
}

// listGames returns games in insertion order, which is the row id order.
func (r *WeekRepository) listGames(ctx context.Context, weekID string) ([]week.Game, error) {
	query, args, err := qb.Select(
		"game_id",
		"home_team",
		"away_team",
		"commence_time",
		"moneyline",
		"home_score",
		"away_score",
		"completed",
	).From("week_games").
		Where(
			qb.Eq("week_id", weekID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select week games query: %w", err)
	}

	var rows []weekGameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select week games: %w", err)
	}

	games := make([]week.Game, 0, len(rows))
	for _, row := range rows {
		game, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode week game %s: %w", row.GameID, err)
		}
		games = append(games, game)
	}

	return games, nil
}

// Upsert writes the temporal fields and the game list. The tie breaker
// columns are deliberately absent from both statements so the write-once
// setters own them. The game conflict arm keeps completed sticky and never
// nulls a score back out.
func (r *WeekRepository) Upsert(ctx context.Context, value week.Week) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for week upsert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertWeekQuery = `
INSERT INTO weeks (week_id, betting_window_start, betting_window_end, picks_reveal_time)
VALUES (:week_id, :betting_window_start, :betting_window_end, :picks_reveal_time)
ON CONFLICT (week_id)
DO UPDATE SET
    betting_window_start = EXCLUDED.betting_window_start,
    betting_window_end = EXCLUDED.betting_window_end,
    picks_reveal_time = EXCLUDED.picks_reveal_time,
    updated_at = NOW(),
    deleted_at = NULL`

	weekSQL, weekArgs, err := sqlx.Named(upsertWeekQuery, map[string]any{
		"week_id":              value.ID,
		"betting_window_start": value.BettingWindowStart,
		"betting_window_end":   value.BettingWindowEnd,
		"picks_reveal_time":    value.PicksRevealTime,
	})
	if err != nil {
		return fmt.Errorf("bind upsert week query: %w", err)
	}
	weekSQL = tx.Rebind(weekSQL)
	if _, err := tx.ExecContext(ctx, weekSQL, weekArgs...); err != nil {
		return fmt.Errorf("upsert week %s: %w", value.ID, err)
	}

	const upsertGameQuery = `
INSERT INTO week_games (
    week_id,
    game_id,
    home_team,
    away_team,
    commence_time,
    moneyline,
    home_score,
    away_score,
    completed
) VALUES (:week_id, :game_id, :home_team, :away_team, :commence_time, :moneyline, :home_score, :away_score, :completed)
ON CONFLICT (week_id, game_id) WHERE deleted_at IS NULL
DO UPDATE SET
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    commence_time = COALESCE(EXCLUDED.commence_time, week_games.commence_time),
    moneyline = EXCLUDED.moneyline,
    home_score = COALESCE(EXCLUDED.home_score, week_games.home_score),
    away_score = COALESCE(EXCLUDED.away_score, week_games.away_score),
    completed = week_games.completed OR EXCLUDED.completed,
    updated_at = NOW()`

	for _, game := range value.Games {
		moneylineJSON, err := marshalMoneyline(game.Moneyline)
		if err != nil {
			return fmt.Errorf("marshal moneyline game=%s: %w", game.ID, err)
		}

		gameSQL, gameArgs, err := sqlx.Named(upsertGameQuery, map[string]any{
			"week_id":       value.ID,
			"game_id":       game.ID,
			"home_team":     game.HomeTeam,
			"away_team":     game.AwayTeam,
			"commence_time": nullableTime(game.CommenceTime),
			"moneyline":     moneylineJSON,
			"home_score":    game.HomeScore,
			"away_score":    game.AwayScore,
			"completed":     game.Completed,
		})
		if err != nil {
			return fmt.Errorf("bind upsert week game game=%s query: %w", game.ID, err)
		}
		gameSQL = tx.Rebind(gameSQL)
		if _, err := tx.ExecContext(ctx, gameSQL, gameArgs...); err != nil {
			return fmt.Errorf("upsert week game game=%s: %w", game.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit week upsert tx: %w", err)
	}

	return nil
}

func (r *WeekRepository) SetTieBreakerGame(ctx context.Context, weekID, gameID string) (bool, error) {
	query, args, err := qb.Update("weeks").
		Set("tie_breaker_game_id", gameID).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("week_id", weekID),
			qb.EqLiteral("tie_breaker_game_id", ""),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set tie breaker game query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set tie breaker game week=%s: %w", weekID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read set tie breaker game result: %w", err)
	}

	return affected > 0, nil
}

func (r *WeekRepository) SetActualTieBreakerTotal(ctx context.Context, weekID string, totalPoints int) (bool, error) {
	query, args, err := qb.Update("weeks").
		Set("actual_tie_breaker_total_points", totalPoints).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("week_id", weekID),
			qb.IsNull("actual_tie_breaker_total_points"),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build set actual tie breaker total query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("set actual tie breaker total week=%s: %w", weekID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read set actual tie breaker total result: %w", err)
	}

	return affected > 0, nil
}
