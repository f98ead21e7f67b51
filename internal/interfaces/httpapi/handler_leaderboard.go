package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
)

func (h *Handler) GetWeekLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekLeaderboard")
	defer span.End()

	weekID := strings.TrimSpace(r.PathValue("weekID"))
	board, err := h.leaderboardService.GetByWeek(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(ctx, board))
}

type leaderboardDTO struct {
	WeekID                      string              `json:"week_id"`
	Entries                     []leaderboardRowDTO `json:"entries"`
	ActualTieBreakerTotalPoints int                 `json:"actual_tie_breaker_total_points"`
	BuiltAt                     time.Time           `json:"built_at"`
}

type leaderboardRowDTO struct {
	Rank                int     `json:"rank"`
	UserID              string  `json:"user_id"`
	Username            string  `json:"username"`
	TotalCorrectPicks   int     `json:"total_correct_picks"`
	TotalWinnerBucksWon float64 `json:"total_winner_bucks_won"`
	TieBreakerPoints    int     `json:"tie_breaker_points"`
}

func leaderboardToDTO(ctx context.Context, v leaderboard.Leaderboard) leaderboardDTO {
	_, span := startSpan(ctx, "httpapi.leaderboardToDTO")
	defer span.End()

	rows := make([]leaderboardRowDTO, 0, len(v.Entries))
	for i, entry := range v.Entries {
		rows = append(rows, leaderboardRowDTO{
			Rank:                i + 1,
			UserID:              entry.UserID,
			Username:            entry.Username,
			TotalCorrectPicks:   entry.TotalCorrectPicks,
			TotalWinnerBucksWon: entry.TotalWinnerBucksWon,
			TieBreakerPoints:    entry.TieBreakerPoints,
		})
	}

	return leaderboardDTO{
		WeekID:                      v.WeekID,
		Entries:                     rows,
		ActualTieBreakerTotalPoints: v.ActualTieBreakerTotalPoints,
		BuiltAt:                     v.BuiltAt,
	}
}
