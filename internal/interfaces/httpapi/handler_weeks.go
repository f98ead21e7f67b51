package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) GetCurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentWeek")
	defer span.End()

	current, err := h.weekService.Current(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get current week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, current))
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeek")
	defer span.End()

	weekID := strings.TrimSpace(r.PathValue("weekID"))
	item, err := h.weekService.Get(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get week failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, item))
}

func (h *Handler) RefreshCurrentWeekOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshCurrentWeekOdds")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	refreshed, err := h.weekService.RefreshOdds(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh odds failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(ctx, refreshed))
}

type weekDTO struct {
	ID                          string    `json:"id"`
	BettingWindowStart          time.Time `json:"betting_window_start"`
	BettingWindowEnd            time.Time `json:"betting_window_end"`
	PicksRevealTime             time.Time `json:"picks_reveal_time"`
	TieBreakerGameID            string    `json:"tie_breaker_game_id,omitempty"`
	ActualTieBreakerTotalPoints *int      `json:"actual_tie_breaker_total_points,omitempty"`
	Games                       []gameDTO `json:"games"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`
}

type gameDTO struct {
	ID           string         `json:"id"`
	HomeTeam     string         `json:"home_team"`
	AwayTeam     string         `json:"away_team"`
	CommenceTime time.Time      `json:"commence_time"`
	Moneyline    map[string]int `json:"moneyline,omitempty"`
	HomeScore    *int           `json:"home_score,omitempty"`
	AwayScore    *int           `json:"away_score,omitempty"`
	Completed    bool           `json:"completed"`
}

func weekToDTO(ctx context.Context, v week.Week) weekDTO {
	ctx, span := startSpan(ctx, "httpapi.weekToDTO")
	defer span.End()

	games := make([]gameDTO, 0, len(v.Games))
	for _, g := range v.Games {
		games = append(games, gameToDTO(ctx, g))
	}

	return weekDTO{
		ID:                          v.ID,
		BettingWindowStart:          v.BettingWindowStart,
		BettingWindowEnd:            v.BettingWindowEnd,
		PicksRevealTime:             v.PicksRevealTime,
		TieBreakerGameID:            v.TieBreakerGameID,
		ActualTieBreakerTotalPoints: v.ActualTieBreakerTotalPoints,
		Games:                       games,
		CreatedAt:                   v.CreatedAt,
		UpdatedAt:                   v.UpdatedAt,
	}
}

func gameToDTO(ctx context.Context, v week.Game) gameDTO {
	_, span := startSpan(ctx, "httpapi.gameToDTO")
	defer span.End()

	return gameDTO{
		ID:           v.ID,
		HomeTeam:     v.HomeTeam,
		AwayTeam:     v.AwayTeam,
		CommenceTime: v.CommenceTime,
		Moneyline:    v.Moneyline,
		HomeScore:    v.HomeScore,
		AwayScore:    v.AwayScore,
		Completed:    v.Completed,
	}
}
