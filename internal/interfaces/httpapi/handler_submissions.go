package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/submission"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req submitPicksRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make(map[string]string, len(req.Picks))
	for _, pick := range req.Picks {
		gameID := strings.TrimSpace(pick.GameID)
		if _, dup := picks[gameID]; dup {
			writeError(ctx, w, fmt.Errorf("%w: duplicate pick for game %s", usecase.ErrInvalidInput, gameID))
			return
		}
		picks[gameID] = strings.TrimSpace(pick.Team)
	}

	entry, err := h.submissionService.SubmitPicks(ctx, usecase.SubmitPicksInput{
		UserID:           principal.UserID,
		Tier:             req.Tier,
		TieBreakerPoints: req.TieBreakerPoints,
		Picks:            picks,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "user_id", principal.UserID, "tier", req.Tier, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submissionToDTO(ctx, entry))
}

func (h *Handler) ListMySubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMySubmissions")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	weekID := strings.TrimSpace(r.URL.Query().Get("week"))
	if weekID == "" {
		current, err := h.weekService.Current(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "resolve current week failed", "user_id", principal.UserID, "error", err)
			writeError(ctx, w, err)
			return
		}
		weekID = current.ID
	}

	items, err := h.submissionService.ListMine(ctx, principal.UserID, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list my submissions failed", "user_id", principal.UserID, "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionsToDTO(ctx, items))
}

func (h *Handler) ListWeekPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeekPicks")
	defer span.End()

	weekID := strings.TrimSpace(r.PathValue("weekID"))
	items, err := h.submissionService.ListWeekPicks(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list week picks failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, submissionsToDTO(ctx, items))
}

type submitPicksRequest struct {
	Tier             int                     `json:"tier" validate:"required,oneof=25 50 100"`
	TieBreakerPoints int                     `json:"tie_breaker_points" validate:"gte=0"`
	Picks            []submitPickItemRequest `json:"picks" validate:"required,min=1,dive"`
}

type submitPickItemRequest struct {
	GameID string `json:"game_id" validate:"required"`
	Team   string `json:"team" validate:"required"`
}

type submissionDTO struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	WeekID              string    `json:"week_id"`
	Tier                int       `json:"tier"`
	TieBreakerPoints    int       `json:"tie_breaker_points"`
	Picks               []pickDTO `json:"picks"`
	SubmittedAt         time.Time `json:"submitted_at"`
	IsSettled           bool      `json:"is_settled"`
	TotalCorrectPicks   int       `json:"total_correct_picks"`
	TotalWinnerBucksWon float64   `json:"total_winner_bucks_won"`
}

type pickDTO struct {
	GameID   string  `json:"game_id"`
	Team     string  `json:"team"`
	Outcome  string  `json:"outcome"`
	Winnings float64 `json:"winnings"`
}

func submissionToDTO(ctx context.Context, v submission.Submission) submissionDTO {
	ctx, span := startSpan(ctx, "httpapi.submissionToDTO")
	defer span.End()

	// Picks live in a map keyed by game id. Render them sorted so the wire
	// shape is stable for clients and tests.
	gameIDs := make([]string, 0, len(v.Picks))
	for gameID := range v.Picks {
		gameIDs = append(gameIDs, gameID)
	}
	sort.Strings(gameIDs)

	picks := make([]pickDTO, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		pick := v.Picks[gameID]
		picks = append(picks, pickDTO{
			GameID:   pick.GameID,
			Team:     pick.Team,
			Outcome:  string(pick.Outcome),
			Winnings: pick.Winnings,
		})
	}

	return submissionDTO{
		ID:                  v.ID,
		UserID:              v.UserID,
		WeekID:              v.WeekID,
		Tier:                int(v.Tier),
		TieBreakerPoints:    v.TieBreakerPoints,
		Picks:               picks,
		SubmittedAt:         v.SubmittedAt,
		IsSettled:           v.IsSettled,
		TotalCorrectPicks:   v.TotalCorrectPicks,
		TotalWinnerBucksWon: v.TotalWinnerBucksWon,
	}
}

func submissionsToDTO(ctx context.Context, items []submission.Submission) []submissionDTO {
	out := make([]submissionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, submissionToDTO(ctx, item))
	}
	return out
}
