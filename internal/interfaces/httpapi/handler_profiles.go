package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req createProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.profileService.Create(ctx, usecase.CreateProfileInput{
		UserID:   principal.UserID,
		Username: req.Username,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create profile failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, profileToDTO(ctx, created))
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetProfile")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	item, err := h.profileService.Get(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get profile failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profileToDTO(ctx, item))
}

type createProfileRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

type profileDTO struct {
	UserID          string         `json:"user_id"`
	Username        string         `json:"username"`
	PredictorPoints int            `json:"predictor_points"`
	WinnerBucks     float64        `json:"winner_bucks"`
	WeeklyEntries   map[string]int `json:"weekly_entries,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func profileToDTO(ctx context.Context, v profile.Profile) profileDTO {
	_, span := startSpan(ctx, "httpapi.profileToDTO")
	defer span.End()

	return profileDTO{
		UserID:          v.UserID,
		Username:        v.Username,
		PredictorPoints: v.PredictorPoints,
		WinnerBucks:     v.WinnerBucks,
		WeeklyEntries:   v.WeeklyEntries,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}
