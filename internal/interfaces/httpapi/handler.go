package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type Handler struct {
	weekService        *usecase.WeekService
	submissionService  *usecase.SubmissionService
	profileService     *usecase.ProfileService
	leaderboardService *usecase.LeaderboardService
	reconciliation     *usecase.ReconciliationService
	jobDispatchRepo    jobscheduler.Repository
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	weekService *usecase.WeekService,
	submissionService *usecase.SubmissionService,
	profileService *usecase.ProfileService,
	leaderboardService *usecase.LeaderboardService,
	reconciliation *usecase.ReconciliationService,
	jobDispatchRepo jobscheduler.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		weekService:        weekService,
		submissionService:  submissionService,
		profileService:     profileService,
		leaderboardService: leaderboardService,
		reconciliation:     reconciliation,
		jobDispatchRepo:    jobDispatchRepo,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody fills dst from the request body and rejects unknown fields. An
// empty body is an error; optional-body routes use decodeOptionalBody.
func decodeBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func decodeOptionalBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
