package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/jobscheduler"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

var jobDispatchUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// RunReconcileJob drives one full reconcile pass. The queue publisher calls
// it back with the dispatch id it enqueued, manual curl invocations come in
// with an empty body and get a generated one.
func (h *Handler) RunReconcileJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcileJob")
	defer span.End()

	if h.reconciliation == nil {
		writeError(ctx, w, fmt.Errorf("%w: reconciliation service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req internalReconcileRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.reconciliation.RunPass(ctx)
	if err != nil {
		h.recordJobDispatch(ctx, req, jobscheduler.DispatchEvent{
			JobName:      "reconcile",
			JobPath:      "/v1/internal/jobs/reconcile",
			WeekID:       req.WeekID,
			Status:       jobscheduler.StatusFailed,
			Payload:      reconcileDispatchPayload(req),
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run reconcile job failed", "week_id", req.WeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.recordJobDispatch(ctx, req, jobscheduler.DispatchEvent{
		JobName:    "reconcile",
		JobPath:    "/v1/internal/jobs/reconcile",
		WeekID:     result.WeekID,
		Status:     jobscheduler.StatusCompleted,
		Payload:    reconcileDispatchPayload(req),
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

type internalReconcileRequest struct {
	WeekID     string `json:"week_id"`
	DispatchID string `json:"dispatch_id"`
}

func (h *Handler) recordJobDispatch(ctx context.Context, req internalReconcileRequest, event jobscheduler.DispatchEvent) {
	if h.jobDispatchRepo == nil {
		return
	}

	dispatchID := strings.TrimSpace(req.DispatchID)
	if dispatchID == "" {
		dispatchID = buildManualDispatchID(event.JobName, event.OccurredAt)
	}
	event.DispatchID = dispatchID

	traceID, spanID := requestTraceMeta(ctx)
	event.TraceID = traceID
	event.SpanID = spanID

	if err := h.jobDispatchRepo.UpsertEvent(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "record job dispatch failed",
			"dispatch_id", event.DispatchID,
			"job_name", event.JobName,
			"status", event.Status,
			"error", err,
		)
	}
}

func reconcileDispatchPayload(req internalReconcileRequest) map[string]any {
	payload := map[string]any{}
	if strings.TrimSpace(req.WeekID) != "" {
		payload["week_id"] = req.WeekID
	}
	if strings.TrimSpace(req.DispatchID) != "" {
		payload["dispatch_id"] = req.DispatchID
	}
	return payload
}

func buildManualDispatchID(jobName string, now time.Time) string {
	jobName = sanitizeDispatchPart(jobName)
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return "manual-" + jobName + "-" + ts
}

func sanitizeDispatchPart(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return jobDispatchUnsafeRegex.ReplaceAllString(value, "-")
}

func requestTraceMeta(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
