package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/upskill/internal/app"
	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/safety"
	"github.com/okian/upskill/internal/domain/skill"
	"github.com/okian/upskill/internal/domain/types"
	"github.com/okian/upskill/internal/validation"
	"github.com/okian/upskill/pkg/logger"
)

// AdviseDependencies defines the interface for planning operations.
type AdviseDependencies interface {
	Advise(ctx context.Context, profile model.Profile) (model.Plan, error)
	AdviseBatch(ctx context.Context, profiles []model.Profile) ([]model.Plan, error)
	UnratedLevel() skill.Level
}

// AdviseHandler handles plan requests.
type AdviseHandler struct {
	deps   AdviseDependencies
	logger logger.Logger
}

// NewAdviseHandler creates a new advise handler.
func NewAdviseHandler(deps AdviseDependencies, log logger.Logger) *AdviseHandler {
	if log == nil {
		log = logger.Get()
	}
	return &AdviseHandler{deps: deps, logger: log}
}

type batchResponse struct {
	Plans []types.PlanView `json:"plans"`
}

// HandleAdvise handles POST /advise requests.
func (h *AdviseHandler) HandleAdvise(w http.ResponseWriter, r *http.Request) {
	const op = "api.advise"
	var req adviseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	profile, err := req.toProfile(h.deps.UnratedLevel())
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if notes := req.notes(); notes != "" {
		h.logger.Debug(r.Context(), "advise request notes",
			logger.String("trace", TraceID(r.Context())),
			logger.String("notes", safety.RedactPII(notes)),
		)
	}

	plan, err := h.deps.Advise(r.Context(), profile)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.FromPlan(plan))
}

// HandleAdviseBatch handles POST /advise/batch requests.
func (h *AdviseHandler) HandleAdviseBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.advise_batch"
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	unrated := h.deps.UnratedLevel()
	profiles := make([]model.Profile, 0, len(req.Profiles))
	for i, pr := range req.Profiles {
		p, err := pr.toProfile(unrated)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("profile %d: %w", i, err)))
			return
		}
		profiles = append(profiles, p)
	}

	plans, err := h.deps.AdviseBatch(r.Context(), profiles)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	resp := batchResponse{Plans: make([]types.PlanView, 0, len(plans))}
	for _, p := range plans {
		resp.Plans = append(resp.Plans, types.FromPlan(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// fail maps service errors onto HTTP responses.
func (h *AdviseHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, validation.ErrValidation):
		writeError(w, r, http.StatusBadRequest, "validation_error", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, safety.ErrUnsafeInput):
		writeError(w, r, http.StatusBadRequest, "unsafe_input", NewKind(op, ErrUnsafeInput))
	case errors.Is(err, service.ErrEmptyBatch), errors.Is(err, service.ErrBatchTooLarge):
		writeError(w, r, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, r, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		h.logger.Error(r.Context(), "advise failed",
			logger.String("op", op),
			logger.String("trace", TraceID(r.Context())),
			logger.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, "internal_error", NewKind(op, ErrInternal))
	}
}
