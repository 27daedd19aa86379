package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/upskill/internal/adapters/repository"
	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/types"
)

// CourseDependencies defines the interface for catalog lookups.
type CourseDependencies interface {
	Course(ctx context.Context, id string) (model.Course, error)
}

// CourseHandler handles course requests.
type CourseHandler struct {
	deps CourseDependencies
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(deps CourseDependencies) *CourseHandler {
	return &CourseHandler{deps: deps}
}

// HandleGetCourse handles GET /course/{id} requests.
func (h *CourseHandler) HandleGetCourse(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_course"
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	course, err := h.deps.Course(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, types.FromCourse(course))
}
