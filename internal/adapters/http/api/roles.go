package api

import (
	"context"
	"net/http"

	"github.com/okian/upskill/internal/domain/model"
	"github.com/okian/upskill/internal/domain/types"
)

// RolesDependencies defines the interface for role listings.
type RolesDependencies interface {
	Roles(ctx context.Context) ([]model.RoleRequirement, error)
}

// RolesHandler handles role requests.
type RolesHandler struct {
	deps RolesDependencies
}

// NewRolesHandler creates a new roles handler.
func NewRolesHandler(deps RolesDependencies) *RolesHandler {
	return &RolesHandler{deps: deps}
}

type rolesResponse struct {
	Roles []types.RoleView `json:"roles"`
}

// HandleGetRoles handles GET /roles requests.
func (h *RolesHandler) HandleGetRoles(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roles"
	roles, err := h.deps.Roles(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	resp := rolesResponse{Roles: make([]types.RoleView, 0, len(roles))}
	for _, role := range roles {
		resp.Roles = append(resp.Roles, types.FromRole(role))
	}
	writeJSON(w, http.StatusOK, resp)
}
