package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/studiofx/platform/internal/api/request"
	"github.com/studiofx/platform/internal/api/response"
	"github.com/studiofx/platform/internal/core"
	"github.com/studiofx/platform/internal/model"
	"github.com/studiofx/platform/internal/platform"
)

// Project handles project endpoints.
type Project struct {
	svc *core.ProjectService
}

// NewProject creates a new Project handler.
func NewProject(svc *core.ProjectService) *Project {
	return &Project{svc: svc}
}

// Create creates a new project owned by the caller.
func (h *Project) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProject
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := currentUser(w, r)
	if user == nil {
		return
	}

	now := time.Now()
	project := &model.Project{
		ID:          platform.NewID(),
		OwnerID:     user.ID,
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.svc.Create(r.Context(), project); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, project)
}

// Get retrieves a project by ID.
func (h *Project) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "project not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, project)
}

// List lists projects with cursor-based pagination.
func (h *Project) List(w http.ResponseWriter, r *http.Request) {
	pg := request.ParsePagination(r)

	projects, hasMore, err := h.svc.List(r.Context(), pg.Limit, pg.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(projects) > 0 {
		nextCursor = projects[len(projects)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, projects, nextCursor, hasMore)
}

// Update updates a project's name and description.
func (h *Project) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateProject
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "project not found")
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	project.UpdatedAt = time.Now()
	if err := h.svc.Update(r.Context(), project); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, project)
}

// Delete removes a project.
func (h *Project) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
