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

// Repository handles repository endpoints nested under a project.
type Repository struct {
	svc      *core.RepositoryService
	projects *core.ProjectService
}

// NewRepository creates a new Repository handler.
func NewRepository(svc *core.RepositoryService, projects *core.ProjectService) *Repository {
	return &Repository{svc: svc, projects: projects}
}

// Create attaches a repository to a project.
func (h *Repository) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := request.RequireID(chi.URLParam(r, "projectID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateRepository
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.projects.GetByID(r.Context(), projectID); err != nil {
		response.WriteError(w, http.StatusNotFound, "project not found")
		return
	}

	branch := req.DefaultBranch
	if branch == "" {
		branch = "main"
	}
	repo := &model.Repository{
		ID:            platform.NewID(),
		ProjectID:     projectID,
		Name:          req.Name,
		URL:           req.URL,
		DefaultBranch: branch,
		CreatedAt:     time.Now(),
	}
	if err := h.svc.Create(r.Context(), repo); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, repo)
}

// ListByProject lists a project's repositories.
func (h *Repository) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := request.RequireID(chi.URLParam(r, "projectID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	repos, err := h.svc.ListByProject(r.Context(), projectID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, repos)
}

// Get retrieves a repository by ID.
func (h *Repository) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	repo, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "repository not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, repo)
}

// Delete detaches a repository from its project.
func (h *Repository) Delete(w http.ResponseWriter, r *http.Request) {
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
