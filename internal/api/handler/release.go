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

// Release handles release endpoints nested under a project.
type Release struct {
	svc      *core.ReleaseService
	projects *core.ProjectService
}

// NewRelease creates a new Release handler.
func NewRelease(svc *core.ReleaseService, projects *core.ProjectService) *Release {
	return &Release{svc: svc, projects: projects}
}

// Create cuts a draft release for a project.
func (h *Release) Create(w http.ResponseWriter, r *http.Request) {
	projectID, err := request.RequireID(chi.URLParam(r, "projectID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateRelease
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.projects.GetByID(r.Context(), projectID); err != nil {
		response.WriteError(w, http.StatusNotFound, "project not found")
		return
	}

	release := &model.Release{
		ID:        platform.NewID(),
		ProjectID: projectID,
		Version:   req.Version,
		Notes:     req.Notes,
		CreatedAt: time.Now(),
	}
	if err := h.svc.Create(r.Context(), release); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, release)
}

// ListByProject lists a project's releases.
func (h *Release) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := request.RequireID(chi.URLParam(r, "projectID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	releases, err := h.svc.ListByProject(r.Context(), projectID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, releases)
}

// Get retrieves a release by ID.
func (h *Release) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	release, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "release not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, release)
}

// Publish stamps a draft release as published. Publishing twice fails.
func (h *Release) Publish(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Publish(r.Context(), id); err != nil {
		response.WriteError(w, http.StatusConflict, err.Error())
		return
	}

	release, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, release)
}
