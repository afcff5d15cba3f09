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

// Agent handles agent registry endpoints.
type Agent struct {
	svc *core.AgentService
}

// NewAgent creates a new Agent handler.
func NewAgent(svc *core.AgentService) *Agent {
	return &Agent{svc: svc}
}

// Create registers an agent.
func (h *Agent) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAgent
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	agent := &model.Agent{
		ID:        platform.NewID(),
		Name:      req.Name,
		Kind:      req.Kind,
		Config:    req.Config,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.svc.Create(r.Context(), agent); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, agent)
}

// Get retrieves an agent by ID.
func (h *Agent) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	agent, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "agent not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, agent)
}

// List lists agents with cursor-based pagination.
func (h *Agent) List(w http.ResponseWriter, r *http.Request) {
	pg := request.ParsePagination(r)

	agents, hasMore, err := h.svc.List(r.Context(), pg.Limit, pg.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(agents) > 0 {
		nextCursor = agents[len(agents)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, agents, nextCursor, hasMore)
}

// Update replaces an agent's definition.
func (h *Agent) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.UpdateAgent
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	agent, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "agent not found")
		return
	}

	agent.Name = req.Name
	agent.Kind = req.Kind
	agent.Config = req.Config
	agent.UpdatedAt = time.Now()
	if err := h.svc.Update(r.Context(), agent); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, agent)
}

// Delete unregisters an agent.
func (h *Agent) Delete(w http.ResponseWriter, r *http.Request) {
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
