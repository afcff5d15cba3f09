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

// Skill handles skill endpoints nested under an agent.
type Skill struct {
	svc    *core.SkillService
	agents *core.AgentService
}

// NewSkill creates a new Skill handler.
func NewSkill(svc *core.SkillService, agents *core.AgentService) *Skill {
	return &Skill{svc: svc, agents: agents}
}

// Create adds a skill to an agent.
func (h *Skill) Create(w http.ResponseWriter, r *http.Request) {
	agentID, err := request.RequireID(chi.URLParam(r, "agentID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.CreateSkill
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.agents.GetByID(r.Context(), agentID); err != nil {
		response.WriteError(w, http.StatusNotFound, "agent not found")
		return
	}

	skill := &model.Skill{
		ID:        platform.NewID(),
		AgentID:   agentID,
		Name:      req.Name,
		Version:   req.Version,
		Manifest:  req.Manifest,
		CreatedAt: time.Now(),
	}
	if err := h.svc.Create(r.Context(), skill); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, skill)
}

// ListByAgent lists an agent's skills.
func (h *Skill) ListByAgent(w http.ResponseWriter, r *http.Request) {
	agentID, err := request.RequireID(chi.URLParam(r, "agentID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	skills, err := h.svc.ListByAgent(r.Context(), agentID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, skills)
}

// Get retrieves a skill by ID.
func (h *Skill) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	skill, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "skill not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, skill)
}

// Delete removes a skill.
func (h *Skill) Delete(w http.ResponseWriter, r *http.Request) {
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
