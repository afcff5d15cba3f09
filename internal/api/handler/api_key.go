package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/studiofx/platform/internal/api/request"
	"github.com/studiofx/platform/internal/api/response"
	"github.com/studiofx/platform/internal/core"
)

// APIKey handles API key management endpoints.
type APIKey struct {
	svc *core.APIKeyService
}

// NewAPIKey creates a new APIKey handler.
func NewAPIKey(svc *core.APIKeyService) *APIKey {
	return &APIKey{svc: svc}
}

// Create issues a new API key for the caller. The full key string is
// returned once in the response and never again.
func (h *APIKey) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAPIKey
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ExpiresAt != nil && !req.ExpiresAt.After(time.Now()) {
		response.WriteError(w, http.StatusBadRequest, "expires_at must be in the future")
		return
	}

	user := currentUser(w, r)
	if user == nil {
		return
	}

	key, rawKey, err := h.svc.Create(r.Context(), user.ID, req.Name, req.ExpiresAt)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// The stored record carries only the hash; rawKey exists in memory here
	// and nowhere else.
	resp := map[string]any{
		"public_id":  key.PublicID,
		"name":       key.Name,
		"key":        rawKey,
		"expires_at": key.ExpiresAt,
		"created_at": key.CreatedAt,
	}
	response.WriteJSON(w, http.StatusCreated, resp)
}

// List lists the caller's API keys, newest first.
func (h *APIKey) List(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}

	keys, err := h.svc.ListForOwner(r.Context(), user.ID)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusOK, keys)
}

// Revoke revokes one of the caller's API keys. Revoking an already revoked
// key succeeds; revoking another user's key does not.
func (h *APIKey) Revoke(w http.ResponseWriter, r *http.Request) {
	publicID, err := request.RequireID(chi.URLParam(r, "publicID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := currentUser(w, r)
	if user == nil {
		return
	}

	if err := h.svc.Revoke(r.Context(), publicID, user.ID); err != nil {
		switch {
		case errors.Is(err, core.ErrAPIKeyNotFound):
			response.WriteError(w, http.StatusNotFound, "api key not found")
		case errors.Is(err, core.ErrNotKeyOwner):
			response.WriteForbidden(w, "not the key owner")
		default:
			response.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
