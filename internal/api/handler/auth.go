package handler

import (
	"net/http"

	"github.com/studiofx/platform/internal/api/request"
	"github.com/studiofx/platform/internal/api/response"
	"github.com/studiofx/platform/internal/core"
)

// Auth handles session login.
type Auth struct {
	svc *core.AuthService
}

// NewAuth creates a new Auth handler.
func NewAuth(svc *core.AuthService) *Auth {
	return &Auth{svc: svc}
}

// Login exchanges email and password for a session token. Unknown email and
// wrong password produce the same response.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteUnauthorized(w, "invalid credentials")
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
