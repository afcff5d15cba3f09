package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studiofx/platform/internal/api/request"
	"github.com/studiofx/platform/internal/api/response"
	"github.com/studiofx/platform/internal/core"
)

// User handles user account endpoints.
type User struct {
	svc *core.UserService
}

// NewUser creates a new User handler.
func NewUser(svc *core.UserService) *User {
	return &User{svc: svc}
}

// Create registers a new user account.
func (h *User) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUser
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.Create(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.WriteJSON(w, http.StatusCreated, user)
}

// Get retrieves a user by ID.
func (h *User) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteError(w, http.StatusNotFound, "user not found")
		return
	}
	response.WriteJSON(w, http.StatusOK, user)
}

// Me returns the authenticated caller's account.
func (h *User) Me(w http.ResponseWriter, r *http.Request) {
	user := currentUser(w, r)
	if user == nil {
		return
	}
	response.WriteJSON(w, http.StatusOK, user)
}

// List lists users with cursor-based pagination.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	pg := request.ParsePagination(r)

	users, hasMore, err := h.svc.List(r.Context(), pg.Limit, pg.Cursor)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var nextCursor string
	if hasMore && len(users) > 0 {
		nextCursor = users[len(users)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, users, nextCursor, hasMore)
}
