package handler

import (
	"net/http"

	mw "github.com/studiofx/platform/internal/api/middleware"
	"github.com/studiofx/platform/internal/api/response"
	"github.com/studiofx/platform/internal/model"
)

// currentUser returns the authenticated caller. It writes a 403 and returns
// nil when no filter established identity, which only happens if a route was
// mounted outside the enforcement chain by mistake.
func currentUser(w http.ResponseWriter, r *http.Request) *model.User {
	user := mw.GetUser(r.Context())
	if user == nil {
		response.WriteForbidden(w, "authentication required")
		return nil
	}
	return user
}
