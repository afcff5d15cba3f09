package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newProjectHandler() *Project {
	return NewProject(nil)
}

// --- Create ---

func TestProjectCreate_InvalidJSON(t *testing.T) {
	h := newProjectHandler()
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodPost, "/projects", "{bad json")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestProjectCreate_MissingRequiredFields(t *testing.T) {
	h := newProjectHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/projects", map[string]any{})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestProjectCreate_InvalidSlug(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{"uppercase", "My-Project"},
		{"spaces", "my project"},
		{"special chars", "my@project"},
		{"starts with digit", "1project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newProjectHandler()
			rec := httptest.NewRecorder()
			r := newRequest(http.MethodPost, "/projects", map[string]any{
				"name": "My Project",
				"slug": tt.slug,
			})

			h.Create(rec, r)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

// --- Get ---

func TestProjectGet_EmptyID(t *testing.T) {
	h := newProjectHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/projects/", nil)
	r = withChiURLParam(r, "id", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

// --- Update ---

func TestProjectUpdate_EmptyID(t *testing.T) {
	h := newProjectHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPut, "/projects/", map[string]any{"name": "n"})
	r = withChiURLParam(r, "id", "")

	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Delete ---

func TestProjectDelete_EmptyID(t *testing.T) {
	h := newProjectHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodDelete, "/projects/", nil)
	r = withChiURLParam(r, "id", "")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
