package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newAgentHandler() *Agent {
	return NewAgent(nil)
}

func TestAgentCreate_InvalidJSON(t *testing.T) {
	h := newAgentHandler()
	rec := httptest.NewRecorder()
	r := newRequestRaw(http.MethodPost, "/agents", "{bad json")

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid JSON")
}

func TestAgentCreate_UnknownKind(t *testing.T) {
	h := newAgentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/agents", map[string]any{
		"name": "builder-1",
		"kind": "janitor",
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestAgentCreate_MissingKind(t *testing.T) {
	h := newAgentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodPost, "/agents", map[string]any{
		"name": "builder-1",
	})

	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAgentGet_EmptyID(t *testing.T) {
	h := newAgentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/agents/", nil)
	r = withChiURLParam(r, "id", "")

	h.Get(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "missing required ID")
}

func TestAgentDelete_EmptyID(t *testing.T) {
	h := newAgentHandler()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodDelete, "/agents/", nil)
	r = withChiURLParam(r, "id", "")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
