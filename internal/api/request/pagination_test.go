package request

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantCursor string
	}{
		{"defaults", "", DefaultLimit, ""},
		{"explicit limit", "?limit=10", 10, ""},
		{"clamped to max", "?limit=5000", MaxLimit, ""},
		{"zero falls back", "?limit=0", DefaultLimit, ""},
		{"negative falls back", "?limit=-3", DefaultLimit, ""},
		{"malformed falls back", "?limit=ten", DefaultLimit, ""},
		{"cursor carried", "?cursor=abc-123&limit=10", 10, "abc-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/projects"+tt.query, nil)
			p := ParsePagination(r)
			assert.Equal(t, tt.wantLimit, p.Limit)
			assert.Equal(t, tt.wantCursor, p.Cursor)
		})
	}
}
