package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// auditDB is the slice of pgxpool.Pool the audit writer needs.
type auditDB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AuditLogger is an async audit log writer for mutating requests.
type AuditLogger struct {
	db     auditDB
	logger zerolog.Logger
	ch     chan auditEntry
	done   chan struct{}
}

type auditEntry struct {
	UserID      *string
	Method      string
	Path        string
	StatusCode  int
	RequestBody json.RawMessage
}

func NewAuditLogger(db auditDB, logger zerolog.Logger) *AuditLogger {
	al := &AuditLogger{
		db:     db,
		logger: logger,
		ch:     make(chan auditEntry, 1024),
		done:   make(chan struct{}),
	}
	go al.drain()
	return al
}

func (al *AuditLogger) drain() {
	defer close(al.done)
	for entry := range al.ch {
		_, err := al.db.Exec(
			// context.Background since this runs detached from the request
			context.Background(),
			`INSERT INTO audit_logs (user_id, method, path, status_code, request_body, created_at)
			 VALUES ($1, $2, $3, $4, $5, now())`,
			entry.UserID, entry.Method, entry.Path, entry.StatusCode, entry.RequestBody,
		)
		if err != nil {
			al.logger.Error().Err(err).Msg("failed to write audit log")
		}
	}
}

// Close stops accepting entries and blocks until every queued entry has
// been written.
func (al *AuditLogger) Close() {
	close(al.ch)
	<-al.done
}

// sensitiveFields are redacted from audit log request bodies.
var sensitiveFields = []string{"password", "secret", "key", "token"}

// sanitizeBody redacts credential-bearing fields before the body is stored.
func sanitizeBody(body []byte) json.RawMessage {
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		return body
	}
	for _, field := range sensitiveFields {
		if _, ok := m[field]; ok {
			m[field] = "[REDACTED]"
		}
	}
	out, err := json.Marshal(m)
	if err != nil {
		return body
	}
	return out
}

// Middleware returns a chi middleware that records mutating API requests
// along with the acting user.
func (al *AuditLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodDelete {
			next.ServeHTTP(w, r)
			return
		}

		// Read and re-buffer the request body.
		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		entry := auditEntry{
			Method:     r.Method,
			Path:       r.URL.Path,
			StatusCode: sw.status,
		}
		if user := GetUser(r.Context()); user != nil {
			entry.UserID = &user.ID
		}
		if json.Valid(bodyBytes) {
			entry.RequestBody = sanitizeBody(bodyBytes)
		}

		select {
		case al.ch <- entry:
		default:
			al.logger.Warn().Msg("audit log queue full, dropping entry")
		}
	})
}
