package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/studiofx/platform/internal/api/request"
	"github.com/studiofx/platform/internal/api/response"
)

// AuditLog represents an audit log entry.
type AuditLog struct {
	ID          int64           `json:"id"`
	UserID      *string         `json:"user_id,omitempty"`
	Method      string          `json:"method"`
	Path        string          `json:"path"`
	StatusCode  int             `json:"status_code"`
	RequestBody json.RawMessage `json:"request_body,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Audit struct {
	pool *pgxpool.Pool
}

func NewAudit(pool *pgxpool.Pool) *Audit {
	return &Audit{pool: pool}
}

// List returns audit log entries, newest first, with optional filters on
// HTTP method and acting user.
func (h *Audit) List(w http.ResponseWriter, r *http.Request) {
	pg := request.ParsePagination(r)

	action := r.URL.Query().Get("action")
	userID := r.URL.Query().Get("user_id")

	query := `SELECT id, user_id, method, path, status_code, request_body, created_at
              FROM audit_logs WHERE 1=1`
	args := []any{}
	argIdx := 1

	if action != "" {
		query += fmt.Sprintf(` AND method = $%d`, argIdx)
		args = append(args, action)
		argIdx++
	}
	if userID != "" {
		query += fmt.Sprintf(` AND user_id = $%d`, argIdx)
		args = append(args, userID)
		argIdx++
	}
	if pg.Cursor != "" {
		query += fmt.Sprintf(` AND id < $%d`, argIdx)
		args = append(args, pg.Cursor)
		argIdx++
	}

	query += fmt.Sprintf(` ORDER BY id DESC LIMIT $%d`, argIdx)
	args = append(args, pg.Limit+1)

	rows, err := h.pool.Query(r.Context(), query, args...)
	if err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer rows.Close()

	var logs []AuditLog
	for rows.Next() {
		var l AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Method, &l.Path, &l.StatusCode, &l.RequestBody, &l.CreatedAt); err != nil {
			response.WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		logs = append(logs, l)
	}

	hasMore := len(logs) > pg.Limit
	if hasMore {
		logs = logs[:pg.Limit]
	}
	var nextCursor string
	if hasMore && len(logs) > 0 {
		nextCursor = fmt.Sprintf("%d", logs[len(logs)-1].ID)
	}

	response.WritePaginated(w, http.StatusOK, logs, nextCursor, hasMore)
}
