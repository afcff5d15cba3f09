package model

import "time"

// Release is a versioned cut of a project. PublishedAt is nil while the
// release is still a draft.
type Release struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"project_id"`
	Version     string     `json:"version"`
	Notes       string     `json:"notes,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
