package core

import (
	"context"
	"fmt"

	"github.com/studiofx/platform/internal/model"
)

type ReleaseService struct {
	db DB
}

func NewReleaseService(db DB) *ReleaseService {
	return &ReleaseService{db: db}
}

func (s *ReleaseService) Create(ctx context.Context, release *model.Release) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO releases (id, project_id, version, notes, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		release.ID, release.ProjectID, release.Version, release.Notes, release.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create release: %w", err)
	}
	return nil
}

func (s *ReleaseService) GetByID(ctx context.Context, id string) (*model.Release, error) {
	var r model.Release
	err := s.db.QueryRow(ctx,
		`SELECT id, project_id, version, notes, published_at, created_at
		 FROM releases WHERE id = $1`, id,
	).Scan(&r.ID, &r.ProjectID, &r.Version, &r.Notes, &r.PublishedAt, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get release %s: %w", id, err)
	}
	return &r, nil
}

func (s *ReleaseService) ListByProject(ctx context.Context, projectID string) ([]model.Release, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, project_id, version, notes, published_at, created_at
		 FROM releases WHERE project_id = $1 ORDER BY created_at DESC`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	defer rows.Close()

	var releases []model.Release
	for rows.Next() {
		var r model.Release
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.Version, &r.Notes, &r.PublishedAt, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		releases = append(releases, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate releases: %w", err)
	}
	return releases, nil
}

// Publish stamps published_at once; republishing a published release fails.
func (s *ReleaseService) Publish(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE releases SET published_at = now() WHERE id = $1 AND published_at IS NULL", id,
	)
	if err != nil {
		return fmt.Errorf("publish release %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("release %s not found or already published", id)
	}
	return nil
}
