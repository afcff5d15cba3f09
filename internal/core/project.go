package core

import (
	"context"
	"fmt"

	"github.com/studiofx/platform/internal/model"
)

type ProjectService struct {
	db DB
}

func NewProjectService(db DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(ctx context.Context, project *model.Project) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO projects (id, owner_id, name, slug, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		project.ID, project.OwnerID, project.Name, project.Slug, project.Description,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *ProjectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := s.db.QueryRow(ctx,
		`SELECT id, owner_id, name, slug, description, created_at, updated_at
		 FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Slug, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get project %s: %w", id, err)
	}
	return &p, nil
}

func (s *ProjectService) List(ctx context.Context, limit int, cursor string) ([]model.Project, bool, error) {
	query := `SELECT id, owner_id, name, slug, description, created_at, updated_at FROM projects`
	args := []any{}
	argIdx := 1

	if cursor != "" {
		query += fmt.Sprintf(` WHERE id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}

	query += ` ORDER BY id`
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Slug, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate projects: %w", err)
	}

	hasMore := len(projects) > limit
	if hasMore {
		projects = projects[:limit]
	}
	return projects, hasMore, nil
}

func (s *ProjectService) Update(ctx context.Context, project *model.Project) error {
	_, err := s.db.Exec(ctx,
		`UPDATE projects SET name = $1, description = $2, updated_at = now() WHERE id = $3`,
		project.Name, project.Description, project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project %s: %w", project.ID, err)
	}
	return nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}
