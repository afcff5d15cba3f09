package core

import (
	"context"
	"fmt"

	"github.com/studiofx/platform/internal/model"
)

type RepositoryService struct {
	db DB
}

func NewRepositoryService(db DB) *RepositoryService {
	return &RepositoryService{db: db}
}

func (s *RepositoryService) Create(ctx context.Context, repo *model.Repository) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO repositories (id, project_id, name, url, default_branch, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		repo.ID, repo.ProjectID, repo.Name, repo.URL, repo.DefaultBranch, repo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create repository: %w", err)
	}
	return nil
}

func (s *RepositoryService) GetByID(ctx context.Context, id string) (*model.Repository, error) {
	var r model.Repository
	err := s.db.QueryRow(ctx,
		`SELECT id, project_id, name, url, default_branch, created_at
		 FROM repositories WHERE id = $1`, id,
	).Scan(&r.ID, &r.ProjectID, &r.Name, &r.URL, &r.DefaultBranch, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get repository %s: %w", id, err)
	}
	return &r, nil
}

func (s *RepositoryService) ListByProject(ctx context.Context, projectID string) ([]model.Repository, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, project_id, name, url, default_branch, created_at
		 FROM repositories WHERE project_id = $1 ORDER BY name`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	defer rows.Close()

	var repos []model.Repository
	for rows.Next() {
		var r model.Repository
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.Name, &r.URL, &r.DefaultBranch, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan repository: %w", err)
		}
		repos = append(repos, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repositories: %w", err)
	}
	return repos, nil
}

func (s *RepositoryService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM repositories WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete repository %s: %w", id, err)
	}
	return nil
}
