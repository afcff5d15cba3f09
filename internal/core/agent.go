package core

import (
	"context"
	"fmt"

	"github.com/studiofx/platform/internal/model"
)

type AgentService struct {
	db DB
}

func NewAgentService(db DB) *AgentService {
	return &AgentService{db: db}
}

func (s *AgentService) Create(ctx context.Context, agent *model.Agent) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO agents (id, name, kind, config, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		agent.ID, agent.Name, agent.Kind, agent.Config, agent.CreatedAt, agent.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create agent: %w", err)
	}
	return nil
}

func (s *AgentService) GetByID(ctx context.Context, id string) (*model.Agent, error) {
	var a model.Agent
	err := s.db.QueryRow(ctx,
		"SELECT id, name, kind, config, created_at, updated_at FROM agents WHERE id = $1", id,
	).Scan(&a.ID, &a.Name, &a.Kind, &a.Config, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get agent %s: %w", id, err)
	}
	return &a, nil
}

func (s *AgentService) List(ctx context.Context, limit int, cursor string) ([]model.Agent, bool, error) {
	query := `SELECT id, name, kind, config, created_at, updated_at FROM agents`
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
		return nil, false, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var agents []model.Agent
	for rows.Next() {
		var a model.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Kind, &a.Config, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate agents: %w", err)
	}

	hasMore := len(agents) > limit
	if hasMore {
		agents = agents[:limit]
	}
	return agents, hasMore, nil
}

func (s *AgentService) Update(ctx context.Context, agent *model.Agent) error {
	_, err := s.db.Exec(ctx,
		`UPDATE agents SET name = $1, kind = $2, config = $3, updated_at = now() WHERE id = $4`,
		agent.Name, agent.Kind, agent.Config, agent.ID,
	)
	if err != nil {
		return fmt.Errorf("update agent %s: %w", agent.ID, err)
	}
	return nil
}

func (s *AgentService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM agents WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete agent %s: %w", id, err)
	}
	return nil
}
