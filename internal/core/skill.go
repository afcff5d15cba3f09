package core

import (
	"context"
	"fmt"

	"github.com/studiofx/platform/internal/model"
)

type SkillService struct {
	db DB
}

func NewSkillService(db DB) *SkillService {
	return &SkillService{db: db}
}

func (s *SkillService) Create(ctx context.Context, skill *model.Skill) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO skills (id, agent_id, name, version, manifest, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		skill.ID, skill.AgentID, skill.Name, skill.Version, skill.Manifest, skill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create skill: %w", err)
	}
	return nil
}

func (s *SkillService) GetByID(ctx context.Context, id string) (*model.Skill, error) {
	var sk model.Skill
	err := s.db.QueryRow(ctx,
		"SELECT id, agent_id, name, version, manifest, created_at FROM skills WHERE id = $1", id,
	).Scan(&sk.ID, &sk.AgentID, &sk.Name, &sk.Version, &sk.Manifest, &sk.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get skill %s: %w", id, err)
	}
	return &sk, nil
}

func (s *SkillService) ListByAgent(ctx context.Context, agentID string) ([]model.Skill, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, agent_id, name, version, manifest, created_at FROM skills WHERE agent_id = $1 ORDER BY name", agentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	var skills []model.Skill
	for rows.Next() {
		var sk model.Skill
		if err := rows.Scan(&sk.ID, &sk.AgentID, &sk.Name, &sk.Version, &sk.Manifest, &sk.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, sk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}
	return skills, nil
}

func (s *SkillService) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM skills WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete skill %s: %w", id, err)
	}
	return nil
}
