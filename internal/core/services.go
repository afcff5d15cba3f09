package core

import (
	"github.com/rs/zerolog"
)

type Services struct {
	User       *UserService
	Auth       *AuthService
	APIKey     *APIKeyService
	Project    *ProjectService
	Repository *RepositoryService
	Agent      *AgentService
	Skill      *SkillService
	Release    *ReleaseService
}

func NewServices(db DB, sessionSecret, sessionIssuer string, logger zerolog.Logger) *Services {
	users := NewUserService(db)
	return &Services{
		User:       users,
		Auth:       NewAuthService(users, sessionSecret, sessionIssuer),
		APIKey:     NewAPIKeyService(NewAPIKeyStore(db), users, logger),
		Project:    NewProjectService(db),
		Repository: NewRepositoryService(db),
		Agent:      NewAgentService(db),
		Skill:      NewSkillService(db),
		Release:    NewReleaseService(db),
	}
}
