package request

import "encoding/json"

// CreateAgent holds the request body for registering an agent.
type CreateAgent struct {
	Name   string          `json:"name" validate:"required,min=1,max=255"`
	Kind   string          `json:"kind" validate:"required,oneof=builder reviewer deployer custom"`
	Config json.RawMessage `json:"config,omitempty"`
}

// UpdateAgent holds the request body for updating an agent.
type UpdateAgent struct {
	Name   string          `json:"name" validate:"required,min=1,max=255"`
	Kind   string          `json:"kind" validate:"required,oneof=builder reviewer deployer custom"`
	Config json.RawMessage `json:"config,omitempty"`
}
