package request

import "encoding/json"

// CreateSkill holds the request body for adding a skill to an agent.
type CreateSkill struct {
	Name     string          `json:"name" validate:"required,min=1,max=255"`
	Version  string          `json:"version" validate:"required,min=1,max=64"`
	Manifest json.RawMessage `json:"manifest,omitempty"`
}
