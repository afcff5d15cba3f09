package model

import (
	"encoding/json"
	"time"
)

// Skill is a capability an agent exposes, versioned by its manifest.
type Skill struct {
	ID        string          `json:"id"`
	AgentID   string          `json:"agent_id"`
	Name      string          `json:"name"`
	Version   string          `json:"version"`
	Manifest  json.RawMessage `json:"manifest,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
