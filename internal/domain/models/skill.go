package models

import "time"

// Skill is a global tag that any project can reference by name
type Skill struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
