package client

import (
	"context"
	"net/http"
	"time"
)

// Skill is a global skill tag.
type Skill struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListSkills returns every skill name in alphabetical order.
func (c *Client) ListSkills(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.do(ctx, http.MethodGet, "/api/skills", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// CreateSkill adds a skill tag. A duplicate name is an APIError with status 409.
func (c *Client) CreateSkill(ctx context.Context, name string) (Skill, error) {
	var skill Skill
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/skills", body, &skill); err != nil {
		return Skill{}, err
	}
	return skill, nil
}
