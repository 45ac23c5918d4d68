package services

import (
	"context"

	"projectboard/internal/domain/models"
)

// CreateSkillRequest represents a request to add a skill tag
type CreateSkillRequest struct {
	Name string `json:"name"`
}

// SkillService defines business logic operations for skills
type SkillService interface {
	// ListSkills returns every skill name in alphabetical order
	ListSkills(ctx context.Context) ([]string, error)

	// CreateSkill adds a skill; duplicates are rejected with a conflict
	CreateSkill(ctx context.Context, req *CreateSkillRequest) (*models.Skill, error)
}
