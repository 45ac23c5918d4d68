package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
)

// SkillRepository implements repositories.SkillRepository over PostgREST
type SkillRepository struct {
	client *Client
}

// NewSkillRepository creates a PostgREST-backed skill repository
func NewSkillRepository(client *Client) repositories.SkillRepository {
	return &SkillRepository{client: client}
}

// List retrieves every skill ordered by name
func (r *SkillRepository) List(ctx context.Context) ([]models.Skill, error) {
	query := url.Values{}
	query.Set("select", "id,name,created_at")
	query.Set("order", "name.asc")

	skills := []models.Skill{}
	if err := r.client.do(ctx, http.MethodGet, r.client.tables.Skills, query, nil, "", &skills); err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return skills, nil
}

// Create inserts a skill; PostgREST answers 409 on the unique name index
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	body := map[string]any{
		"name":       skill.Name,
		"created_at": skill.CreatedAt,
	}

	var created []models.Skill
	err := r.client.do(ctx, http.MethodPost, r.client.tables.Skills, nil, body, "return=representation", &created)
	if err != nil {
		if isDuplicate(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("skill '%s' already exists", skill.Name),
				ResourceType: "skill",
				ResourceKey:  skill.Name,
			}
		}
		return fmt.Errorf("create skill: %w", err)
	}
	if len(created) == 0 {
		return fmt.Errorf("create skill: empty representation")
	}

	skill.ID = created[0].ID
	skill.CreatedAt = created[0].CreatedAt
	return nil
}
