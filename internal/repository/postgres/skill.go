package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
)

// PostgresSkillRepository implements the SkillRepository interface
type PostgresSkillRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(config *RepositoryConfig) repositories.SkillRepository {
	return &PostgresSkillRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List retrieves every skill ordered by name
func (r *PostgresSkillRepository) List(ctx context.Context) ([]models.Skill, error) {
	query := fmt.Sprintf(`SELECT id, name, created_at FROM %s ORDER BY name ASC`, r.tables.Skills)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := []models.Skill{}
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(&skill.ID, &skill.Name, &skill.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan skill: %w", err)
		}
		skills = append(skills, skill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skills: %w", err)
	}

	return skills, nil
}

// Create inserts a skill; the unique index on name rejects duplicates
func (r *PostgresSkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, created_at)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, r.tables.Skills)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, skill.Name, skill.CreatedAt).Scan(&skill.ID, &skill.CreatedAt)
	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("skill '%s' already exists", skill.Name),
				ResourceType: "skill",
				ResourceKey:  skill.Name,
			}
		}
		return fmt.Errorf("create skill: %w", err)
	}

	return nil
}
