package repositories

import (
	"context"

	"projectboard/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
// Ownership is enforced by the service layer; Update, UpdateStatus and Delete
// also scope their writes to the project's user_id as a second guard.
type ProjectRepository interface {
	// Create inserts a project and fills in its generated ID
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID, returning domain.ErrNotFound if absent
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// List retrieves every project, newest first
	List(ctx context.Context) ([]models.Project, error)

	// Update replaces the editable fields and updated_at
	Update(ctx context.Context, project *models.Project) error

	// UpdateStatus writes status, archived_at and updated_at in one statement
	UpdateStatus(ctx context.Context, project *models.Project) error

	// Delete permanently removes a project
	Delete(ctx context.Context, id, userID string) error
}

// SkillRepository defines data access operations for skills
type SkillRepository interface {
	// List retrieves every skill ordered by name
	List(ctx context.Context) ([]models.Skill, error)

	// Create inserts a skill; a duplicate name yields *domain.ConflictError
	Create(ctx context.Context, skill *models.Skill) error
}

// Pinger reports whether the record store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}
