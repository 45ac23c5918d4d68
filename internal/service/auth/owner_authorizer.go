package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
)

// OwnerBasedAuthorizer implements ResourceAuthorizer using ownership checks.
// Only the user who created a project may update, archive or delete it.
type OwnerBasedAuthorizer struct {
	projectRepo repositories.ProjectRepository
}

// NewOwnerBasedAuthorizer creates a new ownership-based authorizer
func NewOwnerBasedAuthorizer(projectRepo repositories.ProjectRepository) *OwnerBasedAuthorizer {
	return &OwnerBasedAuthorizer{projectRepo: projectRepo}
}

// CanModifyProject loads the project and checks userID is its owner.
// The existence check runs first so unknown projects report 404, not 403.
func (a *OwnerBasedAuthorizer) CanModifyProject(ctx context.Context, userID, projectID string) (*models.Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	project, err := a.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(userID) {
		return nil, fmt.Errorf("user %s does not own project %s: %w", userID, projectID, domain.ErrForbidden)
	}

	return project, nil
}
