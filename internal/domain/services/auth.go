package services

import (
	"context"

	"projectboard/internal/domain/models"
)

// ResourceAuthorizer checks whether a caller may mutate a resource.
// Current implementation: ownership-based (caller created the project).
//
// Services call the authorizer before every mutation so the check never
// depends on anything the client computed.
type ResourceAuthorizer interface {
	// CanModifyProject loads the project and verifies userID owns it.
	// Returns domain.ErrNotFound if the project is absent and
	// domain.ErrForbidden if userID is not the owner.
	CanModifyProject(ctx context.Context, userID, projectID string) (*models.Project, error)
}
