package services

import (
	"context"

	"projectboard/internal/domain/models"
)

// ProjectInput carries the editable fields shared by create and update.
// Optional fields stay nil when absent from the request body; an update
// leaves the stored value of an absent optional field untouched.
type ProjectInput struct {
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	Skills                  []string `json:"skills"`
	ContactMethod           *string  `json:"contact_method,omitempty"`
	ContactInfo             *string  `json:"contact_info,omitempty"`
	ContactName             *string  `json:"contact_name,omitempty"`
	IdealTeammate           []string `json:"ideal_teammate,omitempty"`
	CollaborationPreference *string  `json:"collaboration_preference,omitempty"`
	Location                *string  `json:"location,omitempty"`
}

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID string `json:"userId"`
	ProjectInput
}

// UpdateProjectRequest replaces title, description and skills and any
// optional field present in the body
type UpdateProjectRequest struct {
	UserID string `json:"userId"`
	ProjectInput
}

// DeleteProjectRequest identifies the caller deleting a project
type DeleteProjectRequest struct {
	UserID string `json:"userId"`
}

// ArchiveProjectRequest toggles a project between active and archived.
// Archive is a pointer so a missing flag can be told apart from false.
type ArchiveProjectRequest struct {
	UserID  string `json:"userId"`
	Archive *bool  `json:"archive"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// ListProjects retrieves all projects, newest first
	ListProjects(ctx context.Context) ([]models.Project, error)

	// GetProject retrieves a project by ID
	GetProject(ctx context.Context, id string) (*models.Project, error)

	// CreateProject validates and stores a new project owned by req.UserID
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// UpdateProject rewrites a project's editable fields; owner only
	UpdateProject(ctx context.Context, id string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject permanently removes a project; owner only
	DeleteProject(ctx context.Context, id string, req *DeleteProjectRequest) error

	// ArchiveProject archives or restores a project; owner only
	ArchiveProject(ctx context.Context, id string, req *ArchiveProjectRequest) (*models.Project, error)
}
