package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
	"projectboard/internal/domain/services"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	authorizer  services.ResourceAuthorizer
	logger      *slog.Logger
	now         func() time.Time
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		authorizer:  authorizer,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListProjects retrieves all projects, newest first
func (s *projectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	return s.projectRepo.List(ctx)
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	// IDs are UUIDs; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return s.projectRepo.GetByID(ctx, id)
}

// CreateProject validates the request and stores a new active project
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	normalizeInput(&req.ProjectInput)

	if err := validateCaller(req.UserID); err != nil {
		return nil, err
	}
	if err := validateInput(&req.ProjectInput); err != nil {
		return nil, err
	}

	now := s.now()
	project := &models.Project{
		UserID:    req.UserID,
		Status:    models.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(project, &req.ProjectInput)

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"title", project.Title,
		"user_id", project.UserID,
		"skills", len(project.Skills),
	)

	return project, nil
}

// UpdateProject rewrites title, description and skills of a project the
// caller owns, plus whichever optional fields the request carries.
// Owner, status, archived_at and created_at are preserved.
func (s *projectService) UpdateProject(ctx context.Context, id string, req *services.UpdateProjectRequest) (*models.Project, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	normalizeInput(&req.ProjectInput)

	if err := validateCaller(req.UserID); err != nil {
		return nil, err
	}
	if err := validateInput(&req.ProjectInput); err != nil {
		return nil, err
	}

	project, err := s.authorizer.CanModifyProject(ctx, req.UserID, id)
	if err != nil {
		return nil, err
	}

	applyInput(project, &req.ProjectInput)
	project.UpdatedAt = s.now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"title", project.Title,
		"user_id", req.UserID,
	)

	return project, nil
}

// DeleteProject permanently removes a project the caller owns
func (s *projectService) DeleteProject(ctx context.Context, id string, req *services.DeleteProjectRequest) error {
	req.UserID = strings.TrimSpace(req.UserID)
	if err := validateCaller(req.UserID); err != nil {
		return err
	}

	if _, err := s.authorizer.CanModifyProject(ctx, req.UserID, id); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(ctx, id, req.UserID); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"user_id", req.UserID,
	)

	return nil
}

// ArchiveProject moves a project the caller owns between active and archived
func (s *projectService) ArchiveProject(ctx context.Context, id string, req *services.ArchiveProjectRequest) (*models.Project, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required.Error("is required")),
		validation.Field(&req.Archive, validation.NotNil.Error("must be true or false")),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project, err := s.authorizer.CanModifyProject(ctx, req.UserID, id)
	if err != nil {
		return nil, err
	}

	project.SetArchived(*req.Archive, s.now())

	if err := s.projectRepo.UpdateStatus(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project status changed",
		"id", project.ID,
		"status", project.Status,
		"user_id", req.UserID,
	)

	return project, nil
}

// validateCaller rejects requests without a caller identifier
func validateCaller(userID string) error {
	if err := validation.Validate(userID, validation.Required.Error("userId is required")); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
