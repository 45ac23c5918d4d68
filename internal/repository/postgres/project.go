package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
)

const projectColumns = `id, user_id, title, description, skills,
	contact_method, contact_info, contact_name, ideal_teammate, collaboration_preference, location,
	status, archived_at, created_at, updated_at`

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a project and scans back its generated ID
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, description, skills,
			contact_method, contact_info, contact_name, ideal_teammate, collaboration_preference, location,
			status, archived_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`, r.tables.Projects)

	contactMethod, contactInfo := project.Contact.Columns()

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.UserID,
		project.Title,
		project.Description,
		project.Skills,
		contactMethod,
		contactInfo,
		project.ContactName,
		project.IdealTeammate,
		preferenceColumn(project.CollaborationPreference),
		project.Location,
		string(project.Status),
		project.ArchivedAt,
		project.CreatedAt,
		project.UpdatedAt,
	).Scan(&project.ID)
	if err != nil {
		if IsPgCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	project, err := scanProject(executor.QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// List retrieves every project ordered by created_at DESC
func (r *PostgresProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Update writes every editable column of a project owned by project.UserID.
// The service has already merged absent optional fields from the stored row.
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, skills = $3,
			contact_method = $4, contact_info = $5, contact_name = $6, ideal_teammate = $7,
			collaboration_preference = $8, location = $9, updated_at = $10
		WHERE id = $11 AND user_id = $12
	`, r.tables.Projects)

	contactMethod, contactInfo := project.Contact.Columns()

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		project.Title,
		project.Description,
		project.Skills,
		contactMethod,
		contactInfo,
		project.ContactName,
		project.IdealTeammate,
		preferenceColumn(project.CollaborationPreference),
		project.Location,
		project.UpdatedAt,
		project.ID,
		project.UserID,
	)
	if err != nil {
		if IsPgCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdateStatus writes status and archived_at together
func (r *PostgresProjectRepository) UpdateStatus(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = $1, archived_at = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query,
		string(project.Status),
		project.ArchivedAt,
		project.UpdatedAt,
		project.ID,
		project.UserID,
	)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete permanently removes a project
func (r *PostgresProjectRepository) Delete(ctx context.Context, id, userID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var (
		project       models.Project
		contactMethod *string
		contactInfo   *string
		preference    *string
		status        string
		archivedAt    *time.Time
	)

	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.Skills,
		&contactMethod,
		&contactInfo,
		&project.ContactName,
		&project.IdealTeammate,
		&preference,
		&project.Location,
		&status,
		&archivedAt,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.Contact = models.ContactFromColumns(contactMethod, contactInfo)
	if preference != nil {
		p := models.CollaborationPreference(*preference)
		project.CollaborationPreference = &p
	}
	project.Status = models.ProjectStatus(status)
	project.ArchivedAt = archivedAt

	return &project, nil
}

func preferenceColumn(p *models.CollaborationPreference) *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}
