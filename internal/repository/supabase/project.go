package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
)

// projectRow mirrors the projects table columns
type projectRow struct {
	ID                      string     `json:"id,omitempty"`
	UserID                  string     `json:"user_id"`
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	Skills                  []string   `json:"skills"`
	ContactMethod           *string    `json:"contact_method"`
	ContactInfo             *string    `json:"contact_info"`
	ContactName             *string    `json:"contact_name"`
	IdealTeammate           []string   `json:"ideal_teammate"`
	CollaborationPreference *string    `json:"collaboration_preference"`
	Location                *string    `json:"location"`
	Status                  string     `json:"status"`
	ArchivedAt              *time.Time `json:"archived_at"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

func newProjectRow(p *models.Project) projectRow {
	method, info := p.Contact.Columns()
	var preference *string
	if p.CollaborationPreference != nil {
		s := string(*p.CollaborationPreference)
		preference = &s
	}
	return projectRow{
		ID:                      p.ID,
		UserID:                  p.UserID,
		Title:                   p.Title,
		Description:             p.Description,
		Skills:                  p.Skills,
		ContactMethod:           method,
		ContactInfo:             info,
		ContactName:             p.ContactName,
		IdealTeammate:           p.IdealTeammate,
		CollaborationPreference: preference,
		Location:                p.Location,
		Status:                  string(p.Status),
		ArchivedAt:              p.ArchivedAt,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func (r projectRow) toModel() models.Project {
	project := models.Project{
		ID:            r.ID,
		UserID:        r.UserID,
		Title:         r.Title,
		Description:   r.Description,
		Skills:        r.Skills,
		Contact:       models.ContactFromColumns(r.ContactMethod, r.ContactInfo),
		ContactName:   r.ContactName,
		IdealTeammate: r.IdealTeammate,
		Location:      r.Location,
		Status:        models.ProjectStatus(r.Status),
		ArchivedAt:    r.ArchivedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.CollaborationPreference != nil {
		p := models.CollaborationPreference(*r.CollaborationPreference)
		project.CollaborationPreference = &p
	}
	if project.Skills == nil {
		project.Skills = []string{}
	}
	return project
}

// ProjectRepository implements repositories.ProjectRepository over PostgREST
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository creates a PostgREST-backed project repository
func NewProjectRepository(client *Client) repositories.ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create inserts a project and reads back the generated ID
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	row := newProjectRow(project)
	row.ID = ""

	var created []projectRow
	err := r.client.do(ctx, http.MethodPost, r.client.tables.Projects, nil, row, "return=representation", &created)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return fmt.Errorf("create project: %w", err)
	}
	if len(created) == 0 {
		return fmt.Errorf("create project: empty representation")
	}

	project.ID = created[0].ID
	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", eq(id))

	var rows []projectRow
	if err := r.client.do(ctx, http.MethodGet, r.client.tables.Projects, query, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	project := rows[0].toModel()
	return &project, nil
}

// List retrieves every project, newest first
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	var rows []projectRow
	if err := r.client.do(ctx, http.MethodGet, r.client.tables.Projects, query, nil, "", &rows); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]models.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, row.toModel())
	}
	return projects, nil
}

// Update writes every editable column of a project owned by project.UserID
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	row := newProjectRow(project)
	patch := map[string]any{
		"title":                    row.Title,
		"description":              row.Description,
		"skills":                   row.Skills,
		"contact_method":           row.ContactMethod,
		"contact_info":             row.ContactInfo,
		"contact_name":             row.ContactName,
		"ideal_teammate":           row.IdealTeammate,
		"collaboration_preference": row.CollaborationPreference,
		"location":                 row.Location,
		"updated_at":               row.UpdatedAt,
	}

	err := r.patchOwned(ctx, project.ID, project.UserID, patch)
	if err != nil && isCheckViolation(err) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return err
}

// UpdateStatus writes status and archived_at together
func (r *ProjectRepository) UpdateStatus(ctx context.Context, project *models.Project) error {
	patch := map[string]any{
		"status":      string(project.Status),
		"archived_at": project.ArchivedAt,
		"updated_at":  project.UpdatedAt,
	}
	return r.patchOwned(ctx, project.ID, project.UserID, patch)
}

// Delete permanently removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id, userID string) error {
	query := url.Values{}
	query.Set("id", eq(id))
	query.Set("user_id", eq(userID))
	query.Set("select", "id")

	var deleted []projectRow
	if err := r.client.do(ctx, http.MethodDelete, r.client.tables.Projects, query, nil, "return=representation", &deleted); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if len(deleted) == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// patchOwned applies patch to the row matching both id and user_id
func (r *ProjectRepository) patchOwned(ctx context.Context, id, userID string, patch map[string]any) error {
	query := url.Values{}
	query.Set("id", eq(id))
	query.Set("user_id", eq(userID))
	query.Set("select", "id")

	var updated []projectRow
	if err := r.client.do(ctx, http.MethodPatch, r.client.tables.Projects, query, patch, "return=representation", &updated); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if len(updated) == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
