package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Project is a collaboration posting as shown to users. The API calls the
// owner user_id; here it is OwnerID.
type Project struct {
	ID                      string     `json:"id"`
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	Skills                  []string   `json:"skills"`
	OwnerID                 string     `json:"user_id"`
	ContactMethod           string     `json:"contact_method,omitempty"`
	ContactInfo             string     `json:"contact_info,omitempty"`
	ContactName             string     `json:"contact_name,omitempty"`
	IdealTeammate           []string   `json:"ideal_teammate,omitempty"`
	CollaborationPreference string     `json:"collaboration_preference,omitempty"`
	Location                string     `json:"location,omitempty"`
	Status                  string     `json:"status"`
	ArchivedAt              *time.Time `json:"archived_at,omitempty"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// Archived reports whether the project has been archived.
func (p Project) Archived() bool {
	return p.Status == "archived"
}

// ProjectInput carries the editable fields of a project. Empty optional
// fields are left out of the request, and an update keeps their stored value.
type ProjectInput struct {
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	Skills                  []string `json:"skills"`
	OwnerID                 string   `json:"userId"`
	ContactMethod           string   `json:"contact_method,omitempty"`
	ContactInfo             string   `json:"contact_info,omitempty"`
	ContactName             string   `json:"contact_name,omitempty"`
	IdealTeammate           []string `json:"ideal_teammate,omitempty"`
	CollaborationPreference string   `json:"collaboration_preference,omitempty"`
	Location                string   `json:"location,omitempty"`
}

// Input returns the project's editable fields, ready to be changed and sent
// back with UpdateProject.
func (p Project) Input() ProjectInput {
	return ProjectInput{
		Title:                   p.Title,
		Description:             p.Description,
		Skills:                  append([]string(nil), p.Skills...),
		OwnerID:                 p.OwnerID,
		ContactMethod:           p.ContactMethod,
		ContactInfo:             p.ContactInfo,
		ContactName:             p.ContactName,
		IdealTeammate:           append([]string(nil), p.IdealTeammate...),
		CollaborationPreference: p.CollaborationPreference,
		Location:                p.Location,
	}
}

type callerBody struct {
	UserID string `json:"userId"`
}

type archiveBody struct {
	UserID  string `json:"userId"`
	Archive bool   `json:"archive"`
}

// ListProjects returns every project, newest first.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject returns a single project.
func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, projectPath(id), nil, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// CreateProject posts a new project owned by in.OwnerID.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", in, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// UpdateProject replaces the editable fields of project id.
func (c *Client) UpdateProject(ctx context.Context, id string, in ProjectInput) (Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPut, projectPath(id), in, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

// DeleteProject permanently removes project id on behalf of ownerID.
func (c *Client) DeleteProject(ctx context.Context, id, ownerID string) error {
	return c.do(ctx, http.MethodDelete, projectPath(id), callerBody{UserID: ownerID}, nil)
}

// ArchiveProject archives (archive=true) or restores project id.
func (c *Client) ArchiveProject(ctx context.Context, id, ownerID string, archive bool) (Project, error) {
	var project Project
	body := archiveBody{UserID: ownerID, Archive: archive}
	if err := c.do(ctx, http.MethodPatch, projectPath(id)+"/archive", body, &project); err != nil {
		return Project{}, err
	}
	return project, nil
}

func projectPath(id string) string {
	return "/api/projects/" + url.PathEscape(id)
}
