// Package board holds the client-side state of the project board: fetched
// projects, the skill catalogue and the viewer's skill filters.
package board

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"projectboard/pkg/client"
)

// DefaultSkills is offered when the skill service returns nothing
var DefaultSkills = []string{
	"JavaScript", "TypeScript", "React", "Node.js", "Python", "Java", "C++",
	"SQL", "NoSQL", "GraphQL", "REST API", "Docker", "AWS", "Machine Learning",
	"UI/UX", "React Native", "Tailwind CSS", "Express", "MongoDB", "Firebase",
	"Supabase", "Next.js", "Vue.js", "Angular", "Django", "Flutter",
}

// API is the subset of *client.Client the board calls
type API interface {
	ListProjects(ctx context.Context) ([]client.Project, error)
	GetProject(ctx context.Context, id string) (client.Project, error)
	ListSkills(ctx context.Context) ([]string, error)
	CreateProject(ctx context.Context, in client.ProjectInput) (client.Project, error)
	UpdateProject(ctx context.Context, id string, in client.ProjectInput) (client.Project, error)
	DeleteProject(ctx context.Context, id, ownerID string) error
	ArchiveProject(ctx context.Context, id, ownerID string, archive bool) (client.Project, error)
}

// Board is not safe for concurrent use; it models one viewer's screen.
type Board struct {
	api      API
	logger   *slog.Logger
	viewerID string

	projects []client.Project
	skills   []string
	selected map[string]bool

	// ShowArchived includes archived projects in Visible
	ShowArchived bool
}

// New creates an empty board for viewerID ("" for a signed-out viewer)
func New(api API, viewerID string, logger *slog.Logger) *Board {
	return &Board{
		api:      api,
		logger:   logger,
		viewerID: viewerID,
		skills:   DefaultSkills,
		selected: make(map[string]bool),
	}
}

// ViewerID returns the signed-in user's id, or "" when signed out
func (b *Board) ViewerID() string {
	return b.viewerID
}

// Projects returns every fetched project in server order
func (b *Board) Projects() []client.Project {
	return b.projects
}

// Skills returns the skill catalogue offered for filtering and tagging
func (b *Board) Skills() []string {
	return b.skills
}

// Refresh fetches projects and skills. Each fetch that fails is logged and
// leaves its part of the state untouched; the first error is returned.
func (b *Board) Refresh(ctx context.Context) error {
	var firstErr error

	projects, err := b.api.ListProjects(ctx)
	if err != nil {
		b.logger.Error("error fetching projects", "error", err)
		firstErr = err
	} else {
		b.projects = projects
	}

	skills, err := b.api.ListSkills(ctx)
	switch {
	case err != nil:
		b.logger.Error("error fetching skills", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	case len(skills) == 0:
		b.skills = DefaultSkills
	default:
		b.skills = skills
	}

	return firstErr
}

// ToggleSkill adds name to the filter set, or removes it if already selected
func (b *Board) ToggleSkill(name string) {
	if b.selected[name] {
		delete(b.selected, name)
		return
	}
	b.selected[name] = true
}

// SelectedSkills returns the active filters in alphabetical order
func (b *Board) SelectedSkills() []string {
	names := make([]string, 0, len(b.selected))
	for name := range b.selected {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ClearFilters removes every skill filter
func (b *Board) ClearFilters() {
	clear(b.selected)
}

// Visible returns the projects carrying at least one selected skill, or all
// projects when no filter is selected. Archived projects are hidden unless
// ShowArchived is set.
func (b *Board) Visible() []client.Project {
	visible := make([]client.Project, 0, len(b.projects))
	for _, p := range b.projects {
		if p.Archived() && !b.ShowArchived {
			continue
		}
		if len(b.selected) > 0 && !b.matches(p) {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}

func (b *Board) matches(p client.Project) bool {
	for _, skill := range p.Skills {
		if b.selected[skill] {
			return true
		}
	}
	return false
}

// CanEdit reports whether the viewer owns p. This only decides which
// controls to offer; the API enforces ownership itself.
func (b *Board) CanEdit(p client.Project) bool {
	return b.viewerID != "" && b.viewerID == p.OwnerID
}

// Show fetches project id and keeps the fresh copy on the board
func (b *Board) Show(ctx context.Context, id string) (client.Project, error) {
	project, err := b.api.GetProject(ctx, id)
	if err != nil {
		b.logger.Error("error fetching project", "id", id, "error", err)
		return client.Project{}, err
	}
	if !b.replace(project) {
		b.projects = append(b.projects, project)
	}
	return project, nil
}

// Create posts a project owned by the viewer and appends it on success
func (b *Board) Create(ctx context.Context, in client.ProjectInput) (client.Project, error) {
	in.OwnerID = b.viewerID
	project, err := b.api.CreateProject(ctx, in)
	if err != nil {
		b.logger.Error("error creating project", "error", err)
		return client.Project{}, err
	}
	b.projects = append(b.projects, project)
	return project, nil
}

// Update replaces project id's fields and swaps in the server's copy
func (b *Board) Update(ctx context.Context, id string, in client.ProjectInput) (client.Project, error) {
	in.OwnerID = b.viewerID
	project, err := b.api.UpdateProject(ctx, id, in)
	if err != nil {
		b.logger.Error("error updating project", "id", id, "error", err)
		return client.Project{}, err
	}
	b.replace(project)
	return project, nil
}

// ErrNotOwner is returned when the viewer tries to edit someone else's project
var ErrNotOwner = errors.New("you can only edit your own projects")

// Edit fetches project id, lets change adjust its current fields and sends
// the result as an update. Fields change leaves alone keep their values.
func (b *Board) Edit(ctx context.Context, id string, change func(*client.ProjectInput)) (client.Project, error) {
	current, err := b.Show(ctx, id)
	if err != nil {
		return client.Project{}, err
	}
	if !b.CanEdit(current) {
		return client.Project{}, ErrNotOwner
	}
	in := current.Input()
	change(&in)
	return b.Update(ctx, id, in)
}

// Archive archives or restores project id
func (b *Board) Archive(ctx context.Context, id string, archive bool) (client.Project, error) {
	project, err := b.api.ArchiveProject(ctx, id, b.viewerID, archive)
	if err != nil {
		b.logger.Error("error archiving project", "id", id, "archive", archive, "error", err)
		return client.Project{}, err
	}
	b.replace(project)
	return project, nil
}

// Delete removes project id and drops it from the board
func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.api.DeleteProject(ctx, id, b.viewerID); err != nil {
		b.logger.Error("error deleting project", "id", id, "error", err)
		return err
	}
	b.projects = slices.DeleteFunc(b.projects, func(p client.Project) bool {
		return p.ID == id
	})
	return nil
}

func (b *Board) replace(project client.Project) bool {
	for i := range b.projects {
		if b.projects[i].ID == project.ID {
			b.projects[i] = project
			return true
		}
	}
	return false
}
