// Package memory implements the repositories in process memory. It backs
// service and handler tests and mirrors the Postgres adapter's semantics:
// generated UUIDs, newest-first listing, owner-scoped writes and unique
// skill names.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
)

// ProjectRepository stores projects in a map keyed by ID
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]*entry
	seq      int
}

type entry struct {
	project models.Project
	seq     int
}

// NewProjectRepository creates an empty project store
func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[string]*entry)}
}

var _ repositories.ProjectRepository = (*ProjectRepository)(nil)

// Create stores a copy of project under a new UUID
func (r *ProjectRepository) Create(_ context.Context, project *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project.ID = uuid.NewString()
	r.seq++
	r.projects[project.ID] = &entry{project: clone(*project), seq: r.seq}
	return nil
}

// GetByID returns a copy of the stored project
func (r *ProjectRepository) GetByID(_ context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	p := clone(e.project)
	return &p, nil
}

// List returns copies of every project, newest first
func (r *ProjectRepository) List(_ context.Context) ([]models.Project, error) {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.projects))
	for _, e := range r.projects {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	// created_at DESC, most recently inserted first on ties
	slices.SortFunc(entries, func(a, b *entry) int {
		if c := b.project.CreatedAt.Compare(a.project.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	projects := make([]models.Project, 0, len(entries))
	for _, e := range entries {
		projects = append(projects, clone(e.project))
	}
	return projects, nil
}

// Update replaces the editable fields of a project owned by project.UserID
func (r *ProjectRepository) Update(_ context.Context, project *models.Project) error {
	return r.withOwned(project.ID, project.UserID, func(stored *models.Project) {
		stored.Title = project.Title
		stored.Description = project.Description
		stored.Skills = slices.Clone(project.Skills)
		stored.Contact = cloneContact(project.Contact)
		stored.IdealTeammate = slices.Clone(project.IdealTeammate)
		stored.CollaborationPreference = clonePtr(project.CollaborationPreference)
		stored.Location = clonePtr(project.Location)
		stored.UpdatedAt = project.UpdatedAt
	})
}

// UpdateStatus writes status, archived_at and updated_at together
func (r *ProjectRepository) UpdateStatus(_ context.Context, project *models.Project) error {
	return r.withOwned(project.ID, project.UserID, func(stored *models.Project) {
		stored.Status = project.Status
		stored.ArchivedAt = clonePtr(project.ArchivedAt)
		stored.UpdatedAt = project.UpdatedAt
	})
}

// Delete removes a project owned by userID
func (r *ProjectRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.projects[id]
	if !ok || e.project.UserID != userID {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	delete(r.projects, id)
	return nil
}

// Len returns the number of stored projects
func (r *ProjectRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects)
}

func (r *ProjectRepository) withOwned(id, userID string, fn func(*models.Project)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.projects[id]
	if !ok || e.project.UserID != userID {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}
	fn(&e.project)
	return nil
}

// SkillRepository stores skills with case-sensitive unique names
type SkillRepository struct {
	mu     sync.RWMutex
	skills []models.Skill
}

// NewSkillRepository creates an empty skill store
func NewSkillRepository() *SkillRepository {
	return &SkillRepository{}
}

var _ repositories.SkillRepository = (*SkillRepository)(nil)

// List returns every skill ordered by name
func (r *SkillRepository) List(_ context.Context) ([]models.Skill, error) {
	r.mu.RLock()
	skills := slices.Clone(r.skills)
	r.mu.RUnlock()

	slices.SortFunc(skills, func(a, b models.Skill) int {
		return strings.Compare(a.Name, b.Name)
	})
	if skills == nil {
		skills = []models.Skill{}
	}
	return skills, nil
}

// Create stores skill unless its name is taken
func (r *SkillRepository) Create(_ context.Context, skill *models.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.skills {
		if existing.Name == skill.Name {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("skill '%s' already exists", skill.Name),
				ResourceType: "skill",
				ResourceKey:  skill.Name,
			}
		}
	}
	skill.ID = uuid.NewString()
	r.skills = append(r.skills, *skill)
	return nil
}

// Len returns the number of stored skills
func (r *SkillRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.skills)
}

// Pinger always reports the store as reachable unless Err is set
type Pinger struct {
	Err error
}

// Ping returns p.Err
func (p Pinger) Ping(context.Context) error {
	return p.Err
}

func clone(p models.Project) models.Project {
	p.Skills = slices.Clone(p.Skills)
	p.IdealTeammate = slices.Clone(p.IdealTeammate)
	p.Contact = cloneContact(p.Contact)
	p.ContactName = clonePtr(p.ContactName)
	p.CollaborationPreference = clonePtr(p.CollaborationPreference)
	p.Location = clonePtr(p.Location)
	p.ArchivedAt = clonePtr(p.ArchivedAt)
	return p
}

func cloneContact(c *models.Contact) *models.Contact {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
