// Package seed loads demo skills and projects into the record store.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"projectboard/internal/domain"
	"projectboard/internal/domain/repositories"
	"projectboard/internal/domain/services"
)

//go:embed data/board.yaml
var boardYAML []byte

// Owner is the demo account that owns the sample projects
type Owner struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Project is one sample project as written in the YAML file
type Project struct {
	Title                   string   `yaml:"title"`
	Description             string   `yaml:"description"`
	Skills                  []string `yaml:"skills"`
	ContactMethod           string   `yaml:"contact_method"`
	ContactInfo             string   `yaml:"contact_info"`
	ContactName             string   `yaml:"contact_name"`
	IdealTeammate           []string `yaml:"ideal_teammate"`
	CollaborationPreference string   `yaml:"collaboration_preference"`
	Location                string   `yaml:"location"`
}

// Data is the parsed seed file
type Data struct {
	Owner    Owner     `yaml:"owner"`
	Skills   []string  `yaml:"skills"`
	Projects []Project `yaml:"projects"`
}

// Load parses the embedded seed file
func Load() (*Data, error) {
	return Parse(boardYAML)
}

// Parse decodes seed data from raw YAML
func Parse(raw []byte) (*Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal seed data: %w", err)
	}
	return &data, nil
}

// Input converts the YAML project into a service request body
func (p Project) Input() services.ProjectInput {
	return services.ProjectInput{
		Title:                   p.Title,
		Description:             p.Description,
		Skills:                  p.Skills,
		ContactMethod:           optional(p.ContactMethod),
		ContactInfo:             optional(p.ContactInfo),
		ContactName:             optional(p.ContactName),
		IdealTeammate:           p.IdealTeammate,
		CollaborationPreference: optional(p.CollaborationPreference),
		Location:                optional(p.Location),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// UserAdmin manages auth accounts; *auth.AdminClient satisfies it
type UserAdmin interface {
	EnsureUser(ctx context.Context, email, password string) (string, error)
	DeleteUserByEmail(ctx context.Context, email string) error
}

// EnsureOwner returns the demo owner's user id, creating the account if needed
func EnsureOwner(ctx context.Context, admin UserAdmin, owner Owner) (string, error) {
	if owner.Email == "" {
		return "", errors.New("seed data has no owner email")
	}
	id, err := admin.EnsureUser(ctx, owner.Email, owner.Password)
	if err != nil {
		return "", fmt.Errorf("ensure owner %s: %w", owner.Email, err)
	}
	return id, nil
}

// RemoveOwner deletes the demo owner account. A missing account is not an error.
func RemoveOwner(ctx context.Context, admin UserAdmin, owner Owner) error {
	if owner.Email == "" {
		return nil
	}
	if err := admin.DeleteUserByEmail(ctx, owner.Email); err != nil {
		return fmt.Errorf("remove owner %s: %w", owner.Email, err)
	}
	return nil
}

// Result counts what a seed run changed
type Result struct {
	SkillsCreated   int
	SkillsSkipped   int
	ProjectsCreated int
	ProjectsSkipped int
}

// Seeder applies seed data through the service layer so every record passes
// the same validation as API traffic.
type Seeder struct {
	skills   services.SkillService
	projects services.ProjectService
	tx       repositories.TransactionManager
	logger   *slog.Logger
}

// NewSeeder creates a seeder. tx may be nil when the store has no transactions.
func NewSeeder(skills services.SkillService, projects services.ProjectService, tx repositories.TransactionManager, logger *slog.Logger) *Seeder {
	return &Seeder{
		skills:   skills,
		projects: projects,
		tx:       tx,
		logger:   logger,
	}
}

// Run creates missing skills, then the sample projects owned by ownerID.
// Existing skills and projects with the same owner and title are skipped, so
// running it twice is harmless.
func (s *Seeder) Run(ctx context.Context, data *Data, ownerID string) (Result, error) {
	var result Result

	// Skills are inserted one by one outside any transaction: a duplicate
	// aborts a Postgres transaction, and duplicates are expected here.
	for _, name := range data.Skills {
		_, err := s.skills.CreateSkill(ctx, &services.CreateSkillRequest{Name: name})
		switch {
		case err == nil:
			result.SkillsCreated++
		case errors.Is(err, domain.ErrConflict):
			result.SkillsSkipped++
		default:
			return result, fmt.Errorf("create skill %q: %w", name, err)
		}
	}

	existing, err := s.projects.ListProjects(ctx)
	if err != nil {
		return result, fmt.Errorf("list projects: %w", err)
	}
	owned := make(map[string]bool)
	for _, p := range existing {
		if p.UserID == ownerID {
			owned[p.Title] = true
		}
	}

	createProjects := func(ctx context.Context) error {
		for _, p := range data.Projects {
			if owned[p.Title] {
				result.ProjectsSkipped++
				continue
			}
			project, err := s.projects.CreateProject(ctx, &services.CreateProjectRequest{
				UserID:       ownerID,
				ProjectInput: p.Input(),
			})
			if err != nil {
				return fmt.Errorf("create project %q: %w", p.Title, err)
			}
			result.ProjectsCreated++
			s.logger.Info("seeded project", "id", project.ID, "title", project.Title)
		}
		return nil
	}

	if s.tx != nil {
		err = s.tx.ExecTx(ctx, createProjects)
		if err != nil {
			// rolled back, nothing from this batch was kept
			result.ProjectsCreated = 0
		}
	} else {
		err = createProjects(ctx)
	}
	if err != nil {
		return result, err
	}

	s.logger.Info("seed complete",
		"skills_created", result.SkillsCreated,
		"skills_skipped", result.SkillsSkipped,
		"projects_created", result.ProjectsCreated,
		"projects_skipped", result.ProjectsSkipped,
	)
	return result, nil
}
