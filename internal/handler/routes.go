package handler

import (
	"net/http"
)

// Handlers groups everything NewRouter mounts
type Handlers struct {
	Projects *ProjectHandler
	Skills   *SkillHandler
	Health   *HealthHandler
	// Metrics serves /metrics when non-nil
	Metrics http.Handler
}

// NewRouter registers the API routes on a fresh ServeMux
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	// Projects
	mux.HandleFunc("GET /api/projects", h.Projects.ListProjects)
	mux.HandleFunc("POST /api/projects", h.Projects.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", h.Projects.GetProject)
	mux.HandleFunc("PUT /api/projects/{id}", h.Projects.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", h.Projects.DeleteProject)
	mux.HandleFunc("PATCH /api/projects/{id}/archive", h.Projects.ArchiveProject)

	// Skills
	mux.HandleFunc("GET /api/skills", h.Skills.ListSkills)
	mux.HandleFunc("POST /api/skills", h.Skills.CreateSkill)

	return mux
}

// RoutePattern returns the pattern mux would dispatch r to, for metric labels
func RoutePattern(mux *http.ServeMux) func(*http.Request) string {
	return func(r *http.Request) string {
		_, pattern := mux.Handler(r)
		return pattern
	}
}
