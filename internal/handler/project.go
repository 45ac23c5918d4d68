package handler

import (
	"log/slog"
	"net/http"

	"projectboard/internal/domain/services"
	"projectboard/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService services.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService services.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects returns every project, newest first
// GET /api/projects
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, projects)
}

// GetProject returns a single project
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetProject(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// CreateProject creates a project owned by the caller
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req services.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	userID, err := resolveCaller(r, req.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	req.UserID = userID

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, project)
}

// UpdateProject replaces the editable fields of a project
// PUT /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req services.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	userID, err := resolveCaller(r, req.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	req.UserID = userID

	project, err := h.projectService.UpdateProject(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project permanently
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	// The body may be omitted when a bearer token identifies the caller
	var req services.DeleteProjectRequest
	if err := httputil.ParseOptionalJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	userID, err := resolveCaller(r, req.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	req.UserID = userID

	if err := h.projectService.DeleteProject(r.Context(), r.PathValue("id"), &req); err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondNoContent(w)
}

// ArchiveProject archives or restores a project
// PATCH /api/projects/{id}/archive
func (h *ProjectHandler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	var req services.ArchiveProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	userID, err := resolveCaller(r, req.UserID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	req.UserID = userID

	project, err := h.projectService.ArchiveProject(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, project)
}
