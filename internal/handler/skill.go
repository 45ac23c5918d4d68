package handler

import (
	"log/slog"
	"net/http"

	"projectboard/internal/domain/services"
	"projectboard/internal/httputil"
)

// SkillHandler handles skill HTTP requests
type SkillHandler struct {
	skillService services.SkillService
	logger       *slog.Logger
}

// NewSkillHandler creates a new skill handler
func NewSkillHandler(skillService services.SkillService, logger *slog.Logger) *SkillHandler {
	return &SkillHandler{
		skillService: skillService,
		logger:       logger,
	}
}

// ListSkills returns skill names in alphabetical order
// GET /api/skills
func (h *SkillHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	names, err := h.skillService.ListSkills(r.Context())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, names)
}

// CreateSkill adds a skill tag
// POST /api/skills
func (h *SkillHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	var req services.CreateSkillRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		respondBadBody(w, err)
		return
	}

	skill, err := h.skillService.CreateSkill(r.Context(), &req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, skill)
}
