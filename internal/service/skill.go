package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"projectboard/internal/config"
	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/repositories"
	"projectboard/internal/domain/services"
)

// skillService implements the SkillService interface
type skillService struct {
	skillRepo repositories.SkillRepository
	logger    *slog.Logger
}

// NewSkillService creates a new skill service
func NewSkillService(skillRepo repositories.SkillRepository, logger *slog.Logger) services.SkillService {
	return &skillService{
		skillRepo: skillRepo,
		logger:    logger,
	}
}

// ListSkills returns every skill name in alphabetical order
func (s *skillService) ListSkills(ctx context.Context) ([]string, error) {
	skills, err := s.skillRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}
	return names, nil
}

// CreateSkill adds a skill tag. Uniqueness is left to the store's constraint.
func (s *skillService) CreateSkill(ctx context.Context, req *services.CreateSkillRequest) (*models.Skill, error) {
	req.Name = strings.TrimSpace(req.Name)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("is required"),
			validation.RuneLength(1, config.MaxSkillNameLength),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	skill := &models.Skill{
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}

	s.logger.Info("skill created", "id", skill.ID, "name", skill.Name)

	return skill, nil
}
