package service

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"projectboard/internal/config"
	"projectboard/internal/domain"
	"projectboard/internal/domain/models"
	"projectboard/internal/domain/services"
)

// normalizeInput trims every string, turns blank optional fields into absent
// ones and de-duplicates skills while keeping their order.
func normalizeInput(in *services.ProjectInput) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ContactMethod = trimOptional(in.ContactMethod)
	in.ContactInfo = trimOptional(in.ContactInfo)
	in.ContactName = trimOptional(in.ContactName)
	in.CollaborationPreference = trimOptional(in.CollaborationPreference)
	in.Location = trimOptional(in.Location)

	if in.Skills != nil {
		seen := make(map[string]bool, len(in.Skills))
		skills := make([]string, 0, len(in.Skills))
		for _, skill := range in.Skills {
			skill = strings.TrimSpace(skill)
			if seen[skill] {
				continue
			}
			seen[skill] = true
			skills = append(skills, skill)
		}
		in.Skills = skills
	}

	for i, requirement := range in.IdealTeammate {
		in.IdealTeammate[i] = strings.TrimSpace(requirement)
	}
}

// validateInput checks the field-shape rules shared by create and update
func validateInput(in *services.ProjectInput) error {
	err := validation.ValidateStruct(in,
		validation.Field(&in.Title,
			validation.Required.Error("is required"),
			validation.RuneLength(1, config.MaxProjectTitleLength),
		),
		validation.Field(&in.Description,
			validation.Required.Error("is required"),
			validation.RuneLength(1, config.MaxProjectDescriptionLength),
		),
		validation.Field(&in.Skills,
			validation.Required.Error("at least one skill is required"),
			validation.Length(1, config.MaxSkillsPerProject),
			validation.Each(
				validation.Required.Error("skill names cannot be blank"),
				validation.RuneLength(1, config.MaxSkillNameLength),
			),
		),
		validation.Field(&in.ContactMethod,
			validation.In(contactMethodValues()...).Error("must be one of email, phone, discord"),
		),
		validation.Field(&in.ContactInfo,
			validation.When(in.ContactMethod != nil,
				validation.Required.Error("is required when contact_method is set"),
			),
			validation.When(in.ContactMethod == nil,
				validation.Nil.Error("needs a contact_method"),
			),
			validation.RuneLength(0, config.MaxContactInfoLength),
		),
		validation.Field(&in.ContactName,
			validation.RuneLength(0, config.MaxContactNameLength),
		),
		validation.Field(&in.IdealTeammate,
			validation.Length(0, models.MaxIdealTeammates).Error(
				fmt.Sprintf("at most %d ideal teammate requirements are allowed", models.MaxIdealTeammates)),
			validation.Each(
				validation.Required.Error("ideal teammate requirements cannot be blank"),
				validation.RuneLength(1, config.MaxTeammateRequirementLength),
			),
		),
		validation.Field(&in.CollaborationPreference,
			validation.In(collaborationValues()...).Error("must be one of remote, in-person, flexible"),
		),
		validation.Field(&in.Location,
			validation.RuneLength(0, config.MaxLocationLength),
		),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// applyInput copies validated input onto the project. Optional fields
// absent from the input keep their current value, so an update that omits
// location does not clear it. An empty ideal_teammate list clears it.
func applyInput(project *models.Project, in *services.ProjectInput) {
	project.Title = in.Title
	project.Description = in.Description
	project.Skills = in.Skills
	if in.ContactMethod != nil && in.ContactInfo != nil {
		project.Contact = &models.Contact{
			Method: models.ContactMethod(*in.ContactMethod),
			Info:   *in.ContactInfo,
		}
	}
	if in.ContactName != nil {
		project.ContactName = in.ContactName
	}
	if in.IdealTeammate != nil {
		project.IdealTeammate = nil
		if len(in.IdealTeammate) > 0 {
			project.IdealTeammate = in.IdealTeammate
		}
	}
	if in.CollaborationPreference != nil {
		p := models.CollaborationPreference(*in.CollaborationPreference)
		project.CollaborationPreference = &p
	}
	if in.Location != nil {
		project.Location = in.Location
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func contactMethodValues() []interface{} {
	values := make([]interface{}, 0, len(models.ContactMethods))
	for _, m := range models.ContactMethods {
		values = append(values, string(m))
	}
	return values
}

func collaborationValues() []interface{} {
	values := make([]interface{}, 0, len(models.CollaborationPreferences))
	for _, p := range models.CollaborationPreferences {
		values = append(values, string(p))
	}
	return values
}
