package config

const (
	// MaxProjectTitleLength is the maximum length for project titles.
	MaxProjectTitleLength = 200

	// MaxProjectDescriptionLength bounds descriptions so a single card
	// cannot dominate the board.
	MaxProjectDescriptionLength = 5000

	// MaxSkillNameLength is the maximum length for a skill tag.
	MaxSkillNameLength = 100

	// MaxSkillsPerProject caps the number of tags on a single project.
	MaxSkillsPerProject = 20

	// MaxTeammateRequirementLength bounds each "ideal teammate" entry.
	MaxTeammateRequirementLength = 300

	// MaxContactInfoLength bounds the contact info field.
	MaxContactInfoLength = 255

	// MaxContactNameLength bounds the optional name shown next to contact info.
	MaxContactNameLength = 100

	// MaxLocationLength bounds the free-text location field.
	MaxLocationLength = 255
)
