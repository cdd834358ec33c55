package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// JobRequirements represents a job's evaluation criteria.
//
// Once an interview pipeline run references a JobRequirements for scoring it
// is treated as immutable; revisions are stored as new versions so historical
// scores stay comparable.
type JobRequirements struct {
	Title              string   `json:"title" validate:"required,min=1"`
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	MinYearsExperience *float64 `json:"min_years_experience" validate:"omitempty,gte=0"`
	TargetIndustries   []string `json:"target_industries"`
}

// Validate checks structural invariants: the title is present, the minimum
// experience (if set) is non-negative, and no skill appears in both the
// required and preferred sets.
func (j *JobRequirements) Validate() error {
	validate := validator.New()
	if err := validate.Struct(j); err != nil {
		return err
	}

	required := make(map[string]bool, len(j.RequiredSkills))
	for _, skill := range j.RequiredSkills {
		required[NormalizeSkillName(skill)] = true
	}
	for _, skill := range j.PreferredSkills {
		if required[NormalizeSkillName(skill)] {
			return fmt.Errorf("skill %q appears in both required_skills and preferred_skills", skill)
		}
	}

	return nil
}
