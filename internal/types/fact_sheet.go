// Package types provides type definitions for structured data used throughout the Pluto pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CommunicationSignal is a categorical communication-quality signal extracted from a resume.
type CommunicationSignal string

// Communication signal levels. The extraction stage may only emit these values
// or leave the field unset when the resume carries no communication evidence.
const (
	CommunicationStrong   CommunicationSignal = "strong"
	CommunicationModerate CommunicationSignal = "moderate"
	CommunicationWeak     CommunicationSignal = "weak"
)

// FactSheet represents structured claims extracted from a resume.
//
// Scalar and boolean fields are pointers: nil means "not mentioned in the
// source text", never "candidate lacks it". List fields are always present;
// absence from a list likewise means "not mentioned".
type FactSheet struct {
	YearsExperience *float64 `json:"years_experience"`
	Skills          []string `json:"skills"`
	Industries      []string `json:"industries"`

	IsFounder            *bool    `json:"is_founder"`
	LeadershipExperience *bool    `json:"leadership_experience"`
	RecentPromotion      *bool    `json:"recent_promotion"`
	SoldToFinance        *bool    `json:"sold_to_finance"`
	QuotaAttainment      *float64 `json:"quota_attainment"` // percentage, e.g. 110 for 110%

	CommunicationSignal *CommunicationSignal `json:"communication_signal"`
}

// HasSkill reports whether the fact sheet mentions a skill, comparing
// normalized names.
func (f *FactSheet) HasSkill(skill string) bool {
	want := NormalizeSkillName(skill)
	for _, s := range f.Skills {
		if NormalizeSkillName(s) == want {
			return true
		}
	}
	return false
}

// Valid reports whether a communication signal is one of the known levels.
func (c CommunicationSignal) Valid() bool {
	switch c {
	case CommunicationStrong, CommunicationModerate, CommunicationWeak:
		return true
	}
	return false
}
