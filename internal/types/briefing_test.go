package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBriefingMode_Valid(t *testing.T) {
	assert.True(t, ModePrebrief.Valid())
	assert.True(t, ModeDebrief.Valid())
	assert.False(t, BriefingMode("postbrief").Valid())
	assert.False(t, BriefingMode("").Valid())
}

func TestSeverity_Valid(t *testing.T) {
	assert.True(t, SeverityLow.Valid())
	assert.True(t, SeverityMedium.Valid())
	assert.True(t, SeverityHigh.Valid())
	assert.False(t, Severity("critical").Valid())
}

func TestBriefing_CoversSkill(t *testing.T) {
	brief := Briefing{SkillMatches: []SkillMatch{
		{Skill: "Golang", IsMatch: true},
		{Skill: "PostgreSQL", IsMatch: false},
	}}

	assert.True(t, brief.CoversSkill("Go"))
	assert.True(t, brief.CoversSkill("postgres"))
	assert.False(t, brief.CoversSkill("Kubernetes"))
}
