package types

// BriefingMode selects the briefing variant.
type BriefingMode string

// Briefing modes. A prebrief is generated before an interview stage from the
// resume alone; a debrief is generated after, with the transcript available.
const (
	ModePrebrief BriefingMode = "prebrief"
	ModeDebrief  BriefingMode = "debrief"
)

// Valid reports whether the mode is one of the known briefing modes.
func (m BriefingMode) Valid() bool {
	return m == ModePrebrief || m == ModeDebrief
}

// Severity grades how serious a concern is.
type Severity string

// Concern severity levels.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Valid reports whether the severity is one of the known levels.
func (s Severity) Valid() bool {
	return s == SeverityLow || s == SeverityMedium || s == SeverityHigh
}

// Strength is a positive claim about the candidate, backed by evidence from
// the fact sheet or source text.
type Strength struct {
	Claim                  string `json:"claim"`
	Evidence               string `json:"evidence"`
	VerificationSuggestion string `json:"verification_suggestion,omitempty"`
}

// Concern is a potential gap, with a question the interviewer can use to
// probe it.
type Concern struct {
	Claim             string   `json:"claim"`
	Evidence          string   `json:"evidence"`
	SuggestedQuestion string   `json:"suggested_question,omitempty"`
	Severity          Severity `json:"severity"`
}

// SkillMatch records whether one required or preferred skill was evidenced by
// the candidate.
type SkillMatch struct {
	Skill          string `json:"skill"`
	RequiredLevel  string `json:"required_level,omitempty"`
	CandidateLevel string `json:"candidate_level,omitempty"`
	IsMatch        bool   `json:"is_match"`
}

// SuggestedQuestion is an interview question the briefing recommends asking.
type SuggestedQuestion struct {
	Question string `json:"question"`
	Category string `json:"category,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
	FollowUp string `json:"follow_up,omitempty"`
}

// Briefing is the narrative artifact (prebrief or debrief) combining score,
// facts, and job requirements into human-readable interviewer guidance.
//
// OverallFitScore mirrors ScoreResult.AlgoScore and must never diverge from
// it; the briefing stage enforces this after generation. SkillMatches covers
// every required skill from the JobRequirements, with synthetic "not
// addressed" entries filled in when the generative pass omits one.
type Briefing struct {
	Mode               BriefingMode        `json:"mode"`
	TLDR               string              `json:"tldr"`
	OverallFitScore    int                 `json:"overall_fit_score"`
	Strengths          []Strength          `json:"strengths"`
	Concerns           []Concern           `json:"concerns"`
	SkillMatches       []SkillMatch        `json:"skill_matches"`
	SuggestedQuestions []SuggestedQuestion `json:"suggested_questions"`
}

// CoversSkill reports whether the briefing's skill matches include the given
// skill, comparing normalized names.
func (b *Briefing) CoversSkill(skill string) bool {
	want := NormalizeSkillName(skill)
	for _, m := range b.SkillMatches {
		if NormalizeSkillName(m.Skill) == want {
			return true
		}
	}
	return false
}
