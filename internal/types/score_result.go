package types

// Tier is the categorical bucket derived from an algorithmic score.
type Tier string

// Tier labels, assigned from configured threshold bands on AlgoScore.
const (
	TierTop       Tier = "top"
	TierQualified Tier = "qualified"
	TierReject    Tier = "reject"
)

// ScoreBreakdown holds the six fixed scoring sub-dimensions, each 0-100.
type ScoreBreakdown struct {
	TechnicalSkills      int `json:"technical_skills"`
	ExperienceRelevance  int `json:"experience_relevance"`
	LeadershipPotential  int `json:"leadership_potential"`
	CommunicationSignals int `json:"communication_signals"`
	CultureFitSignals    int `json:"culture_fit_signals"`
	GrowthTrajectory     int `json:"growth_trajectory"`
}

// AsMap returns the breakdown keyed by sub-dimension name, matching the wire
// field names.
func (b ScoreBreakdown) AsMap() map[string]int {
	return map[string]int{
		"technical_skills":      b.TechnicalSkills,
		"experience_relevance":  b.ExperienceRelevance,
		"leadership_potential":  b.LeadershipPotential,
		"communication_signals": b.CommunicationSignals,
		"culture_fit_signals":   b.CultureFitSignals,
		"growth_trajectory":     b.GrowthTrajectory,
	}
}

// ScoreResult is the deterministic evaluation output of the scoring stage.
//
// AlgoScore is a pure function of (FactSheet, JobRequirements, config
// version): identical inputs reproduce it byte for byte. AIScore, when
// present, comes from a separate narrative pass and is stored as a distinct
// field; it never overwrites AlgoScore. CombinedScore only exists as the
// explicit blend computed by scoring.CombineScores.
type ScoreResult struct {
	AlgoScore      int            `json:"algo_score"`
	ScoreBreakdown ScoreBreakdown `json:"score_breakdown"`
	Tier           Tier           `json:"tier"`
	ConfigVersion  string         `json:"config_version"`

	AIScore       *int `json:"ai_score,omitempty"`
	CombinedScore *int `json:"combined_score,omitempty"`
}
