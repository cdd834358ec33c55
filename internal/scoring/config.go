package scoring

import (
	"fmt"
	"math"
)

// NeutralMidpoint is the sub-score assigned to a dimension whose inputs are
// unknown. Missing data scores the midpoint, never the minimum, so a
// candidate with a sparse resume is not punished like a candidate with a bad
// one.
const NeutralMidpoint = 50

// Experience-relevance curve constants. Meeting the minimum earns the
// baseline; modest excess earns a small bonus that peaks when the candidate
// doubles the minimum, then decays so extreme overqualification lands below
// an exact match.
const (
	experienceBaseline   = 85
	experiencePeakBonus  = 10
	experienceDecayStep  = 5
	experienceScoreFloor = 70
)

// Point allocations for flag-derived dimensions.
const (
	leadershipFounderPoints    = 50
	leadershipExperiencePoints = 35
	leadershipQuotaPoints      = 15

	growthFounderPoints    = 30
	growthPromotionPoints  = 30
	growthQuotaFullPoints  = 40
	growthQuotaHighPoints  = 25
	growthQuotaSomePoints  = 10
	growthQuotaHighCutoff  = 80
	growthQuotaFullCutoff  = 100

	cultureIndustryMaxPoints = 80
	cultureFinancePoints     = 20
)

// Communication signal point values.
const (
	communicationStrongScore   = 90
	communicationModerateScore = 65
	communicationWeakScore     = 35
)

// preferredSkillCredit scales the additive bonus preferred skills earn
// relative to required skills.
const preferredSkillCredit = 0.5

// Weights holds the fixed weighting of the six sub-dimensions in the overall
// algorithmic score. They must sum to 1.0.
type Weights struct {
	TechnicalSkills      float64 `json:"technical_skills"`
	ExperienceRelevance  float64 `json:"experience_relevance"`
	LeadershipPotential  float64 `json:"leadership_potential"`
	CommunicationSignals float64 `json:"communication_signals"`
	CultureFitSignals    float64 `json:"culture_fit_signals"`
	GrowthTrajectory     float64 `json:"growth_trajectory"`
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.TechnicalSkills + w.ExperienceRelevance + w.LeadershipPotential +
		w.CommunicationSignals + w.CultureFitSignals + w.GrowthTrajectory
}

// TierThresholds holds the band boundaries for tier assignment.
type TierThresholds struct {
	Top       int `json:"top"`       // algo_score >= Top -> "top"
	Qualified int `json:"qualified"` // algo_score >= Qualified -> "qualified", else "reject"
}

// Config is the versioned scoring configuration. The version string is
// persisted next to every stored score so audits can tell which weight set
// produced which historical number.
type Config struct {
	Version string         `json:"version"`
	Weights Weights        `json:"weights"`
	Tiers   TierThresholds `json:"tiers"`

	// CombinedAlgoWeight is the algo_score share in the explicit
	// algo/ai blend computed by CombineScores. The ai share is the
	// remainder.
	CombinedAlgoWeight float64 `json:"combined_algo_weight"`
}

// DefaultConfig returns the current production scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		Version: "pluto-score-v1",
		Weights: Weights{
			TechnicalSkills:      0.30,
			ExperienceRelevance:  0.20,
			LeadershipPotential:  0.15,
			CommunicationSignals: 0.10,
			CultureFitSignals:    0.10,
			GrowthTrajectory:     0.15,
		},
		Tiers: TierThresholds{
			Top:       80,
			Qualified: 60,
		},
		CombinedAlgoWeight: 0.7,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Version == "" {
		return fmt.Errorf("scoring config: version is required")
	}

	for name, w := range map[string]float64{
		"technical_skills":      c.Weights.TechnicalSkills,
		"experience_relevance":  c.Weights.ExperienceRelevance,
		"leadership_potential":  c.Weights.LeadershipPotential,
		"communication_signals": c.Weights.CommunicationSignals,
		"culture_fit_signals":   c.Weights.CultureFitSignals,
		"growth_trajectory":     c.Weights.GrowthTrajectory,
	} {
		if w < 0 {
			return fmt.Errorf("scoring config: weight %s is negative", name)
		}
	}

	if diff := math.Abs(c.Weights.Sum() - 1.0); diff > 1e-9 {
		return fmt.Errorf("scoring config: weights sum to %.6f, want 1.0", c.Weights.Sum())
	}

	if c.Tiers.Qualified <= 0 || c.Tiers.Top <= c.Tiers.Qualified || c.Tiers.Top > 100 {
		return fmt.Errorf("scoring config: tier thresholds must satisfy 0 < qualified < top <= 100")
	}

	if c.CombinedAlgoWeight < 0 || c.CombinedAlgoWeight > 1 {
		return fmt.Errorf("scoring config: combined_algo_weight must be in [0,1]")
	}

	return nil
}
