// Package scoring implements the deterministic scoring stage: a pure
// function from (FactSheet, JobRequirements, Config) to ScoreResult. There
// is no model call and no randomness, so identical inputs reproduce the
// score byte for byte.
package scoring

import (
	"math"
	"strings"

	"github.com/hirely/pluto/internal/types"
)

// Score computes the algorithmic score for a candidate against a job.
// It fails with *ScoringError only on structurally invalid input; low-quality
// candidates simply score low.
func Score(sheet *types.FactSheet, job *types.JobRequirements, cfg *Config) (*types.ScoreResult, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := validateInput(sheet, job, cfg); err != nil {
		return nil, err
	}

	breakdown := types.ScoreBreakdown{
		TechnicalSkills:      technicalSkillsScore(sheet, job),
		ExperienceRelevance:  experienceRelevanceScore(sheet, job),
		LeadershipPotential:  leadershipPotentialScore(sheet),
		CommunicationSignals: communicationSignalsScore(sheet),
		CultureFitSignals:    cultureFitScore(sheet, job),
		GrowthTrajectory:     growthTrajectoryScore(sheet),
	}

	algo := weightedAverage(breakdown, cfg.Weights)

	return &types.ScoreResult{
		AlgoScore:      algo,
		ScoreBreakdown: breakdown,
		Tier:           tierFor(algo, cfg.Tiers),
		ConfigVersion:  cfg.Version,
	}, nil
}

// CombineScores blends the deterministic algo score with a narrative-derived
// ai score using the config's documented weights. This is the only sanctioned
// combination; algo_score itself is never blended in place.
func CombineScores(algoScore, aiScore int, cfg *Config) int {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	w := cfg.CombinedAlgoWeight
	combined := w*float64(algoScore) + (1-w)*float64(aiScore)
	return clampScore(int(math.Round(combined)))
}

func validateInput(sheet *types.FactSheet, job *types.JobRequirements, cfg *Config) error {
	if sheet == nil {
		return &ScoringError{Field: "fact_sheet", Message: "is nil"}
	}
	if job == nil {
		return &ScoringError{Field: "job_requirements", Message: "is nil"}
	}
	if err := cfg.Validate(); err != nil {
		return &ScoringError{Field: "config", Message: err.Error()}
	}
	if sheet.YearsExperience != nil && *sheet.YearsExperience < 0 {
		return &ScoringError{Field: "years_experience", Message: "must be non-negative"}
	}
	if sheet.QuotaAttainment != nil && *sheet.QuotaAttainment < 0 {
		return &ScoringError{Field: "quota_attainment", Message: "must be non-negative"}
	}
	if sheet.CommunicationSignal != nil && !sheet.CommunicationSignal.Valid() {
		return &ScoringError{Field: "communication_signal", Message: "unknown signal value"}
	}
	if job.MinYearsExperience != nil && *job.MinYearsExperience < 0 {
		return &ScoringError{Field: "min_years_experience", Message: "must be non-negative"}
	}
	return nil
}

// technicalSkillsScore scores the proportion of required skills the candidate
// evidences, scaled to 0-100, with preferred skills contributing half credit
// additively. Capped at 100. A job with no skill requirements cannot be
// judged on this dimension and scores the neutral midpoint.
func technicalSkillsScore(sheet *types.FactSheet, job *types.JobRequirements) int {
	required := types.NormalizeSkillSet(job.RequiredSkills)
	preferred := types.NormalizeSkillSet(job.PreferredSkills)
	if len(required) == 0 && len(preferred) == 0 {
		return NeutralMidpoint
	}

	have := make(map[string]bool)
	for _, skill := range types.NormalizeSkillSet(sheet.Skills) {
		have[skill] = true
	}

	score := 0.0
	if len(required) > 0 {
		matched := 0
		for _, skill := range required {
			if have[skill] {
				matched++
			}
		}
		score += 100 * float64(matched) / float64(len(required))
	}
	if len(preferred) > 0 {
		matched := 0
		for _, skill := range preferred {
			if have[skill] {
				matched++
			}
		}
		score += 100 * preferredSkillCredit * float64(matched) / float64(len(preferred))
	}

	return clampScore(int(math.Round(score)))
}

// experienceRelevanceScore compares candidate years against the job minimum.
// Unset minimum or unknown candidate years cannot be judged and score the
// neutral midpoint. Below the minimum scores proportionally toward the
// baseline; meeting it scores the baseline; the excess bonus peaks at double
// the minimum and then decays, so 20 years against a 2-year minimum lands
// below an exact match.
func experienceRelevanceScore(sheet *types.FactSheet, job *types.JobRequirements) int {
	if job.MinYearsExperience == nil || sheet.YearsExperience == nil {
		return NeutralMidpoint
	}

	min := *job.MinYearsExperience
	years := *sheet.YearsExperience

	if years < min {
		return clampScore(int(math.Round(experienceBaseline * years / min)))
	}

	// Excess is measured in multiples of the minimum (with a floor of one
	// year so a zero-minimum job still has a defined curve).
	unit := min
	if unit < 1 {
		unit = 1
	}
	excessMultiples := (years - min) / unit

	var bonus float64
	if excessMultiples <= 1 {
		bonus = experiencePeakBonus * excessMultiples
	} else {
		bonus = experiencePeakBonus - experienceDecayStep*(excessMultiples-1)
	}

	score := int(math.Round(experienceBaseline + bonus))
	if score < experienceScoreFloor {
		score = experienceScoreFloor
	}
	return clampScore(score)
}

// leadershipPotentialScore allocates fixed points per leadership flag, capped
// at 100. All inputs unknown scores the neutral midpoint.
func leadershipPotentialScore(sheet *types.FactSheet) int {
	if sheet.IsFounder == nil && sheet.LeadershipExperience == nil && sheet.QuotaAttainment == nil {
		return NeutralMidpoint
	}

	points := 0
	if sheet.IsFounder != nil && *sheet.IsFounder {
		points += leadershipFounderPoints
	}
	if sheet.LeadershipExperience != nil && *sheet.LeadershipExperience {
		points += leadershipExperiencePoints
	}
	if sheet.QuotaAttainment != nil && *sheet.QuotaAttainment >= growthQuotaFullCutoff {
		points += leadershipQuotaPoints
	}
	return clampScore(points)
}

// communicationSignalsScore maps the extracted communication signal to a
// fixed score. No signal means an extraction gap, not poor communication,
// and scores the neutral midpoint.
func communicationSignalsScore(sheet *types.FactSheet) int {
	if sheet.CommunicationSignal == nil {
		return NeutralMidpoint
	}
	switch *sheet.CommunicationSignal {
	case types.CommunicationStrong:
		return communicationStrongScore
	case types.CommunicationModerate:
		return communicationModerateScore
	case types.CommunicationWeak:
		return communicationWeakScore
	}
	return NeutralMidpoint
}

// cultureFitScore scores industry overlap against the job's target
// industries, scaled to a maximum of 80 points, with a fixed bonus for
// finance sales experience when the job targets finance. A job without
// target industries, or a candidate with no industry evidence and no
// finance-sales flag, scores the neutral midpoint.
func cultureFitScore(sheet *types.FactSheet, job *types.JobRequirements) int {
	targets := types.NormalizeSkillSet(job.TargetIndustries)
	if len(targets) == 0 {
		return NeutralMidpoint
	}
	if len(sheet.Industries) == 0 && sheet.SoldToFinance == nil {
		return NeutralMidpoint
	}

	have := make(map[string]bool)
	for _, industry := range types.NormalizeSkillSet(sheet.Industries) {
		have[industry] = true
	}

	matched := 0
	targetsFinance := false
	for _, target := range targets {
		if have[target] {
			matched++
		}
		if strings.Contains(target, "financ") {
			targetsFinance = true
		}
	}

	points := int(math.Round(cultureIndustryMaxPoints * float64(matched) / float64(len(targets))))
	if targetsFinance && sheet.SoldToFinance != nil && *sheet.SoldToFinance {
		points += cultureFinancePoints
	}
	return clampScore(points)
}

// growthTrajectoryScore allocates fixed points for founder experience, a
// recent promotion, and quota attainment bands, capped at 100. All inputs
// unknown scores the neutral midpoint.
func growthTrajectoryScore(sheet *types.FactSheet) int {
	if sheet.IsFounder == nil && sheet.RecentPromotion == nil && sheet.QuotaAttainment == nil {
		return NeutralMidpoint
	}

	points := 0
	if sheet.IsFounder != nil && *sheet.IsFounder {
		points += growthFounderPoints
	}
	if sheet.RecentPromotion != nil && *sheet.RecentPromotion {
		points += growthPromotionPoints
	}
	if sheet.QuotaAttainment != nil {
		switch q := *sheet.QuotaAttainment; {
		case q >= growthQuotaFullCutoff:
			points += growthQuotaFullPoints
		case q >= growthQuotaHighCutoff:
			points += growthQuotaHighPoints
		case q > 0:
			points += growthQuotaSomePoints
		}
	}
	return clampScore(points)
}

// weightedAverage combines the six sub-scores with the configured weights,
// rounding half up.
func weightedAverage(b types.ScoreBreakdown, w Weights) int {
	sum := w.TechnicalSkills*float64(b.TechnicalSkills) +
		w.ExperienceRelevance*float64(b.ExperienceRelevance) +
		w.LeadershipPotential*float64(b.LeadershipPotential) +
		w.CommunicationSignals*float64(b.CommunicationSignals) +
		w.CultureFitSignals*float64(b.CultureFitSignals) +
		w.GrowthTrajectory*float64(b.GrowthTrajectory)
	return clampScore(int(math.Round(sum)))
}

// tierFor assigns the categorical tier from configured threshold bands.
func tierFor(algoScore int, t TierThresholds) types.Tier {
	switch {
	case algoScore >= t.Top:
		return types.TierTop
	case algoScore >= t.Qualified:
		return types.TierQualified
	default:
		return types.TierReject
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
