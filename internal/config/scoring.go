package config

import (
	"fmt"

	"github.com/hirely/pluto/internal/scoring"
)

// ScoringConfig resolves the effective scoring configuration: the built-in
// defaults with any file overrides applied. The result is validated so a bad
// override fails at startup instead of mid-pipeline. A nil receiver yields
// the defaults.
func (c *Config) ScoringConfig() (*scoring.Config, error) {
	cfg := scoring.DefaultConfig()
	if c == nil || c.Scoring == nil {
		return cfg, nil
	}

	o := c.Scoring
	if o.Version != "" {
		cfg.Version = o.Version
	}
	if o.TopThreshold != 0 {
		cfg.Tiers.Top = o.TopThreshold
	}
	if o.QualifiedThreshold != 0 {
		cfg.Tiers.Qualified = o.QualifiedThreshold
	}

	for name, w := range o.Weights {
		switch name {
		case "technical_skills":
			cfg.Weights.TechnicalSkills = w
		case "experience_relevance":
			cfg.Weights.ExperienceRelevance = w
		case "leadership_potential":
			cfg.Weights.LeadershipPotential = w
		case "communication_signals":
			cfg.Weights.CommunicationSignals = w
		case "culture_fit_signals":
			cfg.Weights.CultureFitSignals = w
		case "growth_trajectory":
			cfg.Weights.GrowthTrajectory = w
		default:
			return nil, fmt.Errorf("config error: unknown scoring weight %q", name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: invalid scoring overrides: %w", err)
	}
	return cfg, nil
}
