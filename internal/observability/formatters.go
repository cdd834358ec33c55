// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/hirely/pluto/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintFactSheet outputs a human-readable summary of the extracted fact sheet.
// Fields the resume never mentioned render as "unknown" rather than a default.
func (p *Printer) PrintFactSheet(sheet *types.FactSheet) {
	if sheet == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Experience:     %s\n", formatYears(sheet.YearsExperience)))
	sb.WriteString(fmt.Sprintf("Founder:        %s\n", formatBool(sheet.IsFounder)))
	sb.WriteString(fmt.Sprintf("Leadership:     %s\n", formatBool(sheet.LeadershipExperience)))
	sb.WriteString(fmt.Sprintf("Promotion:      %s\n", formatBool(sheet.RecentPromotion)))
	sb.WriteString(fmt.Sprintf("Sold-to-fin.:   %s\n", formatBool(sheet.SoldToFinance)))
	sb.WriteString(fmt.Sprintf("Quota:          %s\n", formatQuota(sheet.QuotaAttainment)))
	sb.WriteString(fmt.Sprintf("Communication:  %s\n", formatCommunication(sheet.CommunicationSignal)))

	if len(sheet.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(sheet.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", sheet.Skills[i]))
		}
		if len(sheet.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sheet.Skills)-maxItemsToShow))
		}
	}

	if len(sheet.Industries) > 0 {
		sb.WriteString("\nIndustries:\n")
		count := min(len(sheet.Industries), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", sheet.Industries[i]))
		}
		if len(sheet.Industries) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(sheet.Industries)-3))
		}
	}

	p.printBox("EXTRACTED FACT SHEET", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreResult outputs the score, sub-score breakdown, and tier.
func (p *Printer) PrintScoreResult(score *types.ScoreResult) {
	if score == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Overall:  %d/100   Tier: %s\n", score.AlgoScore, score.Tier))
	sb.WriteString(fmt.Sprintf("Config:   %s\n", score.ConfigVersion))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Technical skills:       %3d\n", score.ScoreBreakdown.TechnicalSkills))
	sb.WriteString(fmt.Sprintf("Experience relevance:   %3d\n", score.ScoreBreakdown.ExperienceRelevance))
	sb.WriteString(fmt.Sprintf("Leadership potential:   %3d\n", score.ScoreBreakdown.LeadershipPotential))
	sb.WriteString(fmt.Sprintf("Communication signals:  %3d\n", score.ScoreBreakdown.CommunicationSignals))
	sb.WriteString(fmt.Sprintf("Culture fit signals:    %3d\n", score.ScoreBreakdown.CultureFitSignals))
	sb.WriteString(fmt.Sprintf("Growth trajectory:      %3d\n", score.ScoreBreakdown.GrowthTrajectory))

	if score.AIScore != nil {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("AI score:       %d\n", *score.AIScore))
		if score.CombinedScore != nil {
			sb.WriteString(fmt.Sprintf("Combined score: %d\n", *score.CombinedScore))
		}
	}

	p.printBox("CANDIDATE SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBriefing outputs a compact summary of the generated briefing.
func (p *Printer) PrintBriefing(brief *types.Briefing) {
	if brief == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Mode:  %s   Fit: %d/100\n", brief.Mode, brief.OverallFitScore))
	sb.WriteString("\n")
	sb.WriteString("TL;DR:\n")
	for _, line := range wrapText(brief.TLDR, boxWidth-6) {
		sb.WriteString(fmt.Sprintf("  %s\n", line))
	}

	if len(brief.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		count := min(len(brief.Strengths), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", brief.Strengths[i].Claim))
		}
	}

	if len(brief.Concerns) > 0 {
		sb.WriteString("\nConcerns:\n")
		count := min(len(brief.Concerns), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := brief.Concerns[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", c.Severity, c.Claim))
		}
	}

	unmatched := 0
	for _, m := range brief.SkillMatches {
		if !m.IsMatch {
			unmatched++
		}
	}
	sb.WriteString(fmt.Sprintf("\nSkill matches: %d (%d gaps)   Questions: %d\n",
		len(brief.SkillMatches), unmatched, len(brief.SuggestedQuestions)))

	p.printBox("INTERVIEW BRIEFING", strings.TrimSuffix(sb.String(), "\n"))
}

func formatYears(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.1f years", *v)
}

func formatBool(v *bool) string {
	if v == nil {
		return "unknown"
	}
	if *v {
		return "yes"
	}
	return "no"
}

func formatQuota(v *float64) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%.0f%%", *v)
}

func formatCommunication(v *types.CommunicationSignal) string {
	if v == nil {
		return "unknown"
	}
	return string(*v)
}

// wrapText splits text into lines no longer than width, breaking on spaces.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return lines
}
