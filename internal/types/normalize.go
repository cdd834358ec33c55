package types

import "strings"

// skillAliases maps common skill name variants to a canonical lowercase form.
// Matching between fact sheets and job requirements runs through this map so
// that "golang" on a resume satisfies a "Go" requirement.
var skillAliases = map[string]string{
	"golang":     "go",
	"go lang":    "go",
	"js":         "javascript",
	"ts":         "typescript",
	"k8s":        "kubernetes",
	"postgres":   "postgresql",
	"react.js":   "react",
	"reactjs":    "react",
	"vue.js":     "vue",
	"vuejs":      "vue",
	"node":       "node.js",
	"nodejs":     "node.js",
	"aws cloud":  "aws",
	"ms sql":     "sql server",
	"salesforce": "salesforce",
}

// NormalizeSkillName returns the canonical lowercase form of a skill name
// used for set membership comparisons. Empty input stays empty.
func NormalizeSkillName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return ""
	}
	if canonical, ok := skillAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// NormalizeSkillSet normalizes and deduplicates a list of skill names,
// preserving first-seen order.
func NormalizeSkillSet(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		normalized := NormalizeSkillName(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}
