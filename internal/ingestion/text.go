// Package ingestion provides text cleanup applied to resume and job
// description documents before extraction. The pipeline consumes raw text;
// these helpers normalize whatever the upstream CRUD layer hands over
// (plain text, or HTML exported from an ATS or job board).
package ingestion

import (
	"regexp"
	"strings"
)

var multiSpaceRe = regexp.MustCompile(`[ \t]{2,}`)

// CleanText normalizes text content while preserving structure: line endings
// become LF, trailing whitespace is trimmed, bullet and heading lines keep
// their shape, and blank-line runs collapse to at most one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, cleanLine(line))
	}

	result := collapseBlankLines(strings.Join(cleaned, "\n"))
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Keep markdown-style headings flush left
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// Preserve bullet indentation
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") || strings.HasPrefix(trimmed, "• ") {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	return multiSpaceRe.ReplaceAllString(trimmed, " ")
}

// collapseBlankLines reduces runs of blank lines to a single blank line.
func collapseBlankLines(content string) string {
	var sb strings.Builder
	blanks := 0
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
