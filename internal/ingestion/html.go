package ingestion

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LooksLikeHTML reports whether content appears to be an HTML document
// rather than plain text.
func LooksLikeHTML(content string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(trimmed, "<!doctype html") ||
		strings.HasPrefix(trimmed, "<html") ||
		strings.Contains(trimmed, "<body")
}

// StripHTML extracts readable text from an HTML document: scripts, styles,
// and non-content chrome are dropped, block elements become line breaks, and
// the result runs through CleanText.
func StripHTML(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()

	// Insert newlines at block boundaries so headings and list items do not
	// run together once tags are gone.
	doc.Find("p, div, li, ul, ol, br, h1, h2, h3, h4, h5, h6, tr, section, article").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	return CleanText(root.Text()), nil
}

// NormalizeDocument prepares an uploaded document for extraction: HTML is
// stripped to text, plain text is cleaned in place.
func NormalizeDocument(content string) (string, error) {
	if LooksLikeHTML(content) {
		return StripHTML(content)
	}
	return CleanText(content), nil
}
