package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// invisibleTags hold text that never renders on the page.
var invisibleTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// ParseHTML parses an HTML document.
func ParseHTML(content string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// TextLines returns the trimmed, non-empty visible text nodes under sel in
// document order.
func TextLines(sel *goquery.Selection) []string {
	var lines []string
	for _, n := range sel.Nodes {
		collectText(n, &lines)
	}
	return lines
}

func collectText(n *html.Node, lines *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.TrimSpace(n.Data); t != "" {
			*lines = append(*lines, t)
		}
		return
	case html.ElementNode:
		if invisibleTags[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}

// Text returns the visible text under sel, one text node per line.
func Text(sel *goquery.Selection) string {
	return strings.Join(TextLines(sel), "\n")
}

// CompactText returns the visible text under sel with no separators. Length
// thresholds are measured against this form.
func CompactText(sel *goquery.Selection) string {
	return strings.Join(TextLines(sel), "")
}

// StripHTML returns the visible text of an HTML fragment, one text node per line.
func StripHTML(fragment string) string {
	doc, err := ParseHTML(fragment)
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return Text(doc.Selection)
}

// DefaultNoiseSelectors are removed before whole-page text extraction.
func DefaultNoiseSelectors() []string {
	return []string{"script", "style", "nav", "footer", "noscript"}
}

// ExtractMainText parses HTML and returns the main body text.
// It removes noise elements using noiseSelectors, then finds content using contentSelectors.
// If no content selectors match, it falls back to the body element.
func ExtractMainText(content string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := ParseHTML(content)
	if err != nil {
		return "", err
	}

	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	var mainContent *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			mainContent = selection.First()
			break
		}
	}
	if mainContent == nil {
		mainContent = doc.Find("body")
	}
	if mainContent.Length() == 0 {
		mainContent = doc.Selection
	}

	return Text(mainContent), nil
}
