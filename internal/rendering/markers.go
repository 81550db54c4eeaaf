package rendering

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Change markers wrap text the model rewrote. They are interpreted only when
// rendering.
const (
	MarkerOpen  = "[["
	MarkerClose = "]]"

	HighlightOpen  = `<span class="changed">`
	HighlightClose = `</span>`
)

var (
	highlightReplacer = strings.NewReplacer(MarkerOpen, HighlightOpen, MarkerClose, HighlightClose)
	stripReplacer     = strings.NewReplacer(MarkerOpen, "", MarkerClose, "")
	changedSpan       = regexp.MustCompile(`(?s)\[\[(.*?)\]\]`)
)

// ApplyMarkers turns markers into highlight spans, or removes them when
// highlight is false. Delimiters are replaced independently, so unbalanced
// markers still disappear from the clean view.
func ApplyMarkers(s string, highlight bool) string {
	if highlight {
		return highlightReplacer.Replace(s)
	}
	return stripReplacer.Replace(s)
}

// StripMarkers removes every marker delimiter.
func StripMarkers(s string) string {
	return stripReplacer.Replace(s)
}

// HasMarkers reports whether s contains a marker delimiter.
func HasMarkers(s string) bool {
	return strings.Contains(s, MarkerOpen) || strings.Contains(s, MarkerClose)
}

// ChangedSpans returns the text of every balanced marker span in s.
func ChangedSpans(s string) []string {
	matches := changedSpan.FindAllStringSubmatch(s, -1)
	spans := make([]string, 0, len(matches))
	for _, m := range matches {
		spans = append(spans, m[1])
	}
	return spans
}

// Changes returns the marked spans of every text in the document, in
// document order.
func Changes(doc *types.Document) []string {
	if doc == nil {
		return nil
	}
	var changes []string
	add := func(texts ...string) {
		for _, s := range texts {
			if HasMarkers(s) {
				changes = append(changes, ChangedSpans(s)...)
			}
		}
	}

	add(doc.Name, doc.ContactLine)
	for _, section := range doc.Sections {
		switch s := section.(type) {
		case *types.TextSection:
			if s != nil {
				add(s.Title, s.Content)
			}
		case *types.ListSection:
			if s != nil {
				add(s.Title)
				add(s.Lines...)
			}
		case *types.ExperienceSection:
			if s == nil {
				continue
			}
			add(s.Title)
			for _, e := range s.Entries {
				add(e.LeftPrimary, e.RightPrimary, e.LeftSecondary, e.RightSecondary)
				add(e.Bullets...)
				for _, sub := range e.Subsections {
					add(sub.Title)
					add(sub.Bullets...)
				}
			}
		}
	}
	return changes
}
