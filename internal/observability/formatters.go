// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// previewLines is the number of extracted text lines shown
	previewLines = 6
)

// Printer handles formatted output for the CLI
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

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, shorten(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten truncates s to max runes, ending with "..." when cut.
func shorten(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max-3]) + "..."
}

// writeList writes up to limit bullet items under a heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintExtraction outputs the source and a preview of extracted posting text.
func (p *Printer) PrintExtraction(extracted *ingestion.ExtractedText) {
	if extracted == nil {
		p.printBox("JOB POSTING", "Could not extract text. Try pasting manually.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", extracted.Source))
	sb.WriteString(fmt.Sprintf("Words:    %d\n", extracted.Words()))
	sb.WriteString(fmt.Sprintf("URL:      %s\n\n", extracted.URL))

	lines := strings.Split(strings.TrimSpace(extracted.Text), "\n")
	count := min(len(lines), previewLines)
	for i := 0; i < count; i++ {
		sb.WriteString(lines[i] + "\n")
	}
	if len(lines) > previewLines {
		sb.WriteString(fmt.Sprintf("... and %d more lines", len(lines)-previewLines))
	}

	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobAnalysis outputs a human-readable summary of the analyzed job.
func (p *Printer) PrintJobAnalysis(analysis *types.JobAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:   %s\n", analysis.Company))
	sb.WriteString(fmt.Sprintf("Role:      %s\n", analysis.Role))
	if analysis.Seniority != "" {
		sb.WriteString(fmt.Sprintf("Seniority: %s\n", analysis.Seniority))
	}
	if analysis.Industry != "" {
		sb.WriteString(fmt.Sprintf("Industry:  %s\n", analysis.Industry))
	}
	sb.WriteString("\n")

	writeList(&sb, "Must have", analysis.MustHave, maxItemsToShow)
	writeList(&sb, "Nice to have", analysis.NiceToHave, 3)
	if len(analysis.ATSKeywords) > 0 {
		sb.WriteString("ATS keywords: " + strings.Join(analysis.ATSKeywords, ", ") + "\n")
	}

	p.printBox("JOB ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintCompanyResearch outputs the research summary, or nothing when empty.
func (p *Printer) PrintCompanyResearch(research *types.CompanyResearch) {
	if research == nil || research.Empty() {
		return
	}

	var sb strings.Builder
	if research.Overview != "" {
		sb.WriteString("Overview:\n  " + research.Overview + "\n\n")
	}
	if research.Culture != "" {
		sb.WriteString("Culture:\n  " + research.Culture + "\n\n")
	}
	if research.ToneRecommendation != "" {
		sb.WriteString("Tone:\n  " + research.ToneRecommendation + "\n\n")
	}
	writeList(&sb, "Resume tips", research.ResumeTips, maxItemsToShow)

	p.printBox("COMPANY & ROLE RESEARCH", strings.TrimRight(sb.String(), "\n"))
}

// PrintMatchNotes outputs the match score and keyword coverage.
func (p *Printer) PrintMatchNotes(notes *types.MatchNotes) {
	if notes == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match score: %s%%\n\n", notes.ScoreLabel()))
	for _, kw := range notes.KeywordsUsed {
		sb.WriteString(fmt.Sprintf("✓ %s\n", kw))
	}
	for _, kw := range notes.KeywordsMissing {
		sb.WriteString(fmt.Sprintf("✗ %s\n", kw))
	}
	if len(notes.KeywordsUsed)+len(notes.KeywordsMissing) > 0 {
		sb.WriteString("\n")
	}
	writeList(&sb, "Suggestions", notes.Suggestions, maxItemsToShow)

	p.printBox("MATCH NOTES", strings.TrimRight(sb.String(), "\n"))
}

// PrintChanges outputs how many spans were rewritten and lists the first few.
func (p *Printer) PrintChanges(changes []string) {
	var sb strings.Builder
	switch len(changes) {
	case 0:
		sb.WriteString("No changes marked")
	case 1:
		sb.WriteString("1 change\n\n")
	default:
		sb.WriteString(fmt.Sprintf("%d changes\n\n", len(changes)))
	}
	writeList(&sb, "Rewritten", changes, maxItemsToShow)

	p.printBox("CHANGES", strings.TrimRight(sb.String(), "\n"))
}

// PrintSkipped outputs a one-box notice for a job that produced no document.
func (p *Printer) PrintSkipped(reason string) {
	p.printBox("⚠ SKIPPED", reason)
}
