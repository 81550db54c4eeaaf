// Package types provides the document and analysis types exchanged between the
// parser, the tailoring pipeline and the renderers.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"

	"github.com/jonathan/resume-tailor/internal/parsing"
)

// SectionKind tags the layout of a section.
type SectionKind string

const (
	// SectionText is a prose block such as a profile or summary
	SectionText SectionKind = "text"
	// SectionExperience holds two-column entries with optional bullets
	SectionExperience SectionKind = "experience"
	// SectionList holds one line per item
	SectionList SectionKind = "list"
)

// Document is a resume-like document: a header and ordered sections.
type Document struct {
	Name        string    `json:"name"`
	ContactLine string    `json:"contact_line"`
	Sections    []Section `json:"sections"`
}

// Section is implemented by *TextSection, *ExperienceSection, *ListSection
// and *UnknownSection only.
type Section interface {
	SectionTitle() string
	Kind() SectionKind
	isSection()
}

// TextSection is a titled paragraph.
type TextSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ExperienceSection is a titled list of entries.
type ExperienceSection struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// ListSection is a titled list of single lines.
type ListSection struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// UnknownSection keeps the position of a section whose type tag was not
// recognized. It renders as an empty block.
type UnknownSection struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Entry is one row of an experience section.
type Entry struct {
	LeftPrimary    string       `json:"left_primary"`
	RightPrimary   string       `json:"right_primary"`
	LeftSecondary  string       `json:"left_secondary"`
	RightSecondary string       `json:"right_secondary"`
	Subsections    []Subsection `json:"subsections"`
	Bullets        []string     `json:"bullets"`
}

// Subsection groups bullets under a heading inside an entry.
type Subsection struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

func (s *TextSection) SectionTitle() string       { return s.Title }
func (s *ExperienceSection) SectionTitle() string { return s.Title }
func (s *ListSection) SectionTitle() string       { return s.Title }
func (s *UnknownSection) SectionTitle() string    { return s.Title }

func (*TextSection) Kind() SectionKind       { return SectionText }
func (*ExperienceSection) Kind() SectionKind { return SectionExperience }
func (*ListSection) Kind() SectionKind       { return SectionList }
func (s *UnknownSection) Kind() SectionKind  { return SectionKind(s.Type) }

func (*TextSection) isSection()       {}
func (*ExperienceSection) isSection() {}
func (*ListSection) isSection()       {}
func (*UnknownSection) isSection()    {}

// DocumentFromRecord converts a parsed model response into a Document.
// Missing keys become empty strings, non-list values where a list is expected
// become empty lists, and every element of "sections" yields exactly one
// Section in the same position.
func DocumentFromRecord(rec parsing.Record) *Document {
	doc := &Document{
		Name:        rec.String("name"),
		ContactLine: rec.String("contact_line"),
	}
	for _, item := range rec.Slice("sections") {
		m, ok := item.(map[string]any)
		if !ok {
			doc.Sections = append(doc.Sections, &UnknownSection{})
			continue
		}
		doc.Sections = append(doc.Sections, sectionFromRecord(parsing.Record(m)))
	}
	return doc
}

func sectionFromRecord(r parsing.Record) Section {
	title := r.String("title")
	switch kind := r.String("type"); SectionKind(kind) {
	case SectionText:
		return &TextSection{Title: title, Content: r.String("content")}
	case SectionExperience:
		items := r.Slice("entries")
		entries := make([]Entry, 0, len(items))
		for _, item := range items {
			m, _ := item.(map[string]any)
			entries = append(entries, entryFromRecord(parsing.Record(m)))
		}
		return &ExperienceSection{Title: title, Entries: entries}
	case SectionList:
		return &ListSection{Title: title, Lines: r.Strings("lines")}
	default:
		return &UnknownSection{Title: title, Type: kind}
	}
}

func entryFromRecord(r parsing.Record) Entry {
	e := Entry{
		LeftPrimary:    r.String("left_primary"),
		RightPrimary:   r.String("right_primary"),
		LeftSecondary:  r.String("left_secondary"),
		RightSecondary: r.String("right_secondary"),
		Bullets:        r.Strings("bullets"),
	}
	for _, sub := range r.Records("subsections") {
		e.Subsections = append(e.Subsections, Subsection{
			Title:   sub.String("title"),
			Bullets: sub.Strings("bullets"),
		})
	}
	return e
}

// UnmarshalJSON decodes a document tolerantly through DocumentFromRecord.
func (d *Document) UnmarshalJSON(data []byte) error {
	var rec parsing.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*d = *DocumentFromRecord(rec)
	return nil
}

// MarshalJSON includes the "type" tag.
func (s *TextSection) MarshalJSON() ([]byte, error) {
	type plain TextSection
	return json.Marshal(struct {
		Type SectionKind `json:"type"`
		*plain
	}{SectionText, (*plain)(s)})
}

// MarshalJSON includes the "type" tag.
func (s *ExperienceSection) MarshalJSON() ([]byte, error) {
	type plain ExperienceSection
	return json.Marshal(struct {
		Type SectionKind `json:"type"`
		*plain
	}{SectionExperience, (*plain)(s)})
}

// MarshalJSON includes the "type" tag.
func (s *ListSection) MarshalJSON() ([]byte, error) {
	type plain ListSection
	return json.Marshal(struct {
		Type SectionKind `json:"type"`
		*plain
	}{SectionList, (*plain)(s)})
}
