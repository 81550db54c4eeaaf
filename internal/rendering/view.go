package rendering

import "github.com/jonathan/resume-tailor/internal/types"

// Layouts understood by the templates.
const (
	layoutText       = "text"
	layoutExperience = "experience"
	layoutList       = "list"
	layoutEmpty      = "empty"
)

type pageView struct {
	Title       string
	Name        string
	ContactLine string
	Sections    []sectionView
}

type sectionView struct {
	Layout  string
	Title   string
	Content string
	Entries []types.Entry
	Lines   []string
}

// buildView flattens the document for the templates. Every section yields one
// view in the same position.
func buildView(doc *types.Document) pageView {
	if doc == nil {
		return pageView{}
	}
	view := pageView{
		Title:       StripMarkers(doc.Name),
		Name:        doc.Name,
		ContactLine: doc.ContactLine,
		Sections:    make([]sectionView, 0, len(doc.Sections)),
	}
	for _, s := range doc.Sections {
		view.Sections = append(view.Sections, sectionViewOf(s))
	}
	return view
}

func sectionViewOf(s types.Section) sectionView {
	switch s := s.(type) {
	case *types.TextSection:
		if s != nil {
			return sectionView{Layout: layoutText, Title: s.Title, Content: s.Content}
		}
	case *types.ExperienceSection:
		if s != nil {
			return sectionView{Layout: layoutExperience, Title: s.Title, Entries: s.Entries}
		}
	case *types.ListSection:
		if s != nil {
			return sectionView{Layout: layoutList, Title: s.Title, Lines: s.Lines}
		}
	}
	// Unknown kinds and nil sections keep their slot but render nothing.
	return sectionView{Layout: layoutEmpty}
}
