// Package rendering turns a Document into HTML or LaTeX through embedded
// templates and applies the change-marker convention to the result.
package rendering

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/jonathan/resume-tailor/internal/types"
)

// latexFuncs are available to LaTeX templates. Both strip change markers.
var latexFuncs = template.FuncMap{
	"escape": EscapeLaTeX,
	"tex":    func(s string) string { return EscapeLaTeX(StripMarkers(s)) },
	"inline": latexInline,
}

// RenderLaTeX renders the clean document through the embedded LaTeX template.
func RenderLaTeX(doc *types.Document) (string, error) {
	content, err := templateFS.ReadFile("templates/resume.tex.tmpl")
	if err != nil {
		return "", &TemplateError{Message: "embedded LaTeX template missing", Cause: err}
	}
	tmpl, err := newLaTeXTemplate(string(content))
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

// RenderLaTeXWithTemplate renders the clean document through a template file.
// Templates use {{ }} actions and the escape, tex and inline functions.
func RenderLaTeXWithTemplate(doc *types.Document, templatePath string) (string, error) {
	tmpl, err := parseTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return executeLaTeX(tmpl, doc)
}

func executeLaTeX(tmpl *template.Template, doc *types.Document) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "no document to render"}
	}
	var result strings.Builder
	if err := tmpl.Execute(&result, buildView(doc)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// parseTemplate reads and parses a LaTeX template file
func parseTemplate(templatePath string) (*template.Template, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return newLaTeXTemplate(string(content))
}

func newLaTeXTemplate(content string) (*template.Template, error) {
	tmpl, err := template.New("resume").Funcs(latexFuncs).Parse(content)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}
