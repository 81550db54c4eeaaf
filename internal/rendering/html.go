package rendering

import (
	"embed"
	"html/template"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-tailor/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(
	template.New("resume.html.tmpl").
		Funcs(template.FuncMap{"inline": inlineHTML}).
		ParseFS(templateFS, "templates/resume.html.tmpl"),
)

var (
	boldMarkdown = regexp.MustCompile(`\*\*(.+?)\*\*`)
	escapedBold  = strings.NewReplacer(
		"&lt;b&gt;", "<b>", "&lt;/b&gt;", "</b>",
		"&lt;strong&gt;", "<b>", "&lt;/strong&gt;", "</b>",
	)
)

// RenderHTML renders the document as a standalone HTML page. With highlight
// set, changed spans are wrapped in <span class="changed">; otherwise the
// markers are removed. The output depends only on the arguments.
func RenderHTML(doc *types.Document, highlight bool) string {
	var buf strings.Builder
	if err := htmlTemplate.Execute(&buf, buildView(doc)); err != nil {
		log.Error().Err(&TemplateError{Message: "failed to execute HTML template", Cause: err}).Msg("render failed")
		return ""
	}
	return ApplyMarkers(buf.String(), highlight)
}

// inlineHTML escapes s but keeps bold spans written as <b>, <strong> or
// **text**. Unclosed bold tags are closed at the end.
func inlineHTML(s string) template.HTML {
	out := escapedBold.Replace(template.HTMLEscapeString(s))
	out = boldMarkdown.ReplaceAllString(out, "<b>$1</b>")
	if open := strings.Count(out, "<b>") - strings.Count(out, "</b>"); open > 0 {
		out += strings.Repeat("</b>", open)
	}
	return template.HTML(out) //nolint:gosec // input is escaped above
}
