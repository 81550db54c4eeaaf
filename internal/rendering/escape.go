package rendering

import "strings"

// latexSpecials maps each LaTeX special character to its escaped form.
// Replacement is a single pass, so inserted backslashes are never re-escaped.
var latexSpecials = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes the LaTeX special characters \ { } $ & % # ^ _ ~.
func EscapeLaTeX(text string) string {
	return latexSpecials.Replace(text)
}

var htmlBoldTags = strings.NewReplacer("<b>", "**", "</b>", "**", "<strong>", "**", "</strong>", "**")

// latexInline escapes s for LaTeX after removing change markers and renders
// bold spans (<b>, <strong> or **text**) as \textbf.
func latexInline(s string) string {
	s = htmlBoldTags.Replace(StripMarkers(s))

	var out strings.Builder
	last := 0
	for _, m := range boldMarkdown.FindAllStringSubmatchIndex(s, -1) {
		out.WriteString(EscapeLaTeX(s[last:m[0]]))
		out.WriteString(`\textbf{`)
		out.WriteString(EscapeLaTeX(s[m[2]:m[3]]))
		out.WriteString("}")
		last = m[1]
	}
	out.WriteString(EscapeLaTeX(s[last:]))
	return out.String()
}
