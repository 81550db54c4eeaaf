package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a tailored resume document to HTML or LaTeX",
	Long: `Render a tailored resume document (JSON, or a raw model response containing it) to HTML.
With --highlight, text between change markers is wrapped in highlight spans; otherwise markers are removed.
With --latex, the clean document is rendered through the LaTeX template instead.`,
	RunE: runRender,
}

var (
	renderIn        string
	renderOut       string
	renderHighlight bool
	renderLaTeX     bool
	renderTemplate  string
)

func init() {
	renderCmd.Flags().StringVarP(&renderIn, "in", "i", "", "Document JSON file (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (required)")
	renderCmd.Flags().BoolVar(&renderHighlight, "highlight", false, "Highlight changed text in the HTML output")
	renderCmd.Flags().BoolVar(&renderLaTeX, "latex", false, "Render LaTeX instead of HTML")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "LaTeX template override (with --latex)")

	_ = renderCmd.MarkFlagRequired("in")
	_ = renderCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(renderIn)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	rec := parsing.Parse(string(data))
	if len(rec) == 0 {
		return fmt.Errorf("%s: %w", renderIn, errNoObject)
	}
	rec.Pop("match_notes")
	if err := schemas.ValidateDocumentRecord(map[string]any(rec)); err != nil {
		log.Warn().Err(err).Str("file", renderIn).Msg("document does not match schema")
	}
	doc := types.DocumentFromRecord(rec)

	highlight := renderHighlight || (!cmd.Flags().Changed("highlight") && fileConfig.Highlight)
	template := renderTemplate
	if template == "" {
		template = fileConfig.Template
	}

	var out string
	switch {
	case renderLaTeX && template != "":
		out, err = rendering.RenderLaTeXWithTemplate(doc, template)
	case renderLaTeX:
		out, err = rendering.RenderLaTeX(doc)
	default:
		out = rendering.RenderHTML(doc, highlight)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(renderOut, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d sections to %s\n", len(doc.Sections), renderOut)
	return nil
}
