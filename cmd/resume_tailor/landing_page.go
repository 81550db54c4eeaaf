package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/landing"
)

var landingPageCmd = &cobra.Command{
	Use:   "landing-page",
	Short: "Generate a single-file landing page for a product",
	Long: `Generate a complete, self-contained HTML landing page from a product name and description.
Tones: ` + strings.Join(landing.Tones, ", ") + `.`,
	RunE: runLandingPage,
}

var (
	landingInput    landing.Input
	landingOut      string
	landingProvider string
	landingModel    string
)

func init() {
	flags := landingPageCmd.Flags()
	flags.StringVar(&landingInput.Name, "name", "", "Product name (required)")
	flags.StringVar(&landingInput.Description, "description", "", "What the product does and who it is for (required)")
	flags.StringVar(&landingInput.Audience, "audience", "", "Target audience")
	flags.StringVar(&landingInput.Features, "features", "", "Key features, one per line")
	flags.StringVar(&landingInput.CTA, "cta", "", "Primary call-to-action text")
	flags.StringVar(&landingInput.Tone, "tone", landing.Tones[0], "Tone of the copy")
	flags.StringVar(&landingInput.Accent, "accent", landing.DefaultAccent, "Accent color scheme")
	flags.StringVarP(&landingOut, "out", "o", "", "Output directory (default \"out\")")
	flags.StringVar(&landingProvider, "provider", "", "LLM provider (defaults to AI_PROVIDER)")
	flags.StringVarP(&landingModel, "model", "m", "", "Model name (defaults to AI_MODEL or the provider default)")

	rootCmd.AddCommand(landingPageCmd)
}

func runLandingPage(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	in := landingInput
	if err := in.Validate(); err != nil {
		return err
	}

	client, err := newClient(ctx, firstNonEmpty(landingProvider, fileConfig.Provider), firstNonEmpty(landingModel, fileConfig.Model))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Generating landing page for %s...\n", in.Name)
	page, err := landing.Generate(ctx, client, &in)
	if err != nil {
		return err
	}

	path, err := writeFile(firstNonEmpty(landingOut, fileConfig.OutDir, config.DefaultOutDir), page.FileName(), []byte(page.HTML))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Landing page: %s\n", path)
	return nil
}
