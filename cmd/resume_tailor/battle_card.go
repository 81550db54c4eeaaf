package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/battlecard"
	"github.com/jonathan/resume-tailor/internal/config"
)

var battleCardCmd = &cobra.Command{
	Use:   "battle-card",
	Short: "Generate a competitive battle card for two company websites",
	Long: `Scrape both websites, research both companies and their comparison on the web,
and ask the model for a markdown battle card written for a sales team.`,
	RunE: runBattleCard,
}

var (
	cardCompetitor string
	cardYours      string
	cardOut        string
	cardProvider   string
	cardModel      string
	cardSearxURL   string
)

func init() {
	battleCardCmd.Flags().StringVar(&cardCompetitor, "competitor", "", "Competitor website (required)")
	battleCardCmd.Flags().StringVar(&cardYours, "yours", "", "Your company website (required)")
	battleCardCmd.Flags().StringVarP(&cardOut, "out", "o", "", "Output directory (default \"out\")")
	battleCardCmd.Flags().StringVar(&cardProvider, "provider", "", "LLM provider (defaults to AI_PROVIDER)")
	battleCardCmd.Flags().StringVarP(&cardModel, "model", "m", "", "Model name (defaults to AI_MODEL or the provider default)")
	battleCardCmd.Flags().StringVar(&cardSearxURL, "searx-url", "", "SearxNG instance for web research (defaults to SEARX_URL)")

	_ = battleCardCmd.MarkFlagRequired("competitor")
	_ = battleCardCmd.MarkFlagRequired("yours")

	rootCmd.AddCommand(battleCardCmd)
}

func runBattleCard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	client, err := newClient(ctx, firstNonEmpty(cardProvider, fileConfig.Provider), firstNonEmpty(cardModel, fileConfig.Model))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	gen := &battlecard.Generator{
		Client:  client,
		Fetcher: newFetcher(),
		Search:  newSearch(searxURL(cardSearxURL)),
		OnStep: func(message string) {
			_, _ = fmt.Fprintln(out, message)
		},
	}
	card, err := gen.Generate(ctx, cardCompetitor, cardYours)
	if err != nil {
		return err
	}

	path, err := writeFile(firstNonEmpty(cardOut, fileConfig.OutDir, config.DefaultOutDir), card.FileName(), []byte(card.Markdown))
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s vs %s battle card: %s\n", card.Competitor.Name, card.Yours.Name, path)
	return nil
}
