package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
)

// errNoPostingText is returned when every extraction strategy fails.
var errNoPostingText = errors.New("could not extract text from the job URL; paste the posting into a file and pass it with --job-file")

var fetchJobCmd = &cobra.Command{
	Use:   "fetch-job",
	Short: "Extract the text of a job posting from its URL",
	Long: `Fetch a job posting URL and extract its description with the strategy chain:
platform guest API, JSON-LD JobPosting data, description containers, the page body and finally a cached copy.`,
	RunE: runFetchJob,
}

var (
	fetchURL string
	fetchOut string
)

func init() {
	fetchJobCmd.Flags().StringVarP(&fetchURL, "url", "u", "", "Job posting URL (required)")
	fetchJobCmd.Flags().StringVarP(&fetchOut, "out", "o", "", "Output directory for the posting text and metadata")

	_ = fetchJobCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(fetchJobCmd)
}

func runFetchJob(cmd *cobra.Command, _ []string) error {
	printer := observability.NewPrinter(cmd.OutOrStdout())

	extracted := newChain().Extract(cmd.Context(), fetchURL)
	printer.PrintExtraction(extracted)
	if extracted == nil {
		return errNoPostingText
	}

	if fetchOut == "" {
		return nil
	}
	text := ingestion.CleanText(extracted.Text)
	if err := ingestion.WriteOutput(fetchOut, text, ingestion.MetadataFor(extracted)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Posting text: %s/%s\n", fetchOut, ingestion.PostingFile)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Metadata: %s/%s\n", fetchOut, ingestion.MetadataFile)
	return nil
}
