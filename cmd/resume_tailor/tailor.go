package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/types"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume to one or more job postings",
	Long: `Tailor a resume (PDF or text) to each job posting: analyze the job, research the company, rewrite the resume
and render it. For every job the clean HTML, the tailored document as JSON and, with --pdf, a PDF are written
to the output directory. --highlight also writes an HTML view with the changes highlighted.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runTailor,
}

var (
	tailorResume    string
	tailorJobURLs   []string
	tailorJobFiles  []string
	tailorOut       string
	tailorPDF       bool
	tailorHighlight bool
	tailorProvider  string
	tailorModel     string
	tailorSearxURL  string
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorResume, "resume", "r", "", "Resume file (.pdf or text)")
	tailorCmd.Flags().StringSliceVar(&tailorJobURLs, "job-url", nil, "Job posting URL (repeatable)")
	tailorCmd.Flags().StringSliceVarP(&tailorJobFiles, "job-file", "j", nil, "Job description text file (repeatable)")
	tailorCmd.Flags().StringVarP(&tailorOut, "out", "o", "", "Output directory (default \"out\")")
	tailorCmd.Flags().BoolVar(&tailorPDF, "pdf", false, "Export PDFs with headless Chrome")
	tailorCmd.Flags().BoolVar(&tailorHighlight, "highlight", false, "Also write HTML with changes highlighted")
	tailorCmd.Flags().StringVar(&tailorProvider, "provider", "", "LLM provider (defaults to AI_PROVIDER)")
	tailorCmd.Flags().StringVarP(&tailorModel, "model", "m", "", "Model name (defaults to AI_MODEL or the provider default)")
	tailorCmd.Flags().StringVar(&tailorSearxURL, "searx-url", "", "SearxNG instance for company research (defaults to SEARX_URL)")

	rootCmd.AddCommand(tailorCmd)
}

// tailorConfig merges the tailor flags over the config file.
func tailorConfig(cmd *cobra.Command) config.Config {
	cfg := fileConfig
	flags := cmd.Flags()
	if flags.Changed("resume") {
		cfg.Resume = tailorResume
	}
	if flags.Changed("job-url") {
		cfg.JobURLs = tailorJobURLs
	}
	if flags.Changed("job-file") {
		cfg.JobFiles = tailorJobFiles
	}
	if flags.Changed("out") {
		cfg.OutDir = tailorOut
	}
	if flags.Changed("pdf") {
		cfg.PDF = tailorPDF
	}
	if flags.Changed("highlight") {
		cfg.Highlight = tailorHighlight
	}
	if flags.Changed("provider") {
		cfg.Provider = tailorProvider
	}
	if flags.Changed("model") {
		cfg.Model = tailorModel
	}
	cfg.SearxURL = searxURL(tailorSearxURL)
	return cfg.MergeWithDefaults(config.Config{OutDir: config.DefaultOutDir})
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	cfg := tailorConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Resume == "" {
		return errors.New("--resume must be provided (via flag or config)")
	}
	if len(cfg.JobURLs)+len(cfg.JobFiles) == 0 {
		return errors.New("at least one --job-url or --job-file must be provided (via flag or config)")
	}

	resumeText, _, err := ingestion.IngestFromFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	jobs, err := loadJobs(cmd, printer, cfg)
	if err != nil {
		return err
	}

	client, err := newClient(ctx, cfg.Provider, cfg.Model)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	log.Debug().Str("model", client.Model()).Int("jobs", len(jobs)).Msg("starting tailoring run")

	opts := pipeline.RunOptions{
		ResumeText: resumeText,
		Jobs:       jobs,
		Search:     newSearch(cfg.SearxURL),
		PDF:        cfg.PDF,
		OnProgress: progressPrinter(out, printer),
	}
	if cfg.PDF {
		opts.Exporter = newExporter()
	}

	result, runErr := pipeline.Run(ctx, client, opts)
	if result != nil {
		if err := writeResults(out, printer, cfg, result); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}
	if len(result.Completed()) == 0 {
		return errors.New("no resume could be tailored; see the warnings above")
	}
	return nil
}

// loadJobs extracts URL postings and reads job files, in that order. A URL
// that yields no text is reported and left blank so the run skips it.
func loadJobs(cmd *cobra.Command, printer *observability.Printer, cfg config.Config) ([]pipeline.JobInput, error) {
	var jobs []pipeline.JobInput
	if len(cfg.JobURLs) > 0 {
		chain := newChain()
		for _, u := range cfg.JobURLs {
			extracted := chain.Extract(cmd.Context(), u)
			printer.PrintExtraction(extracted)
			job := pipeline.JobInput{Index: len(jobs), URL: u}
			if extracted != nil {
				job.Text = ingestion.CleanText(extracted.Text)
			} else {
				log.Warn().Str("url", u).Msg("could not extract job posting; paste it into a file and use --job-file")
			}
			jobs = append(jobs, job)
		}
	}
	for _, path := range cfg.JobFiles {
		text, _, err := ingestion.IngestFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		jobs = append(jobs, pipeline.JobInput{Index: len(jobs), Text: text})
	}
	return jobs, nil
}

// progressPrinter prints each step and the boxed summaries carried by the
// progress events.
func progressPrinter(out io.Writer, printer *observability.Printer) pipeline.ProgressCallback {
	return func(ev pipeline.ProgressEvent) {
		switch content := ev.Content.(type) {
		case types.JobAnalysis:
			printer.PrintJobAnalysis(&content)
		case types.CompanyResearch:
			printer.PrintCompanyResearch(&content)
		case types.MatchNotes:
			printer.PrintMatchNotes(&content)
		}
		if ev.Step == pipeline.StepSkipped {
			printer.PrintSkipped(ev.Message)
			return
		}
		_, _ = fmt.Fprintf(out, "[%3.0f%%] %s\n", ev.Fraction*100, ev.Message)
	}
}

// writeResults reports the changes and writes the files for every completed job.
func writeResults(out io.Writer, printer *observability.Printer, cfg config.Config, result *pipeline.Result) error {
	for _, job := range result.Completed() {
		printer.PrintChanges(job.Changes)
		base := strings.TrimSuffix(job.FileName(), ".pdf")

		if _, err := writeFile(cfg.OutDir, base+".html", []byte(job.CleanHTML)); err != nil {
			return err
		}
		if cfg.Highlight {
			if _, err := writeFile(cfg.OutDir, base+".highlighted.html", []byte(job.HighlightedHTML)); err != nil {
				return err
			}
		}
		data, err := json.MarshalIndent(job, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", job.Label(), err)
		}
		if _, err := writeFile(cfg.OutDir, base+".json", data); err != nil {
			return err
		}
		if len(job.PDF) > 0 {
			if _, err := writeFile(cfg.OutDir, job.FileName(), job.PDF); err != nil {
				return err
			}
		}
		_, _ = fmt.Fprintf(out, "%s → %s/%s.*\n", job.Label(), cfg.OutDir, base)
	}
	return nil
}
