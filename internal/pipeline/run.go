// Package pipeline provides the high-level orchestration for tailoring a
// resume to one or more job descriptions.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/search"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Completion budgets per step.
const (
	AnalyzeMaxTokens  = 2000
	ResearchMaxTokens = 2500
	TailorMaxTokens   = 4096
)

// ResearchResultsPerQuery is the number of search hits kept per research query.
const ResearchResultsPerQuery = 4

// Steps reported through ProgressEvent.Step.
const (
	StepAnalyze  = "analyze_job"
	StepResearch = "research_company"
	StepTailor   = "tailor_resume"
	StepRender   = "render"
	StepPDF      = "export_pdf"
	StepSkipped  = "skipped"
	StepDone     = "done"
)

// stepsPerJob is the number of progress steps reported for each job.
const stepsPerJob = 5

// ErrNothingToTailor is returned when the resume text or every job description is missing.
var ErrNothingToTailor = errors.New("upload/paste your resume and at least one job description")

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string  `json:"step"`
	Job      int     `json:"job"`
	Message  string  `json:"message"`
	Fraction float64 `json:"fraction"`
	RunID    string  `json:"run_id,omitempty"`
	Content  any     `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// PDFExporter prints rendered HTML to PDF. Implementations return nil on failure.
type PDFExporter interface {
	PDF(ctx context.Context, html string) []byte
}

// JobInput is one job description to tailor for. Index is the zero-based
// position the user gave it; jobs are reported as Index+1.
type JobInput struct {
	Index int
	Text  string
	URL   string
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumeText string
	Jobs       []JobInput
	Search     search.Provider // optional web research
	PDF        bool
	Exporter   PDFExporter // required when PDF is set
	OnProgress ProgressCallback
}

// JobResult holds everything produced for one job.
type JobResult struct {
	Job             int                   `json:"job"`
	URL             string                `json:"url,omitempty"`
	Analysis        types.JobAnalysis     `json:"analysis"`
	Research        types.CompanyResearch `json:"research"`
	MatchNotes      types.MatchNotes      `json:"match_notes"`
	Document        *types.Document       `json:"document,omitempty"`
	Changes         []string              `json:"changes,omitempty"`
	HighlightedHTML string                `json:"-"`
	CleanHTML       string                `json:"-"`
	PDF             []byte                `json:"-"`
	// Skipped explains why the job produced no document.
	Skipped string `json:"skipped,omitempty"`
}

// OK reports whether a document was produced.
func (j *JobResult) OK() bool {
	return j.Skipped == "" && j.Document != nil
}

// FileName returns `Resume_{Company}_{Role}.pdf` with spaces replaced by underscores.
func (j *JobResult) FileName() string {
	company := strings.ReplaceAll(orDefault(j.Analysis.Company, "company"), " ", "_")
	role := strings.ReplaceAll(orDefault(j.Analysis.Role, "role"), " ", "_")
	return fmt.Sprintf("Resume_%s_%s.pdf", company, role)
}

// Label returns "Job N: Company — Role".
func (j *JobResult) Label() string {
	return fmt.Sprintf("Job %d: %s — %s", j.Job, j.Analysis.Company, j.Analysis.Role)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Result is the outcome of one Run.
type Result struct {
	RunID uuid.UUID    `json:"run_id"`
	Jobs  []*JobResult `json:"jobs"`
}

// Completed returns the jobs that produced a document, in input order.
func (r *Result) Completed() []*JobResult {
	var out []*JobResult
	for _, j := range r.Jobs {
		if j.OK() {
			out = append(out, j)
		}
	}
	return out
}

type runner struct {
	client llm.Client
	opts   *RunOptions
	runID  uuid.UUID
	total  int
	done   int
}

// emitProgress calls the progress callback if configured and advances the step count.
func (r *runner) emitProgress(step string, job int, message string, content any) {
	r.done++
	log.Debug().Str("run_id", r.runID.String()).Str("step", step).Int("job", job).Msg(message)
	if r.opts.OnProgress == nil {
		return
	}
	fraction := 1.0
	if r.total > 0 && r.done < r.total {
		fraction = float64(r.done) / float64(r.total)
	}
	r.opts.OnProgress(ProgressEvent{
		Step:     step,
		Job:      job,
		Message:  message,
		Fraction: fraction,
		RunID:    r.runID.String(),
		Content:  content,
	})
}

// Run tailors the resume to each job in order. A job whose analysis or
// tailoring response cannot be parsed is recorded as skipped and the run
// continues. Model transport errors stop the run; the jobs finished so far
// are returned with the error.
func Run(ctx context.Context, client llm.Client, opts RunOptions) (*Result, error) {
	var jobs []JobInput
	for _, j := range opts.Jobs {
		if strings.TrimSpace(j.Text) != "" {
			jobs = append(jobs, j)
		}
	}
	if strings.TrimSpace(opts.ResumeText) == "" || len(jobs) == 0 {
		return nil, ErrNothingToTailor
	}
	if client == nil {
		return nil, fmt.Errorf("pipeline has no model client")
	}

	r := &runner{
		client: client,
		opts:   &opts,
		runID:  uuid.New(),
		total:  len(jobs) * stepsPerJob,
	}
	result := &Result{RunID: r.runID}

	for _, job := range jobs {
		jr, err := r.runJob(ctx, job)
		if jr != nil {
			result.Jobs = append(result.Jobs, jr)
		}
		if err != nil {
			return result, err
		}
	}

	r.done = r.total
	r.emitProgress(StepDone, 0, "Done!", nil)
	return result, nil
}

func (r *runner) runJob(ctx context.Context, job JobInput) (*JobResult, error) {
	num := job.Index + 1
	jr := &JobResult{Job: num, URL: job.URL}

	// Step 1: analyze the job description
	r.emitProgress(StepAnalyze, num, fmt.Sprintf("Job %d: Analyzing job requirements...", num), nil)
	analysisRec, err := r.ask(ctx, prompts.KeyAnalyzeJob, map[string]string{
		"JobDescription": job.Text,
	}, AnalyzeMaxTokens)
	if err != nil {
		return jr, fmt.Errorf("job %d: analysis failed: %w", num, err)
	}
	if len(analysisRec) == 0 {
		return r.skip(jr, fmt.Sprintf("Job %d: Failed to analyze job description.", num), stepsPerJob-1), nil
	}
	if err := schemas.ValidateRecord(schemas.JobAnalysisSchema, map[string]any(analysisRec)); err != nil {
		log.Warn().Err(err).Int("job", num).Msg("job analysis does not match schema")
	}
	jr.Analysis = types.JobAnalysisFromRecord(analysisRec)

	// Step 2: research the company
	r.emitProgress(StepResearch, num, fmt.Sprintf("Job %d: Researching %s...", num, orDefault(analysisRec.String("company"), "company")), jr.Analysis)
	researchRec, err := r.research(ctx, analysisRec)
	if err != nil {
		return jr, fmt.Errorf("job %d: company research failed: %w", num, err)
	}
	jr.Research = types.CompanyResearchFromRecord(researchRec)

	// Step 3: tailor the resume
	r.emitProgress(StepTailor, num, fmt.Sprintf("Job %d: Tailoring your resume with AI...", num), jr.Research)
	tailored, err := r.ask(ctx, prompts.KeyTailorResume, map[string]string{
		"Resume":   r.opts.ResumeText,
		"Analysis": analysisRec.JSON(),
		"Research": researchRec.JSON(),
	}, TailorMaxTokens)
	if err != nil {
		return jr, fmt.Errorf("job %d: tailoring failed: %w", num, err)
	}
	if len(tailored) == 0 {
		return r.skip(jr, fmt.Sprintf("Job %d: Failed to tailor resume.", num), stepsPerJob-3), nil
	}

	// Step 4: render
	r.emitProgress(StepRender, num, fmt.Sprintf("Job %d: Rendering resume...", num), nil)
	notes, _ := tailored.Pop("match_notes").(map[string]any)
	jr.MatchNotes = types.MatchNotesFromRecord(parsing.Record(notes))
	if err := schemas.ValidateDocumentRecord(map[string]any(tailored)); err != nil {
		log.Warn().Err(err).Int("job", num).Msg("tailored resume does not match schema")
	}
	jr.Document = types.DocumentFromRecord(tailored)
	jr.Changes = rendering.Changes(jr.Document)
	jr.HighlightedHTML = rendering.RenderHTML(jr.Document, true)
	jr.CleanHTML = rendering.RenderHTML(jr.Document, false)

	// Step 5: PDF
	r.emitProgress(StepPDF, num, fmt.Sprintf("Job %d: Generating PDF...", num), jr.MatchNotes)
	if r.opts.PDF && r.opts.Exporter != nil {
		jr.PDF = r.opts.Exporter.PDF(ctx, jr.CleanHTML)
		if len(jr.PDF) == 0 {
			log.Warn().Int("job", num).Msg("PDF generation failed; the HTML views are still available")
		}
	}

	return jr, nil
}

// research runs the web research queries for the analyzed job and asks the
// model to summarize them.
func (r *runner) research(ctx context.Context, analysis parsing.Record) (parsing.Record, error) {
	company := analysis.StringOr("company", "Unknown")
	role := analysis.StringOr("role", "Unknown")
	industry := analysis.String("industry")

	webResults := search.Collect(ctx, r.opts.Search, ResearchQueries(company, role, industry), ResearchResultsPerQuery)

	return r.ask(ctx, prompts.KeyResearchCompany, map[string]string{
		"Company":    company,
		"Role":       role,
		"Industry":   industry,
		"WebResults": webResults,
	}, ResearchMaxTokens)
}

// ResearchQueries returns the web research queries for a company and role.
func ResearchQueries(company, role, industry string) []string {
	return []string{
		company + " company culture values working environment",
		company + " " + role + " hiring what they look for in candidates",
		company + " glassdoor reviews employee experience",
		company + " recent news funding products 2024 2025",
		`"` + company + `" LinkedIn who gets hired backgrounds`,
		role + " " + industry + " job requirements skills needed 2025",
		company + " " + role + " interview process tips",
		role + " resume tips keywords job boards " + industry,
	}
}

// ask renders a tailoring prompt, sends it, and parses the reply tolerantly.
func (r *runner) ask(ctx context.Context, key string, data map[string]string, maxTokens int) (parsing.Record, error) {
	prompt, err := prompts.Render(prompts.TailoringFile, key, data)
	if err != nil {
		return nil, err
	}
	reply, err := r.client.Chat(ctx, prompt, maxTokens)
	if err != nil {
		return nil, err
	}
	return parsing.Parse(reply), nil
}

// skip records why a job was skipped and accounts for its remaining steps.
func (r *runner) skip(jr *JobResult, reason string, remaining int) *JobResult {
	jr.Skipped = reason
	log.Warn().Int("job", jr.Job).Msg(reason)
	r.done += remaining - 1
	r.emitProgress(StepSkipped, jr.Job, reason, nil)
	return jr
}
