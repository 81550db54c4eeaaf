// Package battlecard builds a head-to-head competitive battle card for two
// company websites from scraped site text, web research and one model call.
package battlecard

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/search"
)

const (
	// WebsiteTextLimit caps the scraped text of each website, in characters.
	WebsiteTextLimit = 6000
	// ResultsPerQuery is the number of search hits kept per research query.
	ResultsPerQuery = 4
	// MaxTokens bounds the battle card completion.
	MaxTokens = 4000
)

// Company identifies one side of the comparison.
type Company struct {
	URL     string `json:"url"`
	Domain  string `json:"domain"`
	Name    string `json:"name"`
	Website string `json:"-"`
}

// NewCompany derives the domain and display name from a URL as typed by the user.
func NewCompany(rawURL string) Company {
	domain, name := DomainName(rawURL)
	return Company{URL: rawURL, Domain: domain, Name: name}
}

// Card is a generated battle card.
type Card struct {
	Competitor Company `json:"competitor"`
	Yours      Company `json:"yours"`
	Markdown   string  `json:"markdown"`
}

// FileName returns the download name for the card.
func (c *Card) FileName() string {
	return FileName(c.Competitor.Name, c.Yours.Name)
}

// FileName returns `{competitor}_vs_{yours}_battle_card.md`, or
// `{competitor}_battle_card.md` when yours is empty.
func FileName(competitor, yours string) string {
	if yours == "" {
		return strings.ToLower(competitor) + "_battle_card.md"
	}
	return fmt.Sprintf("%s_vs_%s_battle_card.md", strings.ToLower(competitor), strings.ToLower(yours))
}

// DomainName strips the scheme and trailing slashes from rawURL and returns
// it with a display name made from its first label.
func DomainName(rawURL string) (domain, name string) {
	domain = strings.TrimSpace(rawURL)
	domain = strings.Replace(domain, "https://", "", 1)
	domain = strings.Replace(domain, "http://", "", 1)
	domain = strings.Trim(domain, "/")
	first, _, _ := strings.Cut(domain, ".")
	return domain, capitalize(first)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ScrapeWebsite returns the visible text of the page at rawURL with
// navigation chrome removed, truncated to WebsiteTextLimit characters. Failures
// are described in the returned text.
func ScrapeWebsite(ctx context.Context, fetcher *fetch.Fetcher, rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "https://" + rawURL
	}
	page := fetcher.Get(ctx, rawURL)
	if page.Err != nil {
		return "Could not scrape website: " + page.Err.Error()
	}
	text, err := fetch.ExtractMainText(page.HTML, nil, fetch.DefaultNoiseSelectors()...)
	if err != nil {
		return "Could not scrape website: " + err.Error()
	}
	return truncate(text, WebsiteTextLimit)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// CompetitorQueries are the research queries about the competitor.
func CompetitorQueries(name string) []string {
	return []string{
		name + " product features pricing 2025",
		name + " vs competitors comparison",
		name + " reviews strengths weaknesses",
		name + " recent news funding 2024 2025",
		name + " target customers use cases",
	}
}

// OwnQueries are the research queries about the user's own company.
func OwnQueries(name string) []string {
	return []string{
		name + " product features pricing 2025",
		name + " reviews strengths weaknesses",
		name + " target customers use cases",
		name + " recent news funding 2024 2025",
	}
}

// ComparisonQueries are the head-to-head research queries.
func ComparisonQueries(competitor, yours string) []string {
	return []string{
		competitor + " vs " + yours + " comparison",
		competitor + " " + yours + " alternative",
		yours + " vs " + competitor + " reviews",
	}
}

// Generator produces battle cards.
type Generator struct {
	Client  llm.Client
	Fetcher *fetch.Fetcher
	Search  search.Provider // optional
	// OnStep, when set, receives a short description of each stage.
	OnStep func(message string)
}

func (g *Generator) step(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Debug().Msg(msg)
	if g.OnStep != nil {
		g.OnStep(msg)
	}
}

// Generate researches both companies and asks the model for the card.
func (g *Generator) Generate(ctx context.Context, competitorURL, yourURL string) (*Card, error) {
	if g.Client == nil {
		return nil, fmt.Errorf("battle card generator has no model client")
	}
	fetcher := g.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewFetcher(nil)
	}

	competitor := NewCompany(competitorURL)
	yours := NewCompany(yourURL)

	g.step("Scraping competitor website...")
	competitor.Website = ScrapeWebsite(ctx, fetcher, competitorURL)
	g.step("Scraping your company website...")
	yours.Website = ScrapeWebsite(ctx, fetcher, yourURL)

	g.step("Researching %s...", competitor.Name)
	competitorResults := search.Collect(ctx, g.Search, CompetitorQueries(competitor.Name), ResultsPerQuery)
	g.step("Researching %s...", yours.Name)
	yourResults := search.Collect(ctx, g.Search, OwnQueries(yours.Name), ResultsPerQuery)
	g.step("Comparing %s vs %s...", competitor.Name, yours.Name)
	comparisonResults := search.Collect(ctx, g.Search, ComparisonQueries(competitor.Name, yours.Name), ResultsPerQuery)

	prompt, err := prompts.Render(prompts.BattleCardFile, prompts.KeyBattleCard, map[string]string{
		"CompetitorDomain":  competitor.Domain,
		"YourDomain":        yours.Domain,
		"CompetitorWebsite": competitor.Website,
		"YourWebsite":       yours.Website,
		"CompetitorName":    competitor.Name,
		"YourName":          yours.Name,
		"CompetitorResults": competitorResults,
		"YourResults":       yourResults,
		"ComparisonResults": comparisonResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build battle card prompt: %w", err)
	}

	g.step("Generating battle card with AI...")
	markdown, err := g.Client.Chat(ctx, prompt, MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("battle card generation failed: %w", err)
	}

	return &Card{Competitor: competitor, Yours: yours, Markdown: markdown}, nil
}
