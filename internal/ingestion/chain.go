// Package ingestion turns job posting URLs and resume files into plain text.
//
// URL extraction runs an ordered chain of strategies, from the most specific
// source (a job platform's guest API) to the least (a cached copy of the page).
// The first strategy producing enough text wins; when all of them fail the
// caller gets nil and should ask for the text manually.
package ingestion

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

// Source names the strategy that produced an ExtractedText.
type Source string

const (
	SourcePlatformAPI    Source = "platform_api"
	SourceStructuredData Source = "structured_data"
	SourceCSSHeuristic   Source = "css_heuristic"
	SourceRawBody        Source = "raw_body"
	SourceCachedPage     Source = "cached_page"
)

const (
	// MinContentLength is the floor, in characters, for any text returned by the chain.
	MinContentLength = 100
	// StrictContentLength is the floor used by the selector, body and cache stages,
	// and for the raw platform API response.
	StrictContentLength = 200
)

// DefaultCacheBase is the cached-page mirror; the page URL is appended verbatim.
const DefaultCacheBase = "https://webcache.googleusercontent.com/search?q=cache:"

// ExtractedText is the text recovered from a job posting URL.
type ExtractedText struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
	URL    string `json:"url"`
}

// Words returns the whitespace-separated word count of the text.
func (e *ExtractedText) Words() int {
	if e == nil {
		return 0
	}
	return len(strings.Fields(e.Text))
}

// Request is the per-call state shared by strategies. The page at URL is
// fetched at most once, on first use.
type Request struct {
	URL string

	fetcher *fetch.Fetcher
	page    *fetch.RawPage
	doc     *goquery.Document
	parsed  bool
}

// Page returns the fetched page, fetching it on first call.
func (r *Request) Page(ctx context.Context) fetch.RawPage {
	if r.page == nil {
		p := r.fetcher.Get(ctx, r.URL)
		r.page = &p
	}
	return *r.page
}

// Document returns the parsed page, or nil when the fetch or parse failed.
func (r *Request) Document(ctx context.Context) *goquery.Document {
	if r.parsed {
		return r.doc
	}
	r.parsed = true
	page := r.Page(ctx)
	if !page.OK() {
		return nil
	}
	doc, err := fetch.ParseHTML(page.HTML)
	if err != nil {
		log.Debug().Err(err).Str("url", r.URL).Msg("page did not parse")
		return nil
	}
	r.doc = doc
	return doc
}

// Strategy is one link of the extraction chain. Extract returns nil when the
// strategy has nothing to offer.
type Strategy struct {
	Name    Source
	Extract func(ctx context.Context, req *Request) *ExtractedText
}

// Config holds the collaborators and endpoints used by the chain.
type Config struct {
	Fetcher       *fetch.Fetcher
	CacheFetcher  *fetch.Fetcher
	PlatformHosts []string
	GuestAPIBase  string
	CacheBase     string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Fetcher:       fetch.NewFetcher(nil),
		CacheFetcher:  fetch.NewFetcher(&fetch.Options{Timeout: fetch.CacheTimeout}),
		PlatformHosts: fetch.LinkedInHosts(),
		GuestAPIBase:  fetch.LinkedInGuestAPIBase,
		CacheBase:     DefaultCacheBase,
	}
}

// Chain runs strategies in order until one succeeds.
type Chain struct {
	fetcher    *fetch.Fetcher
	strategies []Strategy
}

// NewChain builds the standard five-stage chain. A nil cfg uses DefaultConfig,
// and zero fields fall back to their defaults.
func NewChain(cfg *Config) *Chain {
	def := DefaultConfig()
	if cfg == nil {
		cfg = def
	}
	if cfg.Fetcher == nil {
		cfg.Fetcher = def.Fetcher
	}
	if cfg.CacheFetcher == nil {
		cfg.CacheFetcher = def.CacheFetcher
	}
	if len(cfg.PlatformHosts) == 0 {
		cfg.PlatformHosts = def.PlatformHosts
	}
	if cfg.GuestAPIBase == "" {
		cfg.GuestAPIBase = def.GuestAPIBase
	}
	if cfg.CacheBase == "" {
		cfg.CacheBase = def.CacheBase
	}
	return NewChainWith(cfg.Fetcher,
		platformAPIStrategy(cfg.Fetcher, cfg.PlatformHosts, cfg.GuestAPIBase),
		structuredDataStrategy(),
		cssHeuristicStrategy(fetch.JobDescriptionSelectors()),
		rawBodyStrategy(),
		cachedPageStrategy(cfg.CacheFetcher, cfg.CacheBase),
	)
}

// NewChainWith builds a chain from explicit strategies. fetcher serves the
// shared page fetch.
func NewChainWith(fetcher *fetch.Fetcher, strategies ...Strategy) *Chain {
	if fetcher == nil {
		fetcher = fetch.NewFetcher(nil)
	}
	return &Chain{fetcher: fetcher, strategies: strategies}
}

// Strategies returns the stage names in order.
func (c *Chain) Strategies() []Source {
	names := make([]Source, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name
	}
	return names
}

// Extract returns the text of the job posting at urlStr, or nil when no
// strategy produced more than MinContentLength characters.
func (c *Chain) Extract(ctx context.Context, urlStr string) *ExtractedText {
	if urlStr == "" || !strings.HasPrefix(urlStr, "http") {
		return nil
	}

	req := &Request{URL: urlStr, fetcher: c.fetcher}
	for _, s := range c.strategies {
		result := runStrategy(ctx, s, req)
		if result == nil || runeLen(result.Text) <= MinContentLength {
			log.Debug().Str("strategy", string(s.Name)).Str("url", urlStr).Msg("strategy produced nothing")
			continue
		}
		result.Source = s.Name
		result.URL = urlStr
		log.Debug().Str("strategy", string(s.Name)).Int("chars", runeLen(result.Text)).Msg("strategy succeeded")
		return result
	}
	return nil
}

// runStrategy treats a panicking strategy as one that found nothing.
func runStrategy(ctx context.Context, s Strategy, req *Request) (result *ExtractedText) {
	defer func() {
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Str("strategy", string(s.Name)).Msg("strategy panicked")
			result = nil
		}
	}()
	return s.Extract(ctx, req)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
