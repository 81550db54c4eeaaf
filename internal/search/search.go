// Package search runs web research queries and formats the hits as prompt
// context for the language model.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// NoResults is the context text used when research produced nothing.
const NoResults = "No web results found."

// resultSeparator separates formatted hits in the collected context.
const resultSeparator = "\n\n---\n\n"

// Result represents a single search hit from any provider.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Source  string // provider name for observability
}

// Markdown formats the hit as a markdown link followed by its snippet.
func (r Result) Markdown() string {
	return fmt.Sprintf("[%s](%s)\n%s", r.Title, r.URL, r.Snippet)
}

// Provider is a minimal interface for search providers.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Name() string
}

// Collect runs every query against p, keeping at most perQuery hits each, and
// joins the formatted hits. A failing query is skipped. With no provider or
// no hits it returns NoResults.
func Collect(ctx context.Context, p Provider, queries []string, perQuery int) string {
	if p == nil {
		return NoResults
	}

	var formatted []string
	for _, query := range queries {
		results, err := p.Search(ctx, query, perQuery)
		if err != nil {
			log.Debug().Err(err).Str("provider", p.Name()).Str("query", query).Msg("search query failed")
			continue
		}
		for i, r := range results {
			if perQuery > 0 && i >= perQuery {
				break
			}
			formatted = append(formatted, r.Markdown())
		}
	}

	if len(formatted) == 0 {
		return NoResults
	}
	return strings.Join(formatted, resultSeparator)
}
