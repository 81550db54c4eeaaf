package battlecard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
	"github.com/jonathan/resume-tailor/internal/search"
)

func TestDomainName(t *testing.T) {
	tests := []struct {
		in     string
		domain string
		name   string
	}{
		{"hubspot.com", "hubspot.com", "Hubspot"},
		{"https://www.salesforce.com/", "www.salesforce.com", "Www"},
		{"http://ATLAN.com", "ATLAN.com", "Atlan"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			domain, name := DomainName(tt.in)
			assert.Equal(t, tt.domain, domain)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "hubspot_vs_atlan_battle_card.md", FileName("Hubspot", "Atlan"))
	assert.Equal(t, "hubspot_battle_card.md", FileName("Hubspot", ""))
}

func TestScrapeWebsite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<nav>Menu</nav>
<h1>Metadata for everyone</h1>
<script>track()</script>
<footer>Copyright</footer>
</body></html>`))
	}))
	defer server.Close()

	text := ScrapeWebsite(context.Background(), fetch.NewFetcher(nil), server.URL)

	assert.Equal(t, "Metadata for everyone", text)
}

func TestScrapeWebsite_Truncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("é", WebsiteTextLimit+500) + "</p></body></html>"))
	}))
	defer server.Close()

	text := ScrapeWebsite(context.Background(), fetch.NewFetcher(nil), server.URL)

	assert.Equal(t, WebsiteTextLimit, len([]rune(text)))
}

func TestScrapeWebsite_Failure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	text := ScrapeWebsite(context.Background(), fetch.NewFetcher(nil), server.URL)

	assert.True(t, strings.HasPrefix(text, "Could not scrape website: "))
	assert.Contains(t, text, "500")
}

func TestQueries(t *testing.T) {
	assert.Len(t, CompetitorQueries("Hubspot"), 5)
	assert.Len(t, OwnQueries("Atlan"), 4)
	assert.Equal(t, []string{
		"Hubspot vs Atlan comparison",
		"Hubspot Atlan alternative",
		"Atlan vs Hubspot reviews",
	}, ComparisonQueries("Hubspot", "Atlan"))
}

type staticSearch struct{ queries []string }

func (s *staticSearch) Name() string { return "static" }

func (s *staticSearch) Search(_ context.Context, query string, _ int) ([]search.Result, error) {
	s.queries = append(s.queries, query)
	return []search.Result{{Title: "Hit for " + query, URL: "https://r.example", Snippet: "snippet"}}, nil
}

func TestGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>Site of " + r.Host + "</p></body></html>"))
	}))
	defer server.Close()

	client := &llmtest.Fake{Default: "# Competitive Battle Card"}
	searcher := &staticSearch{}
	var steps []string
	g := &Generator{
		Client:  client,
		Fetcher: fetch.NewFetcher(nil),
		Search:  searcher,
		OnStep:  func(m string) { steps = append(steps, m) },
	}

	card, err := g.Generate(context.Background(), server.URL, server.URL+"/")
	require.NoError(t, err)

	assert.Equal(t, "# Competitive Battle Card", card.Markdown)
	assert.Len(t, searcher.queries, 12)
	assert.Len(t, steps, 6)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, MaxTokens, calls[0].MaxTokens)
	assert.Contains(t, calls[0].Prompt, "Site of ")
	assert.Contains(t, calls[0].Prompt, "Hit for ")
	assert.NotContains(t, calls[0].Prompt, "{{.")
}

func TestGenerator_NoSearchProvider(t *testing.T) {
	client := &llmtest.Fake{Default: "card"}
	g := &Generator{Client: client, Fetcher: fetch.NewFetcher(nil)}

	card, err := g.Generate(context.Background(), "http://127.0.0.1:1", "http://127.0.0.1:1")
	require.NoError(t, err)
	assert.Equal(t, "card", card.Markdown)

	prompt := client.Calls()[0].Prompt
	assert.Contains(t, prompt, search.NoResults)
	assert.Contains(t, prompt, "Could not scrape website")
}

func TestGenerator_ModelError(t *testing.T) {
	g := &Generator{Client: &llmtest.Fake{Err: errors.New("quota")}, Fetcher: fetch.NewFetcher(nil)}

	_, err := g.Generate(context.Background(), "http://127.0.0.1:1", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestGenerator_RequiresClient(t *testing.T) {
	_, err := (&Generator{}).Generate(context.Background(), "a.com", "b.com")
	assert.Error(t, err)
}
