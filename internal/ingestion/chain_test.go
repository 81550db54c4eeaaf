package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

var longDescription = strings.Repeat("Design, build and operate distributed services in Go. ", 8)

const guestPosting = `<html><body>
<h2 class="top-card-layout__title">Senior Engineer</h2>
<a class="topcard__org-name-link">Acme Corp</a>
<span class="topcard__flavor--bullet">Berlin, Germany</span>
<div class="show-more-less-html__markup"><p>%s</p><ul><li>Five years of Go</li></ul></div>
</body></html>`

// testChain points every stage at server and treats its host as a job platform.
func testChain(server *httptest.Server) *Chain {
	return NewChain(&Config{
		Fetcher:       fetch.NewFetcher(nil),
		CacheFetcher:  fetch.NewFetcher(nil),
		PlatformHosts: []string{"example.com"},
		GuestAPIBase:  server.URL + "/guest/",
		CacheBase:     server.URL + "/cache?q=",
	})
}

func TestChain_Strategies(t *testing.T) {
	chain := NewChain(nil)
	assert.Equal(t, []Source{
		SourcePlatformAPI, SourceStructuredData, SourceCSSHeuristic, SourceRawBody, SourceCachedPage,
	}, chain.Strategies())
}

func TestChain_RejectsNonHTTPURLs(t *testing.T) {
	chain := NewChain(nil)
	for _, u := range []string{"", "ftp://example.com/job", "example.com/jobs/1"} {
		assert.Nil(t, chain.Extract(context.Background(), u), u)
	}
}

func TestChain_PlatformAPI(t *testing.T) {
	var guestPath atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/guest/") {
			guestPath.Store(r.URL.Path)
			_, _ = w.Write([]byte(strings.Replace(guestPosting, "%s", longDescription, 1)))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	chain := testChain(server)
	got := chain.Extract(context.Background(), "https://example.com/jobs/view/senior-engineer-12345678")

	require.NotNil(t, got)
	assert.Equal(t, SourcePlatformAPI, got.Source)
	assert.Equal(t, "/guest/12345678", guestPath.Load())
	assert.Contains(t, got.Text, "Job Title: Senior Engineer")
	assert.Contains(t, got.Text, "Company: Acme Corp")
	assert.Contains(t, got.Text, "Location: Berlin, Germany")
	assert.Contains(t, got.Text, "\n\nDesign, build")
	assert.Contains(t, got.Text, "Five years of Go")
	assert.Greater(t, len(got.Text), MinContentLength)
}

func TestChain_PlatformAPINeedsMoreThanStrictLength(t *testing.T) {
	const head = `<h2 class="top-card-layout__title">Senior Engineer</h2><div class="description__text">`
	const tail = `</div>`
	guestBody := func(size int) string {
		return head + strings.Repeat("g", size-len(head)-len(tail)) + tail
	}

	tests := []struct {
		name   string
		size   int
		wantOK bool
	}{
		{"exactly strict length", StrictContentLength, false},
		{"one over strict length", StrictContentLength + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := guestBody(tt.size)
			require.Len(t, body, tt.size)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			fetcher := fetch.NewFetcher(nil)
			chain := NewChainWith(fetcher, platformAPIStrategy(fetcher, []string{"example.com"}, server.URL+"/guest/"))
			got := chain.Extract(context.Background(), "https://example.com/jobs/view/12345678")

			if !tt.wantOK {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, SourcePlatformAPI, got.Source)
			assert.Contains(t, got.Text, "Job Title: Senior Engineer")
		})
	}
}

func TestChain_ShortPageYieldsNil(t *testing.T) {
	short := "<html><body><p>" + strings.Repeat("x", 50) + "</p></body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(short))
	}))
	defer server.Close()

	chain := testChain(server)
	assert.Nil(t, chain.Extract(context.Background(), server.URL+"/posting"))
}

func TestChain_StructuredData(t *testing.T) {
	page := `<html><head>
<script type="application/ld+json">{not json</script>
<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
  {"@type":"Organization","name":"Other"},
  {"@type":"JobPosting","title":"Data Engineer","hiringOrganization":{"name":"Globex"},
   "description":"<p>` + longDescription + `</p>"}
]}</script>
</head><body><p>tiny</p></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	got := testChain(server).Extract(context.Background(), server.URL+"/posting")

	require.NotNil(t, got)
	assert.Equal(t, SourceStructuredData, got.Source)
	assert.True(t, strings.HasPrefix(got.Text, "Job Title: Data Engineer\nCompany: Globex\n\n"))
	assert.NotContains(t, got.Text, "<p>")
}

func TestChain_StructuredDataListForm(t *testing.T) {
	posting := map[string]any{"@type": []any{"Thing", "JobPosting"}}
	assert.NotNil(t, findJobPosting([]any{map[string]any{"@type": "WebPage"}, posting}))
	assert.Nil(t, findJobPosting(map[string]any{"@type": "WebPage"}))
	assert.Nil(t, findJobPosting("JobPosting"))
}

func TestChain_CSSHeuristic(t *testing.T) {
	page := `<html><body>
<div class="job-description">short</div>
<main><h1>Role</h1><p>` + longDescription + `</p></main>
</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	got := testChain(server).Extract(context.Background(), server.URL+"/posting")

	require.NotNil(t, got)
	assert.Equal(t, SourceCSSHeuristic, got.Source)
	assert.True(t, strings.HasPrefix(got.Text, "Role\n"))
}

func TestChain_RawBody(t *testing.T) {
	page := `<html><body><div><span>` + longDescription + `</span></div><script>var x = 1;</script></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	got := testChain(server).Extract(context.Background(), server.URL+"/posting")

	require.NotNil(t, got)
	assert.Equal(t, SourceRawBody, got.Source)
	assert.NotContains(t, got.Text, "var x")
}

func TestChain_CachedPage(t *testing.T) {
	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cache" {
			assert.True(t, strings.HasSuffix(r.URL.RawQuery, "/posting"))
			_, _ = w.Write([]byte("<html><body><p>" + longDescription + "</p></body></html>"))
			return
		}
		fetches.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	got := testChain(server).Extract(context.Background(), server.URL+"/posting")

	require.NotNil(t, got)
	assert.Equal(t, SourceCachedPage, got.Source)
	assert.Equal(t, server.URL+"/posting", got.URL)
	// stages 2-4 share a single fetch of the page
	assert.Equal(t, int32(1), fetches.Load())
}

func TestChain_RecoversFromPanics(t *testing.T) {
	chain := NewChainWith(nil,
		Strategy{Name: "boom", Extract: func(context.Context, *Request) *ExtractedText {
			panic("selector exploded")
		}},
		Strategy{Name: "short", Extract: func(context.Context, *Request) *ExtractedText {
			return &ExtractedText{Text: strings.Repeat("a", MinContentLength)}
		}},
		Strategy{Name: "ok", Extract: func(context.Context, *Request) *ExtractedText {
			return &ExtractedText{Text: longDescription}
		}},
	)

	got := chain.Extract(context.Background(), "https://example.com/job")

	require.NotNil(t, got)
	assert.Equal(t, Source("ok"), got.Source)
	assert.Equal(t, "https://example.com/job", got.URL)
}

func TestExtractedText_Words(t *testing.T) {
	var nilText *ExtractedText
	assert.Equal(t, 0, nilText.Words())
	assert.Equal(t, 3, (&ExtractedText{Text: " a  b\nc "}).Words())
}
