package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	results map[string][]Result
	fail    map[string]bool
	limits  []int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(_ context.Context, query string, limit int) ([]Result, error) {
	f.limits = append(f.limits, limit)
	if f.fail[query] {
		return nil, errors.New("boom")
	}
	return f.results[query], nil
}

func TestCollect_NilProvider(t *testing.T) {
	assert.Equal(t, NoResults, Collect(context.Background(), nil, []string{"q"}, 4))
}

func TestCollect_FormatsAndSkipsFailures(t *testing.T) {
	p := &fakeProvider{
		results: map[string][]Result{
			"a": {{Title: "A1", URL: "https://a/1", Snippet: "first"}},
			"c": {
				{Title: "C1", URL: "https://c/1", Snippet: "one"},
				{Title: "C2", URL: "https://c/2", Snippet: "two"},
				{Title: "C3", URL: "https://c/3", Snippet: "three"},
			},
		},
		fail: map[string]bool{"b": true},
	}

	got := Collect(context.Background(), p, []string{"a", "b", "c"}, 2)

	assert.Equal(t, "[A1](https://a/1)\nfirst\n\n---\n\n[C1](https://c/1)\none\n\n---\n\n[C2](https://c/2)\ntwo", got)
	assert.Equal(t, []int{2, 2, 2}, p.limits)
}

func TestCollect_NoHits(t *testing.T) {
	p := &fakeProvider{fail: map[string]bool{"a": true}}
	assert.Equal(t, NoResults, Collect(context.Background(), p, []string{"a", "b"}, 4))
}

func TestNewSearxNG_EmptyURL(t *testing.T) {
	assert.Nil(t, NewSearxNG(""))
	assert.NotNil(t, NewSearxNG("http://localhost:8888"))
}

func TestSearxNG_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "acme culture", r.URL.Query().Get("q"))
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":" Acme careers ","url":"https://acme.example/careers","content":" We hire builders "},
			{"title":"","url":"https://skip.example","content":"no title"},
			{"title":"Acme news","url":"https://news.example/acme","content":"Funding"},
			{"title":"Third","url":"https://third.example","content":"over limit"}
		]}`))
	}))
	defer server.Close()

	s := &SearxNG{BaseURL: server.URL, APIKey: "secret"}
	results, err := s.Search(context.Background(), "acme culture", 2)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, Result{Title: "Acme careers", URL: "https://acme.example/careers", Snippet: "We hire builders", Source: "searxng"}, results[0])
	assert.Equal(t, "Acme news", results[1].Title)
}

func TestSearxNG_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := (&SearxNG{BaseURL: server.URL}).Search(context.Background(), "q", 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSearxNG_MissingBaseURL(t *testing.T) {
	_, err := (&SearxNG{}).Search(context.Background(), "q", 4)
	assert.Error(t, err)
}
