package ingestion

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

// platformAPIStrategy reads the posting from a job platform's guest API. It
// only runs for URLs on one of hosts that carry a recognizable job ID.
func platformAPIStrategy(fetcher *fetch.Fetcher, hosts []string, guestBase string) Strategy {
	return Strategy{
		Name: SourcePlatformAPI,
		Extract: func(ctx context.Context, req *Request) *ExtractedText {
			if !fetch.HostMatches(req.URL, hosts) {
				return nil
			}
			jobID := fetch.ExtractJobID(req.URL)
			if jobID == "" {
				return nil
			}

			page := fetcher.Get(ctx, fetch.GuestPostingURL(guestBase, jobID))
			if !page.OK() || runeLen(page.HTML) <= StrictContentLength {
				return nil
			}
			doc, err := fetch.ParseHTML(page.HTML)
			if err != nil {
				return nil
			}

			var parts []string
			if el := doc.Find(fetch.GuestTitleSelector).First(); el.Length() > 0 {
				parts = append(parts, "Job Title: "+joinLine(el))
			}
			if el := firstMatch(doc, fetch.GuestCompanySelectors()); el != nil {
				parts = append(parts, "Company: "+joinLine(el))
			}
			if el := doc.Find(fetch.GuestLocationSelector).First(); el.Length() > 0 {
				parts = append(parts, "Location: "+joinLine(el))
			}
			if el := firstMatch(doc, fetch.GuestDescriptionSelectors()); el != nil {
				parts = append(parts, "\n"+fetch.Text(el))
			}

			text := strings.TrimSpace(strings.Join(parts, "\n"))
			if runeLen(text) <= MinContentLength {
				return nil
			}
			return &ExtractedText{Text: text}
		},
	}
}

// structuredDataStrategy reads schema.org JobPosting objects embedded as JSON-LD.
func structuredDataStrategy() Strategy {
	return Strategy{
		Name: SourceStructuredData,
		Extract: func(ctx context.Context, req *Request) *ExtractedText {
			doc := req.Document(ctx)
			if doc == nil {
				return nil
			}

			var result *ExtractedText
			doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				var data any
				if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
					log.Debug().Err(err).Msg("skipping malformed JSON-LD block")
					return true
				}
				posting := findJobPosting(data)
				if posting == nil {
					return true
				}
				text := jobPostingText(posting)
				if runeLen(text) > MinContentLength {
					result = &ExtractedText{Text: text}
					return false
				}
				return true
			})
			return result
		},
	}
}

// findJobPosting returns the first JobPosting object in a decoded JSON-LD
// value, looking through top-level lists and @graph containers.
func findJobPosting(v any) map[string]any {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if p := findJobPosting(item); p != nil {
				return p
			}
		}
	case map[string]any:
		if isJobPosting(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return findJobPosting(graph)
		}
	}
	return nil
}

func isJobPosting(typ any) bool {
	switch t := typ.(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func jobPostingText(posting map[string]any) string {
	title, _ := posting["title"].(string)
	company := ""
	if org, ok := posting["hiringOrganization"].(map[string]any); ok {
		company, _ = org["name"].(string)
	}
	desc, _ := posting["description"].(string)

	header := fetch.StripHTML("Job Title: " + title + "\nCompany: " + company)
	return strings.TrimSpace(header + "\n\n" + fetch.StripHTML(desc))
}

// cssHeuristicStrategy returns the text of the first selector whose content
// is long enough to be a job description.
func cssHeuristicStrategy(selectors []string) Strategy {
	return Strategy{
		Name: SourceCSSHeuristic,
		Extract: func(ctx context.Context, req *Request) *ExtractedText {
			doc := req.Document(ctx)
			if doc == nil {
				return nil
			}
			for _, selector := range selectors {
				el := doc.Find(selector).First()
				if el.Length() == 0 {
					continue
				}
				if runeLen(fetch.CompactText(el)) > StrictContentLength {
					return &ExtractedText{Text: fetch.Text(el)}
				}
			}
			return nil
		},
	}
}

// rawBodyStrategy returns the visible text of the whole page body.
func rawBodyStrategy() Strategy {
	return Strategy{
		Name: SourceRawBody,
		Extract: func(ctx context.Context, req *Request) *ExtractedText {
			doc := req.Document(ctx)
			if doc == nil {
				return nil
			}
			return bodyText(doc)
		},
	}
}

// cachedPageStrategy retries through a cached-page mirror.
func cachedPageStrategy(fetcher *fetch.Fetcher, cacheBase string) Strategy {
	return Strategy{
		Name: SourceCachedPage,
		Extract: func(ctx context.Context, req *Request) *ExtractedText {
			page := fetcher.Get(ctx, cacheBase+req.URL)
			if !page.OK() {
				return nil
			}
			doc, err := fetch.ParseHTML(page.HTML)
			if err != nil {
				return nil
			}
			return bodyText(doc)
		},
	}
}

func bodyText(doc *goquery.Document) *ExtractedText {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	text := fetch.Text(body)
	if runeLen(text) <= StrictContentLength {
		return nil
	}
	return &ExtractedText{Text: text}
}

func firstMatch(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if el := doc.Find(selector).First(); el.Length() > 0 {
			return el
		}
	}
	return nil
}

func joinLine(sel *goquery.Selection) string {
	return strings.Join(fetch.TextLines(sel), " ")
}
