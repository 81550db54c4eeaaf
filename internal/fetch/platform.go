package fetch

import (
	"net/url"
	"regexp"
	"strings"
)

// LinkedInGuestAPIBase is the guest job-posting endpoint; the job ID is appended.
const LinkedInGuestAPIBase = "https://www.linkedin.com/jobs-guest/jobs/api/jobPosting/"

// LinkedInHosts are the host suffixes served by the LinkedIn guest API.
func LinkedInHosts() []string {
	return []string{"linkedin.com"}
}

// HostMatches reports whether the URL's host contains any of hosts.
func HostMatches(urlStr string, hosts []string) bool {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range hosts {
		if h != "" && strings.Contains(host, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

// jobIDPatterns are tried in order; the first match wins.
var jobIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`jobs/view/(?:.*?[-/])?(\d{8,})`),
	regexp.MustCompile(`currentJobId=(\d+)`),
	regexp.MustCompile(`/(\d{8,})/?(?:\?|$)`),
}

// ExtractJobID recovers a numeric job identifier from a posting URL.
// It returns "" when no pattern matches.
func ExtractJobID(urlStr string) string {
	for _, re := range jobIDPatterns {
		if m := re.FindStringSubmatch(urlStr); m != nil {
			return m[1]
		}
	}
	return ""
}

// GuestPostingURL returns the guest API URL for a job ID under base.
func GuestPostingURL(base, jobID string) string {
	if base == "" {
		base = LinkedInGuestAPIBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + jobID
}

// GuestTitleSelector locates the posting title in a guest API fragment.
const GuestTitleSelector = "h2.top-card-layout__title"

// GuestLocationSelector locates the posting location in a guest API fragment.
const GuestLocationSelector = "span.topcard__flavor--bullet"

// GuestCompanySelectors locate the hiring company, most specific first.
func GuestCompanySelectors() []string {
	return []string{"a.topcard__org-name-link", "span.topcard__flavor"}
}

// GuestDescriptionSelectors locate the description body, most specific first.
func GuestDescriptionSelectors() []string {
	return []string{
		"div.show-more-less-html__markup",
		"div.description__text",
		"section.show-more-less-html",
	}
}

// JobDescriptionSelectors returns the description containers tried, in
// priority order, on an arbitrary job page.
func JobDescriptionSelectors() []string {
	return []string{
		"div.show-more-less-html__markup",
		"div.description__text",
		"div.job-description",
		"div.jobsearch-jobDescriptionText",
		"div[data-testid='jobDescription']",
		"article",
		"main",
	}
}
