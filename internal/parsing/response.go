// Package parsing recovers structured records from free-form language model
// responses. Nothing in this package returns an error: unrecoverable input
// yields an empty Record.
package parsing

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	// fencedBlock captures the body of the first ``` or ```json fence.
	fencedBlock = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)```")
	// objectRegion spans the first '{' to the last '}'.
	objectRegion = regexp.MustCompile(`(?s)\{.*\}`)
)

// Parse extracts a JSON object from a model response. It tries the body of a
// fenced code block (or the whole trimmed text), then the widest brace
// region, and returns an empty Record when neither decodes to an object.
func Parse(text string) Record {
	text = strings.TrimSpace(text)
	candidate := text
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	if rec, ok := decodeObject(candidate); ok {
		return rec
	}

	for _, source := range []string{candidate, text} {
		if region := objectRegion.FindString(source); region != "" {
			if rec, ok := decodeObject(region); ok {
				return rec
			}
		}
	}

	return Record{}
}

// decodeObject strictly decodes s as a single JSON object.
func decodeObject(s string) (Record, bool) {
	if s == "" {
		return nil, false
	}
	var rec Record
	if err := json.Unmarshal([]byte(s), &rec); err != nil || rec == nil {
		return nil, false
	}
	return rec, true
}

// StripFences removes a surrounding markdown code fence from non-JSON output
// such as generated HTML. Text without a leading fence is returned trimmed.
func StripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return strings.TrimSpace(strings.Trim(text, "`"))
	}
	lines = lines[1:]
	if last := len(lines) - 1; strings.TrimSpace(lines[last]) == "```" {
		lines = lines[:last]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
