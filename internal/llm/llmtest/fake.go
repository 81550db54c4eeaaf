// Package llmtest provides a scripted llm.Client for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"
)

// Call records one Chat invocation.
type Call struct {
	Prompt    string
	MaxTokens int
}

// Fake replies to each prompt with the response of the first rule whose
// marker the prompt contains, or Default when none match.
type Fake struct {
	Rules   []Rule
	Default string
	Err     error

	mu     sync.Mutex
	calls  []Call
	closed bool
}

// Rule maps a prompt substring to a canned response.
type Rule struct {
	Contains string
	Response string
	Err      error
}

// Chat implements llm.Client.
func (f *Fake) Chat(_ context.Context, prompt string, maxTokens int) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Prompt: prompt, MaxTokens: maxTokens})
	f.mu.Unlock()

	if f.Err != nil {
		return "", f.Err
	}
	for _, r := range f.Rules {
		if strings.Contains(prompt, r.Contains) {
			return r.Response, r.Err
		}
	}
	return f.Default, nil
}

// Model implements llm.Client.
func (f *Fake) Model() string { return "fake-model" }

// Close implements llm.Client.
func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Closed reports whether Close was called.
func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
