// Package landing generates a single-file marketing landing page for a
// product from a short description.
package landing

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/prompts"
)

// MaxTokens bounds the page completion.
const MaxTokens = 12000

// Tones offered for the page copy.
var Tones = []string{
	"Professional & Modern",
	"Bold & Edgy",
	"Friendly & Approachable",
	"Minimal & Clean",
	"Enterprise & Trust",
}

// Accent is a two-stop gradient used for the page's primary accent.
type Accent struct {
	From string
	To   string
}

// DefaultAccent is the accent used for unknown accent names.
const DefaultAccent = "Blue/Purple (default)"

// Accents maps accent names to gradient stops.
var Accents = map[string]Accent{
	"Blue/Purple (default)": {"#667eea", "#764ba2"},
	"Green/Teal":            {"#00b894", "#00cec9"},
	"Orange/Amber":          {"#f39c12", "#e74c3c"},
	"Pink/Rose":             {"#fd79a8", "#e84393"},
	"Cyan/Blue":             {"#0984e3", "#6c5ce7"},
}

// AccentFor returns the gradient for name, falling back to DefaultAccent.
func AccentFor(name string) Accent {
	if a, ok := Accents[name]; ok {
		return a
	}
	return Accents[DefaultAccent]
}

// Input describes the product to build a page for.
type Input struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Audience    string `json:"audience,omitempty"`
	Features    string `json:"features,omitempty"`
	CTA         string `json:"cta,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Accent      string `json:"accent,omitempty"`
}

var validate = validator.New()

// Validate checks that the required product fields are present.
func (in *Input) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("enter a product name and description: %w", err)
	}
	return nil
}

// Context returns the product context block of the user prompt.
func (in *Input) Context() string {
	parts := []string{
		"PRODUCT NAME: " + in.Name,
		"PRODUCT DESCRIPTION: " + in.Description,
	}
	if in.Audience != "" {
		parts = append(parts, "TARGET AUDIENCE: "+in.Audience)
	}
	if strings.TrimSpace(in.Features) != "" {
		parts = append(parts, "KEY FEATURES:\n"+in.Features)
	}
	if in.CTA != "" {
		parts = append(parts, "PRIMARY CTA TEXT: "+in.CTA)
	}
	tone := in.Tone
	if tone == "" {
		tone = Tones[0]
	}
	parts = append(parts, "TONE: "+tone)
	return strings.Join(parts, "\n")
}

// BuildPrompt assembles the system and user prompts into one message.
func BuildPrompt(in *Input) (string, error) {
	accent := AccentFor(in.Accent)
	system, err := prompts.Render(prompts.LandingFile, prompts.KeyLandingSystem, map[string]string{
		"AccentFrom": accent.From,
		"AccentTo":   accent.To,
	})
	if err != nil {
		return "", err
	}
	user, err := prompts.Render(prompts.LandingFile, prompts.KeyLandingUser, map[string]string{
		"Context": in.Context(),
	})
	if err != nil {
		return "", err
	}
	return system + "\n\n" + user, nil
}

// Page is a generated landing page.
type Page struct {
	Name string `json:"name"`
	HTML string `json:"html"`
}

// FileName returns `{name}_landing_page.html`, lowercased with spaces as underscores.
func (p *Page) FileName() string {
	return strings.ReplaceAll(strings.ToLower(p.Name), " ", "_") + "_landing_page.html"
}

// Generate asks the model for the page and strips any markdown fence around it.
func Generate(ctx context.Context, client llm.Client, in *Input) (*Page, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	prompt, err := BuildPrompt(in)
	if err != nil {
		return nil, fmt.Errorf("failed to build landing page prompt: %w", err)
	}
	html, err := client.Chat(ctx, prompt, MaxTokens)
	if err != nil {
		return nil, fmt.Errorf("landing page generation failed: %w", err)
	}
	return &Page{Name: in.Name, HTML: parsing.StripFences(html)}, nil
}
