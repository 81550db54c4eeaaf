package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/export"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/search"
)

// Constructors for the external collaborators. Tests swap them for fakes.
var (
	newClient   = newEnvClient
	newSearch   = search.NewSearxNG
	newChain    = func() *ingestion.Chain { return ingestion.NewChain(nil) }
	newFetcher  = func() *fetch.Fetcher { return fetch.NewFetcher(nil) }
	newExporter = func() pipeline.PDFExporter { return &export.Exporter{} }
)

// newEnvClient builds a model client from the environment. A non-empty
// provider replaces AI_PROVIDER and a non-empty model replaces AI_MODEL.
func newEnvClient(ctx context.Context, provider, model string) (llm.Client, error) {
	getenv := os.Getenv
	if provider != "" {
		getenv = func(key string) string {
			if key == "AI_PROVIDER" {
				return provider
			}
			return os.Getenv(key)
		}
	}

	cfg, err := llm.ConfigFromEnv(getenv)
	if err != nil {
		return nil, err
	}
	return llm.NewClient(ctx, cfg.WithModel(model))
}

// searxURL picks the search endpoint: flag, then config file, then SEARX_URL.
func searxURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if fileConfig.SearxURL != "" {
		return fileConfig.SearxURL
	}
	return os.Getenv("SEARX_URL")
}

// writeFile writes data under dir, creating dir first.
func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
