package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/search"
)

// executeCommand runs the root command in-process with args and returns
// everything written to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type fakeExporter struct {
	calls int
}

func (e *fakeExporter) PDF(context.Context, string) []byte {
	e.calls++
	return []byte("%PDF-1.4 fake")
}

// useFakes replaces the model client, search and PDF exporter for one test.
func useFakes(t *testing.T, client *llmtest.Fake) *fakeExporter {
	t.Helper()
	exporter := &fakeExporter{}

	oldClient, oldSearch, oldExporter := newClient, newSearch, newExporter
	newClient = func(context.Context, string, string) (llm.Client, error) { return client, nil }
	newSearch = func(string) search.Provider { return nil }
	newExporter = func() pipeline.PDFExporter { return exporter }
	t.Cleanup(func() {
		newClient, newSearch, newExporter = oldClient, oldSearch, oldExporter
	})
	return exporter
}

// writeTemp writes content to name inside a fresh temp dir and returns its path.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func longText(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}
