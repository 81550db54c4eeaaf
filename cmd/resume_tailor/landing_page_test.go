package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
)

func TestLandingPageCommand(t *testing.T) {
	client := &llmtest.Fake{Default: "```html\n<!DOCTYPE html><html><body>Acme Widget</body></html>\n```"}
	useFakes(t, client)
	outDir := t.TempDir()

	out, err := executeCommand(t, "landing-page",
		"--name", "Acme Widget",
		"--description", "A widget for teams that ship",
		"--accent", "Green/Teal",
		"--out", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Generating landing page for Acme Widget...")

	html := readFile(t, filepath.Join(outDir, "acme_widget_landing_page.html"))
	assert.Equal(t, "<!DOCTYPE html><html><body>Acme Widget</body></html>", html)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Prompt, "#00b894")
	assert.Contains(t, calls[0].Prompt, "PRODUCT NAME: Acme Widget")
	assert.Contains(t, calls[0].Prompt, "TONE: Professional & Modern")
}

func TestLandingPageCommand_RequiresDescription(t *testing.T) {
	client := &llmtest.Fake{}
	useFakes(t, client)

	_, err := executeCommand(t, "landing-page", "--name", "Acme Widget", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enter a product name and description")
	assert.Empty(t, client.Calls())
}
