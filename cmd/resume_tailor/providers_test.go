package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvidersCommand(t *testing.T) {
	out, err := executeCommand(t, "providers")
	require.NoError(t, err)

	for _, want := range []string{"Claude (Anthropic)", "GPT (OpenAI)", "Gemini (Google)", "LiteLLM / Proxy", "gpt-4o-mini"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "anthropic"), strings.Index(out, "openai"))
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	cfg := writeTemp(t, "config.json", `{"provider": "mistral"}`)

	_, err := executeCommand(t, "providers", "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'provider' failed 'oneof'")
}

func TestNewEnvClient_ProviderOverride(t *testing.T) {
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := newEnvClient(context.Background(), "google", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}
