package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/llm"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the supported LLM providers and their models",
	Args:  cobra.NoArgs,
	RunE:  runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, p := range llm.ProviderOrder() {
		info := llm.Providers[p]
		_, _ = fmt.Fprintf(out, "%-10s %s\n", p, info.Label)
		_, _ = fmt.Fprintf(out, "           default: %s\n", info.Default)
		if len(info.Models) > 0 {
			_, _ = fmt.Fprintf(out, "           models:  %s\n", strings.Join(info.Models, ", "))
		}
	}
	return nil
}
