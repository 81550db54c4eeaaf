package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/parsing"
)

// errNoObject is returned when a response holds no JSON object.
var errNoObject = errors.New("no JSON object found in the response")

var parseResponseCmd = &cobra.Command{
	Use:   "parse-response",
	Short: "Recover a JSON object from a model response",
	Long: `Read a raw model response (possibly wrapped in code fences or prose) and print the JSON object it contains.
Use "-" as the input to read from stdin.`,
	RunE: runParseResponse,
}

var (
	parseIn  string
	parseOut string
)

func init() {
	parseResponseCmd.Flags().StringVarP(&parseIn, "in", "i", "", "Response file, or - for stdin (required)")
	parseResponseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Output JSON file (defaults to stdout)")

	_ = parseResponseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResponseCmd)
}

func runParseResponse(cmd *cobra.Command, _ []string) error {
	var (
		data []byte
		err  error
	)
	if parseIn == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(parseIn)
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	rec := parsing.Parse(string(data))
	if len(rec) == 0 {
		return errNoObject
	}

	out := rec.JSON() + "\n"
	if parseOut == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(parseOut, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
