package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Lin-Jiong-HDU/nlterm/internal/nlp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var interpretOutput string

// getInterpretCommand returns the interpret command
func getInterpretCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret <words...>",
		Short: "Show how a request is interpreted without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := nlp.Interpret(strings.Join(args, " "))
			return writeInterpretation(cmd.OutOrStdout(), result, interpretOutput)
		},
	}

	cmd.Flags().StringVarP(&interpretOutput, "output", "o", "text", "Output format: text, yaml or json")

	return cmd
}

func writeInterpretation(w io.Writer, result nlp.Interpretation, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal interpretation: %w", err)
		}
		_, err = w.Write(data)
		return err

	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal interpretation: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case "text":
		fmt.Fprintf(w, "Query: %s\n", result.Query)
		if result.Connector != "" {
			fmt.Fprintf(w, "Connector: %q\n", result.Connector)
		}
		for i, step := range result.Steps {
			kind := string(step.Intent)
			if step.Fuzzy {
				kind += fmt.Sprintf(" (fuzzy %.2f)", step.Score)
			}
			fmt.Fprintf(w, "%d. %s\n   intent:  %s\n   command: %s\n", i+1, step.Text, kind, step.Command)
		}
		_, err := fmt.Fprintf(w, "Commands: %s\n", result.String())
		return err
	}

	return fmt.Errorf("unknown output format %q: expected text, yaml or json", format)
}
