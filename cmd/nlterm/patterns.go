package main

import (
	"fmt"

	"github.com/Lin-Jiong-HDU/nlterm/internal/terminal"
	"github.com/spf13/cobra"
)

var patternsNoRender bool

// getPatternsCommand returns the patterns command
func getPatternsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the natural-language patterns nlterm understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := terminal.NewRenderer(80, patternsNoRender)
			if err != nil {
				return fmt.Errorf("failed to create renderer: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderer.Patterns())
			return nil
		},
	}

	cmd.Flags().BoolVar(&patternsNoRender, "no-render", false, "Print raw markdown")

	return cmd
}
