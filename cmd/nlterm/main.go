package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Lin-Jiong-HDU/nlterm/internal/storage"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	workDir string
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nlterm [words...]",
		Short: "Natural-language terminal",
		Long: `nlterm - a terminal that understands plain English.

Run a single command line, literal or natural language:
  nlterm create a folder called backup and move notes.txt to backup

With no arguments an interactive shell starts.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := storage.InitConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runShell(cmd, false)
			}
			return runOnce(cmd, strings.Join(args, " "))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")
	rootCmd.PersistentFlags().StringVar(&workDir, "cwd", "", "Working directory to start in")
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.AddCommand(
		getShellCommand(),
		getInterpretCommand(),
		getCheckCommand(),
		getPatternsCommand(),
	)

	return rootCmd
}

func runOnce(cmd *cobra.Command, line string) error {
	a, err := newApp(storage.GetConfig(), workDir, verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	out, _ := a.engine.Execute(cmd.Context(), line, a.state)
	if out.Output != "" {
		fmt.Fprintln(cmd.OutOrStdout(), out.Output)
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
