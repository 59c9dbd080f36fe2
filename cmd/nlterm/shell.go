package main

import (
	"fmt"
	"os"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core/tui"
	"github.com/Lin-Jiong-HDU/nlterm/internal/storage"
	"github.com/Lin-Jiong-HDU/nlterm/internal/terminal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var shellPlain bool

// getShellCommand returns the shell command
func getShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session.

Type commands or plain English; join steps with && or words like "then".
The full-screen shell is used unless --plain is given or shell.ui is "plain".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd, shellPlain)
		},
	}

	cmd.Flags().BoolVar(&shellPlain, "plain", false, "Use a line-based prompt instead of the full-screen shell")

	return cmd
}

func runShell(cmd *cobra.Command, plain bool) error {
	cfg := storage.GetConfig()
	a, err := newApp(cfg, workDir, verbose)
	if err != nil {
		return err
	}
	defer a.Close()

	historyPath, err := cfg.HistoryPath()
	if err != nil {
		return err
	}
	history, err := storage.LoadHistory(historyPath, cfg.Shell.HistorySize)
	if err != nil {
		a.log.Warn().Err(err).Msg("ignoring unreadable history")
		history = storage.NewHistory(historyPath, cfg.Shell.HistorySize)
	}

	if plain || cfg.Shell.UI == storage.UIPlain {
		repl := terminal.NewREPL(a.engine, a.state, history, cmd.InOrStdin(), cmd.OutOrStdout())
		return repl.Run(cmd.Context())
	}

	model := tui.NewModel(cmd.Context(), a.engine, a.state, history)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running shell: %w", err)
	}

	return history.Save()
}
