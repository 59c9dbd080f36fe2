package core

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// CommandRunner runs a subprocess. *Executor satisfies it.
type CommandRunner interface {
	Execute(ctx context.Context, cmd Command) (*ExecResult, error)
}

// DefaultPipCommand is the program and leading arguments used to invoke pip.
var DefaultPipCommand = []string{"python3", "-m", "pip"}

const pipUsage = "pip <install|uninstall|list|check> [package]"

// PackageManager drives the host's pip installation.
type PackageManager struct {
	runner  CommandRunner
	command []string
	log     zerolog.Logger
}

// NewPackageManager creates a package manager. An empty command uses DefaultPipCommand.
func NewPackageManager(runner CommandRunner, command []string, log zerolog.Logger) *PackageManager {
	if len(command) == 0 {
		command = DefaultPipCommand
	}
	return &PackageManager{
		runner:  runner,
		command: append([]string(nil), command...),
		log:     log,
	}
}

// Run executes a pip subcommand and returns its output. Failures are
// returned as explanatory CommandErrors.
func (pm *PackageManager) Run(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", usageError("pip", pipUsage)
	}

	sub := strings.ToLower(args[0])
	var pkg string
	var extra []string

	switch sub {
	case "install":
		if len(args) < 2 {
			return "", usageError("pip", "pip install <package>")
		}
		pkg = args[1]
		extra = []string{pkg}
	case "uninstall":
		if len(args) < 2 {
			return "", usageError("pip", "pip uninstall <package>")
		}
		pkg = args[1]
		extra = []string{"-y", pkg}
	case "list", "check":
	default:
		return "", usageError("pip", pipUsage)
	}

	argv := append(append(append([]string(nil), pm.command...), sub), extra...)
	pm.log.Info().Strs("argv", argv).Msg("running package manager")

	res, err := pm.runner.Execute(ctx, Command{Cmd: argv[0], Args: argv[1:]})
	if err != nil {
		return "", fmt.Errorf("running pip: %w", err)
	}

	if res.Error != nil {
		pm.log.Warn().Err(res.Error).Int("exit_code", res.ExitCode).Msg("package manager failed")
		return "", &CommandError{
			Kind: ErrSubprocessFailure,
			Verb: "pip",
			Err:  res.Error,
			Msg:  pm.explain(sub, pkg, res),
		}
	}

	if sub == "uninstall" && strings.Contains(strings.ToLower(res.Output), "not installed") {
		return fmt.Sprintf("Package '%s' is not installed", pkg), nil
	}
	if res.Output == "" {
		return fmt.Sprintf("pip %s completed", sub), nil
	}
	return res.Output, nil
}

// explain turns a failed pip run into a sentence a user can act on.
func (pm *PackageManager) explain(sub, pkg string, res *ExecResult) string {
	out := strings.ToLower(res.Output)

	switch {
	case errors.Is(res.Error, exec.ErrNotFound):
		return fmt.Sprintf("pip is not available on this host (tried '%s')", strings.Join(pm.command, " "))
	case res.TimedOut:
		return fmt.Sprintf("pip %s timed out", sub)
	case strings.Contains(out, "externally-managed-environment") || strings.Contains(out, "externally managed"):
		return "The host environment does not allow installing packages system-wide. Use a virtual environment instead."
	case strings.Contains(out, "permission denied") || strings.Contains(out, "errno 13"):
		return fmt.Sprintf("Permission denied while running pip %s. Try a virtual environment or a user install.", sub)
	case strings.Contains(out, "no matching distribution") || strings.Contains(out, "could not find a version"):
		return fmt.Sprintf("Package '%s' was not found on the package index", pkg)
	case strings.Contains(out, "no module named pip"):
		return "pip is not installed for this Python interpreter"
	}

	msg := fmt.Sprintf("pip %s failed with exit code %d", sub, res.ExitCode)
	if last := lastLine(res.Output); last != "" {
		msg += ": " + last
	}
	return msg
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
