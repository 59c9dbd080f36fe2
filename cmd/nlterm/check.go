package main

import (
	"fmt"
	"path/filepath"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core/security"
	"github.com/Lin-Jiong-HDU/nlterm/internal/storage"
	"github.com/spf13/cobra"
)

// getCheckCommand returns the check command
func getCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Show whether a path may be modified or deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd := workDir
			if cwd == "" {
				cwd = "."
			}
			cwd, err := filepath.Abs(cwd)
			if err != nil {
				return err
			}

			v := security.NewValidator(&storage.GetConfig().Security)
			path := args[0]
			if !filepath.IsAbs(path) && path != "~" && !hasHomePrefix(path) {
				path = filepath.Join(cwd, path)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:   %s\n", path)
			fmt.Fprintf(out, "Modify: %s\n", verdict(v.CheckPath(path, cwd)))
			fmt.Fprintf(out, "Delete: %s\n", verdict(v.CheckDelete(path)))
			return nil
		},
	}
}

func hasHomePrefix(p string) bool {
	return len(p) > 1 && p[0] == '~' && (p[1] == '/' || p[1] == '\\')
}

func verdict(d security.Decision) string {
	if d.Allowed {
		return "allowed (" + d.Reason + ")"
	}
	return "denied (" + d.Reason + ")"
}
