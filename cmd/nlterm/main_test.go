package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"shell", "interpret", "check", "patterns"} {
		found, _, err := cmd.Find([]string{name})
		if err != nil || found.Name() != name {
			t.Errorf("Expected subcommand '%s' to exist", name)
		}
	}
}

func TestRootCommand_HasFlags(t *testing.T) {
	cmd := newRootCommand()

	if f := cmd.PersistentFlags().Lookup("verbose"); f == nil || f.Shorthand != "v" {
		t.Error("Expected persistent flag 'verbose' with shorthand 'v'")
	}
	if cmd.PersistentFlags().Lookup("cwd") == nil {
		t.Error("Expected persistent flag 'cwd' to exist")
	}
}

func TestRootCommand_RunsOneLine(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, "--cwd", dir, "create", "a", "file", "named", "report.txt")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "Created: file 'report.txt'") {
		t.Errorf("unexpected output: %q", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "report.txt")); err != nil {
		t.Errorf("Expected report.txt to be created: %v", err)
	}
}

func TestRootCommand_LiteralFlagsPassThrough(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "old"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "old", "x.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := runRoot(t, "--cwd", dir, "rm", "-r", "old")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "old")); !os.IsNotExist(err) {
		t.Error("Expected old to be removed")
	}
}

func TestShellCommand_HasFlags(t *testing.T) {
	cmd := getShellCommand()
	if cmd.Use != "shell" {
		t.Errorf("Expected command name 'shell', got '%s'", cmd.Use)
	}
	if cmd.Flags().Lookup("plain") == nil {
		t.Error("Expected flag 'plain' to exist")
	}
}

func TestShellCommand_Plain(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("mkdir logs\nexit\n"))
	cmd.SetArgs([]string{"--cwd", dir, "shell", "--plain"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("Expected goodbye, got %q", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Errorf("Expected logs directory: %v", err)
	}
}

func TestInterpretCommand_Formats(t *testing.T) {
	out, err := runRoot(t, "interpret", "show", "files")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "Commands: ls") {
		t.Errorf("unexpected text output: %q", out)
	}

	out, err = runRoot(t, "interpret", "-o", "json", "show", "files")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	var decoded struct {
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if len(decoded.Commands) != 1 || decoded.Commands[0] != "ls" {
		t.Errorf("unexpected commands: %v", decoded.Commands)
	}

	out, err = runRoot(t, "interpret", "-o", "yaml", "show", "files")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "commands:") {
		t.Errorf("unexpected yaml output: %q", out)
	}

	if _, err := runRoot(t, "interpret", "-o", "xml", "show", "files"); err == nil {
		t.Error("Expected error for unknown output format")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := runRoot(t, "--cwd", dir, "check", "notes.txt")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "Modify: allowed") {
		t.Errorf("unexpected output: %q", out)
	}
	if !strings.Contains(out, filepath.Join(dir, "notes.txt")) {
		t.Errorf("Expected resolved path in output: %q", out)
	}
}

func TestPatternsCommand_NoRender(t *testing.T) {
	out, err := runRoot(t, "patterns", "--no-render")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "#") {
		t.Errorf("Expected raw markdown, got %q", out)
	}
}
