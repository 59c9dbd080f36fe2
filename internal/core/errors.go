package core

import (
	"errors"
	"fmt"
	"os"
)

// Error kinds reported by command handlers.
var (
	ErrUnknownCommand    = errors.New("unknown command")
	ErrAccessDenied      = errors.New("access denied")
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrAlreadyExists     = errors.New("already exists")
	ErrAmbiguousInput    = errors.New("ambiguous input")
	ErrSubprocessFailure = errors.New("subprocess failure")
	ErrUsage             = errors.New("usage")
)

// CommandError is a handler failure with a user-facing message.
type CommandError struct {
	Kind error
	Verb string
	Path string
	Msg  string
	Err  error
}

func (e *CommandError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *CommandError) Unwrap() error { return e.Err }

// Is matches the error kind so callers can use errors.Is(err, ErrNotFound).
func (e *CommandError) Is(target error) bool { return e.Kind == target }

func accessDenied(verb, path, reason string) error {
	return &CommandError{
		Kind: ErrAccessDenied,
		Verb: verb,
		Path: path,
		Msg:  fmt.Sprintf("Access denied - %s", reason),
	}
}

func usageError(verb, usage string) error {
	return &CommandError{Kind: ErrUsage, Verb: verb, Msg: "Usage: " + usage}
}

func conflict(verb, path, msg string) error {
	return &CommandError{Kind: ErrAlreadyExists, Verb: verb, Path: path, Msg: msg}
}

// fsError converts an os error into a CommandError naming the path the user typed.
func fsError(verb, name string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return &CommandError{Kind: ErrNotFound, Verb: verb, Path: name, Err: err,
			Msg: fmt.Sprintf("'%s' not found", name)}
	case errors.Is(err, os.ErrPermission):
		return &CommandError{Kind: ErrPermissionDenied, Verb: verb, Path: name, Err: err,
			Msg: fmt.Sprintf("Permission denied: '%s'", name)}
	case errors.Is(err, os.ErrExist):
		return &CommandError{Kind: ErrAlreadyExists, Verb: verb, Path: name, Err: err,
			Msg: fmt.Sprintf("'%s' already exists", name)}
	}
	return &CommandError{Kind: err, Verb: verb, Path: name, Err: err,
		Msg: fmt.Sprintf("%s '%s': %v", verb, name, err)}
}

// renderError formats a handler error for display.
func renderError(err error) string {
	if errors.Is(err, ErrUnknownCommand) {
		return err.Error()
	}
	return "Error: " + err.Error()
}
