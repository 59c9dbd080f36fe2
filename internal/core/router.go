package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"

	"github.com/Lin-Jiong-HDU/nlterm/internal/core/security"
)

// Result is what a handler hands back to the router. The zero value means
// "no output, nothing changed, keep going".
type Result struct {
	Output string
	// NewDir is the new working directory, or empty when unchanged.
	NewDir string
	// Clear asks the front-end to clear its display.
	Clear bool
	// Exit ends the session.
	Exit bool
}

// Category groups verbs by the kind of effect they have.
type Category int

const (
	CategoryReadOnly Category = iota
	CategoryNavigation
	CategoryMutating
	CategorySystemInfo
	CategoryPackages
	CategorySession
)

func (c Category) String() string {
	switch c {
	case CategoryReadOnly:
		return "Files"
	case CategoryNavigation:
		return "Navigation"
	case CategoryMutating:
		return "File operations"
	case CategorySystemInfo:
		return "System"
	case CategoryPackages:
		return "Packages"
	case CategorySession:
		return "Session"
	}
	return "Other"
}

// Request is a parsed command together with the session state it runs in.
type Request struct {
	Command
	Cwd string
	Raw string
}

// HandlerFunc executes one verb.
type HandlerFunc func(ctx context.Context, req Request) (Result, error)

type verb struct {
	name     string
	category Category
	usage    string
	summary  string
	handler  HandlerFunc
}

// SystemReporter produces the formatted system-information reports.
type SystemReporter interface {
	CPU(ctx context.Context) (string, error)
	Memory(ctx context.Context) (string, error)
	// Processes reports the top limit processes by CPU; limit 0 means all.
	Processes(ctx context.Context, limit int) (string, error)
	Disk(ctx context.Context) (string, error)
}

// RouterOptions configures a Router.
type RouterOptions struct {
	Validator *security.Validator
	System    SystemReporter
	Packages  *PackageManager
	Logger    zerolog.Logger

	// ProcessLimit is the default row count for ps; zero uses DefaultProcessLimit.
	ProcessLimit int
}

// Router dispatches canonical commands to their handlers.
type Router struct {
	verbs     map[string]*verb
	order     []*verb
	names     []string
	validator *security.Validator
	system    SystemReporter
	packages  *PackageManager
	log       zerolog.Logger

	processLimit int
}

// NewRouter creates a router with the full verb table.
func NewRouter(opts RouterOptions) *Router {
	r := &Router{
		verbs:     make(map[string]*verb),
		validator: opts.Validator,
		system:    opts.System,
		packages:  opts.Packages,
		log:       opts.Logger.With().Str("component", "router").Logger(),
	}
	if r.validator == nil {
		r.validator = security.NewValidator(nil)
	}
	r.processLimit = opts.ProcessLimit
	if r.processLimit <= 0 {
		r.processLimit = DefaultProcessLimit
	}

	r.register(CategoryReadOnly, r.list, "List directory contents", "ls [-l] [-a] [dir]", "ls", "dir")
	r.register(CategoryNavigation, r.changeDir, "Change directory", "cd [dir|~|/|..]", "cd")
	r.register(CategoryNavigation, r.root, "Go to the filesystem root", "root", "root")
	r.register(CategoryNavigation, r.pwd, "Print the working directory", "pwd", "pwd")
	r.register(CategoryMutating, r.makeDir, "Create directories", "mkdir <dir>...", "mkdir")
	r.register(CategoryMutating, r.removeDir, "Remove empty directories", "rmdir <dir>...", "rmdir")
	r.register(CategoryMutating, r.remove, "Remove files (-r for directories)", "rm [-r] <path>...", "rm")
	r.register(CategoryMutating, r.deleteFile, "Delete files", "del <file>...", "del")
	r.register(CategoryMutating, r.touch, "Create or update files", "touch <file>...", "touch")
	r.register(CategoryMutating, r.copy, "Copy files or directories", "copy <src> <dst>", "copy", "cp")
	r.register(CategoryMutating, r.move, "Move or rename", "move <src> <dst>", "move", "mv")
	r.register(CategorySystemInfo, r.cpu, "CPU usage", "cpu", "cpu")
	r.register(CategorySystemInfo, r.memory, "Memory usage", "mem", "mem")
	r.register(CategorySystemInfo, r.processes, "Top processes", "ps [-a] [N]", "ps")
	r.register(CategorySystemInfo, r.disk, "Disk usage", "disk", "disk")
	r.register(CategoryPackages, r.pip, "Manage Python packages", pipUsage, "pip")
	r.register(CategorySession, r.echo, "Print text", "echo <text>", "echo")
	r.register(CategorySession, r.help, "Show this help", "help", "help")
	r.register(CategorySession, r.clear, "Clear the screen", "clear", "clear")
	r.register(CategorySession, r.exit, "End the session", "exit", "exit", "quit")

	sort.Strings(r.names)
	return r
}

func (r *Router) register(cat Category, h HandlerFunc, summary, usage string, names ...string) {
	v := &verb{name: names[0], category: cat, usage: usage, summary: summary, handler: h}
	r.order = append(r.order, v)
	for _, n := range names {
		r.verbs[n] = v
		r.names = append(r.names, n)
	}
}

// Knows reports whether name is a registered verb.
func (r *Router) Knows(name string) bool {
	_, ok := r.verbs[strings.ToLower(name)]
	return ok
}

// IsLiteral reports whether line starts with a registered verb.
func (r *Router) IsLiteral(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && r.Knows(fields[0])
}

// Verbs returns every registered verb name, sorted.
func (r *Router) Verbs() []string {
	return append([]string(nil), r.names...)
}

// Dispatch runs one canonical command in cwd. Handler errors and panics are
// rendered as output; they never escape.
func (r *Router) Dispatch(ctx context.Context, line, cwd string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Interface("panic", p).Str("line", line).Msg("handler panicked")
			res = Result{Output: fmt.Sprintf("Error: internal failure while running '%s': %v", line, p)}
		}
	}()

	cmd, err := ParseCommand(line)
	if err != nil {
		r.log.Debug().Err(err).Str("line", line).Msg("unparsable command")
		return Result{Output: renderError(err)}
	}
	if cmd.Cmd == "" {
		return Result{}
	}

	v, ok := r.verbs[cmd.Cmd]
	if !ok {
		r.log.Debug().Str("verb", cmd.Cmd).Msg("unknown verb")
		return Result{Output: r.notFound(cmd.Cmd)}
	}

	r.log.Debug().Str("verb", cmd.Cmd).Strs("args", cmd.Args).Str("cwd", cwd).Msg("dispatch")

	res, err = v.handler(ctx, Request{Command: cmd, Cwd: cwd, Raw: line})
	if err != nil {
		ev := r.log.Info()
		if errors.Is(err, ErrAccessDenied) {
			ev = r.log.Warn()
		}
		ev.Err(err).Str("verb", cmd.Cmd).Msg("command failed")
		return Result{Output: renderError(err)}
	}
	return res
}

func (r *Router) notFound(name string) string {
	msg := fmt.Sprintf("Command not found: %s\nType 'help' for available commands", name)
	if s := r.suggest(name); len(s) > 0 {
		msg += "\nDid you mean: " + strings.Join(s, ", ") + "?"
	}
	return msg
}

// suggest returns up to three verbs resembling name.
func (r *Router) suggest(name string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] && len(out) < 3 {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, m := range fuzzy.Find(name, r.names) {
		add(m.Str)
	}
	for _, n := range r.names {
		if len(fuzzy.Find(n, []string{name})) > 0 {
			add(n)
		}
	}
	return out
}
