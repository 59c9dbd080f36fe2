package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lin-Jiong-HDU/nlterm/internal/nlp"
)

// DefaultProcessLimit is how many processes ps shows without arguments.
const DefaultProcessLimit = 20

func (r *Router) report(verb string, fetch func(SystemReporter) (string, error)) (Result, error) {
	if r.system == nil {
		return Result{}, &CommandError{Kind: ErrSubprocessFailure, Verb: verb,
			Msg: "system information is unavailable on this host"}
	}
	out, err := fetch(r.system)
	if err != nil {
		return Result{}, &CommandError{Kind: ErrSubprocessFailure, Verb: verb, Err: err,
			Msg: fmt.Sprintf("could not read %s information: %v", verb, err)}
	}
	return Result{Output: out}, nil
}

func (r *Router) cpu(ctx context.Context, req Request) (Result, error) {
	return r.report("cpu", func(s SystemReporter) (string, error) { return s.CPU(ctx) })
}

func (r *Router) memory(ctx context.Context, req Request) (Result, error) {
	return r.report("memory", func(s SystemReporter) (string, error) { return s.Memory(ctx) })
}

func (r *Router) processes(ctx context.Context, req Request) (Result, error) {
	limit, err := parseProcessArgs(req.Args, r.processLimit)
	if err != nil {
		return Result{}, err
	}
	return r.report("process", func(s SystemReporter) (string, error) { return s.Processes(ctx, limit) })
}

func (r *Router) disk(ctx context.Context, req Request) (Result, error) {
	return r.report("disk", func(s SystemReporter) (string, error) { return s.Disk(ctx) })
}

// parseProcessArgs accepts "-a" for every process or a positive count.
func parseProcessArgs(args []string, def int) (int, error) {
	switch {
	case len(args) == 0:
		return def, nil
	case len(args) > 1:
		return 0, usageError("ps", "ps [-a] [N]")
	case args[0] == "-a" || args[0] == "--all":
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, usageError("ps", "ps [-a] [N]")
	}
	return n, nil
}

func (r *Router) pip(ctx context.Context, req Request) (Result, error) {
	if r.packages == nil {
		return Result{}, &CommandError{Kind: ErrSubprocessFailure, Verb: "pip",
			Msg: "package management is not configured"}
	}
	out, err := r.packages.Run(ctx, req.Args)
	if err != nil {
		return Result{}, err
	}
	return Result{Output: out}, nil
}

func (r *Router) echo(ctx context.Context, req Request) (Result, error) {
	return Result{Output: restOfLine(req.Raw)}, nil
}

func (r *Router) help(ctx context.Context, req Request) (Result, error) {
	return Result{Output: r.HelpText()}, nil
}

// HelpText lists every verb grouped by category, followed by natural
// language examples.
func (r *Router) HelpText() string {
	var b strings.Builder
	b.WriteString("Available commands:\n")

	groups := make(map[Category][]*verb)
	var cats []Category
	for _, v := range r.order {
		if _, ok := groups[v.category]; !ok {
			cats = append(cats, v.category)
		}
		groups[v.category] = append(groups[v.category], v)
	}

	for _, c := range cats {
		fmt.Fprintf(&b, "\n%s:\n", c)
		for _, v := range groups[c] {
			fmt.Fprintf(&b, "  %-28s %s\n", v.usage, v.summary)
		}
	}

	b.WriteString("\nOr just say what you want, for example:\n")
	for _, p := range nlp.SupportedPatterns {
		if len(p.Examples) > 0 {
			fmt.Fprintf(&b, "  %q\n", p.Examples[0])
		}
	}
	b.WriteString("\nJoin commands with && to run them in order.")
	return b.String()
}

func (r *Router) clear(ctx context.Context, req Request) (Result, error) {
	return Result{Clear: true}, nil
}

func (r *Router) exit(ctx context.Context, req Request) (Result, error) {
	return Result{Output: "Goodbye!", Exit: true}, nil
}
