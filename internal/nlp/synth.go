package nlp

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	DefaultFileName      = "new_file.txt"
	DefaultDirectoryName = "new_folder"
)

// Non-mutating guidance emitted when a request lacks required arguments.
const (
	deleteGuidance = "echo Please specify what to delete"
	copyGuidance   = "echo Please specify source and destination for copy operation"
	moveGuidance   = "echo Please specify source and destination for move operation"
	emptyGuidance  = "echo Please enter a command. Type 'help' for examples"
)

var destinationMarker = regexp.MustCompile(`(?i)\s(?:to|into|as)\s`)

func unrecognized(text string) string {
	return fmt.Sprintf(`echo I didn't understand: "%s". Try commands like: show files, create a file named notes.txt, go to documents, copy a.txt to b.txt`, text)
}

func unparsedSteps(text string) string {
	return "echo Could not parse multi-step command: " + text
}

// BuildStructure fills a CommandStructure for intent from the words of text.
func BuildStructure(intent Intent, text string) CommandStructure {
	q := newQuery(text)
	cs := CommandStructure{Action: intent}

	switch intent {
	case IntentCreateFile, IntentCreateDirectory:
		cs.Target, _ = Extract(text)

	case IntentDelete:
		cs.Target, _ = Extract(text)
		cs.Directory = cs.Target != "" && filepath.Ext(cs.Target) == "" && q.has(directoryWords)

	case IntentCopy, IntentMove:
		cs.Source, cs.Destination = sourceAndDestination(text)

	case IntentNavigate:
		cs.Target = navigationTarget(q, text)

	case IntentList:
		hidden, detailed := q.has(hiddenWords), q.has(detailedWords)
		switch {
		case hidden && detailed:
			cs.Flags = []string{"-la"}
		case detailed:
			cs.Flags = []string{"-l"}
		case hidden:
			cs.Flags = []string{"-a"}
		}

	case IntentProcesses:
		if q.has([]string{"all"}) {
			cs.Arguments = append(cs.Arguments, "-a")
		}
		if e := ExtractEntities(text); len(e.Numbers) > 0 {
			cs.Arguments = append(cs.Arguments, e.Numbers[0])
		}
	}

	return cs
}

// Synthesize renders a CommandStructure as a canonical command. Unknown
// intents render as an empty string.
func Synthesize(cs CommandStructure) string {
	switch cs.Action {
	case IntentCreateFile:
		return command("touch", orDefault(cs.Target, DefaultFileName))

	case IntentCreateDirectory:
		return command("mkdir", orDefault(cs.Target, DefaultDirectoryName))

	case IntentDelete:
		if cs.Target == "" {
			return deleteGuidance
		}
		if cs.Directory {
			return command("rmdir", cs.Target)
		}
		return command("rm", cs.Target)

	case IntentCopy:
		if cs.Source == "" || cs.Destination == "" {
			return copyGuidance
		}
		return command("copy", cs.Source, cs.Destination)

	case IntentMove:
		if cs.Source == "" || cs.Destination == "" {
			return moveGuidance
		}
		return command("move", cs.Source, cs.Destination)

	case IntentNavigate:
		if cs.Target == "" {
			return "cd"
		}
		return command("cd", cs.Target)

	case IntentList:
		return command("ls", cs.Flags...)

	case IntentCPU:
		return "cpu"
	case IntentMemory:
		return "mem"
	case IntentProcesses:
		return command("ps", cs.Arguments...)
	case IntentDisk:
		return "disk"
	case IntentPwd:
		return "pwd"
	case IntentHelp:
		return "help"
	case IntentClear:
		return "clear"
	case IntentExit:
		return "exit"
	}
	return ""
}

// sourceAndDestination splits text at its last "to", "into" or "as" and
// extracts one entity from each side. Without a marker the first two file or
// path entities are used.
func sourceAndDestination(text string) (string, string) {
	locs := destinationMarker.FindAllStringIndex(text, -1)
	if len(locs) > 0 {
		last := locs[len(locs)-1]
		src, _ := Extract(text[:last[0]])
		dst, _ := Extract(text[last[1]:])
		return src, dst
	}

	e := ExtractEntities(text)
	candidates := append(append([]string{}, e.Files...), e.Paths...)
	if len(candidates) >= 2 {
		return candidates[0], candidates[1]
	}
	if len(candidates) == 1 {
		return candidates[0], ""
	}
	return "", ""
}

func navigationTarget(q query, text string) string {
	switch {
	case q.has(homeWords):
		return "~"
	case q.has(rootWords):
		return "/"
	case q.has(parentWords):
		return ".."
	}
	target, _ := Extract(text)
	return target
}

func command(verb string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, verb)
	for _, a := range args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(arg string) string {
	if !strings.ContainsAny(arg, " \t") {
		return arg
	}
	if strings.Contains(arg, `"`) {
		return "'" + arg + "'"
	}
	return `"` + arg + `"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
