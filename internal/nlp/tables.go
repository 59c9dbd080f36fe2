package nlp

import "strings"

// Keyword vocabularies used by the classification waterfall. Multi-word
// entries are matched as whole phrases.
var (
	createWords    = []string{"create", "make", "new", "add", "build", "generate", "establish", "set up", "initialize", "touch", "write"}
	fileWords      = []string{"file", "document", "text", "script", "program"}
	directoryWords = []string{"directory", "folder", "dir", "subfolder", "subdirectory"}
	deleteWords    = []string{"delete", "remove", "rm", "del", "erase", "get rid of", "purge", "rmdir", "unlink"}
	copyWords      = []string{"copy", "cp", "duplicate", "clone", "replicate"}
	moveWords      = []string{"move", "mv", "rename", "relocate", "transfer", "reposition", "change location"}
	navigateWords  = []string{"go", "go to", "navigate", "change to", "change directory", "cd", "switch", "browse to", "access", "visit", "enter", "open"}
	listWords      = []string{"list", "show", "display", "view", "see", "ls", "dir", "files", "contents", "items", "stuff", "things"}
	cpuWords       = []string{"cpu", "processor", "processors", "performance", "load", "cores"}
	memoryWords    = []string{"memory", "ram", "mem", "swap"}
	processWords   = []string{"process", "processes", "running", "ps", "programs", "applications", "tasks"}
	diskWords      = []string{"disk", "disks", "space", "storage", "capacity", "drive", "drives", "volume", "volumes"}
	pwdWords       = []string{"pwd", "where", "current directory", "working directory", "current folder", "current path", "current location", "location"}
	helpWords      = []string{"help", "commands", "what can", "guide", "assistance"}
	clearWords     = []string{"clear", "cls", "clean screen", "clear screen", "reset"}
	exitWords      = []string{"exit", "quit", "bye", "goodbye", "terminate", "close", "logout"}
)

// Modifier vocabularies.
var (
	hiddenWords   = []string{"hidden", "dot", "dotfiles", "all"}
	detailedWords = []string{"detailed", "detail", "details", "long", "full", "info", "information", "complete", "verbose"}
	homeWords     = []string{"home", "~", "home directory", "user directory"}
	rootWords     = []string{"root", "/", "system", "top level"}
	parentWords   = []string{"up", "back", "..", "parent", "previous"}

	// moveLeadIns turn a leading "move" into navigation ("move up", "move to x").
	moveLeadIns = []string{"to", "into", "up", "back", "out"}
)

// synonymTable maps each canonical keyword to its informal variants. No
// variant contains a canonical keyword, so normalizing twice changes nothing.
var synonymTable = []struct {
	canonical string
	synonyms  []string
}{
	{"delete", []string{"remove", "rm", "del", "trash", "erase", "eliminate", "destroy", "get rid of", "clean up", "purge", "drop", "kill", "wipe", "clear"}},
	{"directory", []string{"folder", "dir", "path", "location", "place"}},
	{"file", []string{"document", "text", "script", "program", "item"}},
	{"create", []string{"make", "new", "add", "build", "generate", "establish", "set up", "initialize"}},
	{"show", []string{"list", "display", "view", "see", "present", "reveal"}},
	{"go", []string{"navigate", "change", "enter", "open", "switch", "browse to", "access", "visit"}},
	{"copy", []string{"duplicate", "clone", "cp", "replicate", "backup", "save as"}},
	{"move", []string{"rename", "mv", "relocate", "transfer", "shift", "change location", "reposition"}},
}

// fuzzyPattern is a registered intent with the keywords scored against an
// unrecognized query.
type fuzzyPattern struct {
	intent   Intent
	keywords []string
}

var fuzzyPatterns = []fuzzyPattern{
	{IntentList, []string{"list", "show", "display", "files", "contents", "what", "see", "view", "ls", "dir", "directory", "folder", "items", "stuff", "things"}},
	{IntentNavigate, []string{"go", "change", "navigate", "enter", "open", "cd", "switch", "browse to", "access", "visit"}},
	{IntentCreateDirectory, []string{"create directory", "make folder", "new folder", "mkdir", "build directory"}},
	{IntentCreateFile, []string{"create file", "make file", "new file", "touch", "write file", "generate document"}},
	{IntentDelete, []string{"delete", "remove", "rm", "del", "trash", "erase", "eliminate", "destroy", "get rid of", "clean up", "purge", "drop"}},
	{IntentCopy, []string{"copy", "duplicate", "clone", "cp", "replicate", "backup", "save as", "make a copy"}},
	{IntentMove, []string{"move", "rename", "mv", "relocate", "transfer", "shift", "change location", "reposition"}},
	{IntentCPU, []string{"cpu", "processor", "performance", "speed", "load", "cores"}},
	{IntentMemory, []string{"memory", "ram", "mem", "available", "free"}},
	{IntentProcesses, []string{"process", "processes", "running", "task", "ps", "programs", "applications"}},
	{IntentDisk, []string{"disk", "space", "storage", "capacity", "drive", "volume"}},
}

// connectors split multi-step requests, highest priority first.
var connectors = []string{
	" and ",
	" then ",
	" after that ",
	" next ",
	" also ",
	" followed by ",
	" subsequently ",
	" after ",
	" before ",
}

var baseStopWords = []string{
	"a", "an", "the", "this", "that", "these", "those", "it", "its", "some", "any", "every",
	"to", "into", "in", "inside", "within", "on", "onto", "at", "by", "for", "from", "of", "off",
	"with", "without", "under", "over", "out", "about", "up", "down", "here", "there",
	"me", "my", "i", "we", "our", "you", "your", "please", "can", "could", "would", "will",
	"is", "are", "be", "do", "does", "what", "s", "named", "called", "name", "as",
	"and", "or", "but", "then", "next", "also", "after", "before", "followed", "subsequently",
	"current", "working", "empty", "everything", "anything", "something", "first", "finally", "now",
}

// stopWords holds every word that can never be an entity: the base list plus
// each word of every keyword vocabulary.
var stopWords = buildStopWords()

func buildStopWords() map[string]struct{} {
	set := make(map[string]struct{})
	add := func(words ...string) {
		for _, w := range words {
			for _, part := range strings.Fields(w) {
				set[part] = struct{}{}
			}
		}
	}

	add(baseStopWords...)
	for _, vocab := range [][]string{
		createWords, fileWords, directoryWords, deleteWords, copyWords, moveWords,
		navigateWords, listWords, cpuWords, memoryWords, processWords, diskWords,
		pwdWords, helpWords, clearWords, exitWords, hiddenWords, detailedWords,
		homeWords, rootWords, parentWords,
		{"folders", "directories"},
	} {
		add(vocab...)
	}
	return set
}

func isStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}
