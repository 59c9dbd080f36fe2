package nlp

import "strings"

// Intent is the action a natural-language request resolves to.
type Intent string

const (
	IntentUnknown         Intent = "unknown"
	IntentCreateFile      Intent = "create_file"
	IntentCreateDirectory Intent = "create_directory"
	IntentDelete          Intent = "delete"
	IntentCopy            Intent = "copy"
	IntentMove            Intent = "move"
	IntentNavigate        Intent = "navigate"
	IntentList            Intent = "list"
	IntentCPU             Intent = "cpu"
	IntentMemory          Intent = "memory"
	IntentProcesses       Intent = "processes"
	IntentDisk            Intent = "disk"
	IntentPwd             Intent = "pwd"
	IntentHelp            Intent = "help"
	IntentClear           Intent = "clear"
	IntentExit            Intent = "exit"
)

// SequenceOperator chains canonical commands.
const SequenceOperator = "&&"

// ExtractedEntities is the inventory of candidate arguments found in a query.
type ExtractedEntities struct {
	Files       []string `json:"files,omitempty" yaml:"files,omitempty"`
	Directories []string `json:"directories,omitempty" yaml:"directories,omitempty"`
	Paths       []string `json:"paths,omitempty" yaml:"paths,omitempty"`
	Numbers     []string `json:"numbers,omitempty" yaml:"numbers,omitempty"`
	Flags       []string `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// CommandStructure is the parsed shape of one request before synthesis.
type CommandStructure struct {
	Action      Intent   `json:"action" yaml:"action"`
	Target      string   `json:"target,omitempty" yaml:"target,omitempty"`
	Source      string   `json:"source,omitempty" yaml:"source,omitempty"`
	Destination string   `json:"destination,omitempty" yaml:"destination,omitempty"`
	Directory   bool     `json:"directory,omitempty" yaml:"directory,omitempty"`
	Flags       []string `json:"flags,omitempty" yaml:"flags,omitempty"`
	Arguments   []string `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// Step is one classified fragment of a request.
type Step struct {
	Text      string           `json:"text" yaml:"text"`
	Intent    Intent           `json:"intent" yaml:"intent"`
	Fuzzy     bool             `json:"fuzzy,omitempty" yaml:"fuzzy,omitempty"`
	Score     float64          `json:"score,omitempty" yaml:"score,omitempty"`
	Structure CommandStructure `json:"structure" yaml:"structure"`
	Command   string           `json:"command" yaml:"command"`
}

// Interpretation is the full trace of translating a query.
type Interpretation struct {
	Query     string            `json:"query" yaml:"query"`
	Connector string            `json:"connector,omitempty" yaml:"connector,omitempty"`
	Steps     []Step            `json:"steps" yaml:"steps"`
	Entities  ExtractedEntities `json:"entities" yaml:"entities"`
	Commands  []string          `json:"commands" yaml:"commands"`
}

// MultiStep reports whether the query was split on a connector.
func (i Interpretation) MultiStep() bool {
	return i.Connector != ""
}

// String joins the canonical commands with the sequencing operator.
func (i Interpretation) String() string {
	return strings.Join(i.Commands, " "+SequenceOperator+" ")
}
