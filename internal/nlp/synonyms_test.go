package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Remove the Folder", "delete the directory"},
		{"get rid of that document", "delete that file"},
		{"make a duplicate", "create a copy"},
		{"change location of x", "move of x"},
		{"browse to docs", "go docs"},
		{"directory", "directory"},
		{"removed folders", "removed folders"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"make a copy of the document",
		"get rid of the old folder and clean up",
		"shift notes to the place",
		"display everything, then navigate home",
		"set up a new script",
		"save as backup.txt",
	}
	for _, syn := range synonymTable {
		inputs = append(inputs, syn.synonyms...)
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
