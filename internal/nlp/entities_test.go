package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"double quoted wins", `create "my file.txt" named other.txt`, "my file.txt", true},
		{"single quoted", `delete 'old notes'`, "old notes", true},
		{"apostrophe is not a quote", "what's in docs", "docs", true},
		{"named", "create a file named report.txt", "report.txt", true},
		{"called before the", "remove the folder called cache", "cache", true},
		{"with name", "make a folder with name build", "build", true},
		{"the skips stop words", "delete the file notes", "notes", true},
		{"extension token", "delete draft.md please", "draft.md", true},
		{"hidden file", "remove .bashrc", ".bashrc", true},
		{"trailing period", "delete notes.txt.", "notes.txt", true},
		{"apostrophe inside file name", "delete don't.txt", "don't.txt", true},
		{"apostrophe after named", "create a file named bob's.md", "bob's.md", true},
		{"path token", "go into src/internal", "src/internal", true},
		{"bare token", "go to projects", "projects", true},
		{"nothing", "show me all the files", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractEntities(t *testing.T) {
	got := ExtractEntities(`copy report.txt to ~/archive and show top 10 -la "final draft"`)

	assert.Equal(t, []string{"report.txt"}, got.Files)
	assert.Equal(t, []string{"final draft", "~/archive"}, got.Paths)
	assert.Equal(t, []string{"10"}, got.Numbers)
	assert.Equal(t, []string{"-la"}, got.Flags)
}

func TestExtractEntities_Directories(t *testing.T) {
	got := ExtractEntities("go to projects")
	assert.Equal(t, []string{"projects"}, got.Directories)
	assert.Empty(t, got.Files)
}
