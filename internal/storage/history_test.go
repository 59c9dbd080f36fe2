package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestHistory_AddSkipsBlankAndRepeats(t *testing.T) {
	h := NewHistory("", 10)

	h.Add("ls")
	h.Add("ls")
	h.Add("   ")
	h.Add("cd docs")
	h.Add("ls")

	want := []string{"ls", "cd docs", "ls"}
	if got := h.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestHistory_Bounded(t *testing.T) {
	h := NewHistory("", 2)

	h.Add("a")
	h.Add("b")
	h.Add("c")

	if got := h.Entries(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Expected [b c], got %v", got)
	}
}

func TestHistory_Navigation(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("first")
	h.Add("second")

	if line, ok := h.Previous(); !ok || line != "second" {
		t.Errorf("Expected 'second', got %q (%v)", line, ok)
	}
	if line, ok := h.Previous(); !ok || line != "first" {
		t.Errorf("Expected 'first', got %q (%v)", line, ok)
	}
	if _, ok := h.Previous(); ok {
		t.Error("Expected no entry before the oldest")
	}
	if line, ok := h.Next(); !ok || line != "second" {
		t.Errorf("Expected 'second', got %q (%v)", line, ok)
	}
	if line, ok := h.Next(); ok || line != "" {
		t.Errorf("Expected empty line past the newest entry, got %q (%v)", line, ok)
	}

	h.Previous()
	h.Add("third")
	if line, _ := h.Previous(); line != "third" {
		t.Errorf("Add should reset the cursor, got %q", line)
	}
}

func TestHistory_EmptyNavigation(t *testing.T) {
	h := NewHistory("", 0)

	if _, ok := h.Previous(); ok {
		t.Error("Expected nothing in an empty history")
	}
	if _, ok := h.Next(); ok {
		t.Error("Expected nothing in an empty history")
	}
}

func TestHistory_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.json")

	h := NewHistory(path, 10)
	h.Add("mkdir x")
	h.Add("show files")
	if err := h.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadHistory(path, 10)
	if err != nil {
		t.Fatalf("LoadHistory failed: %v", err)
	}
	if got := loaded.Entries(); !reflect.DeepEqual(got, []string{"mkdir x", "show files"}) {
		t.Errorf("Unexpected entries %v", got)
	}
	if line, _ := loaded.Previous(); line != "show files" {
		t.Errorf("Expected cursor at the newest entry, got %q", line)
	}
}

func TestLoadHistory_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()

	h, err := LoadHistory(filepath.Join(dir, "none.json"), 10)
	if err != nil {
		t.Fatalf("Missing file should not fail: %v", err)
	}
	if h.Len() != 0 {
		t.Errorf("Expected empty history, got %d entries", h.Len())
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadHistory(bad, 10); err == nil {
		t.Error("Expected an error for a corrupt history file")
	}
}

func TestHistory_Clear(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("ls")
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("Expected empty history after Clear")
	}
	if err := h.Save(); err != nil {
		t.Errorf("Save on in-memory history should be a no-op: %v", err)
	}
}
