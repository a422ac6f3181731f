package wordlist

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := "\ufeffstill\n# focus lemmas\n\n  smile   # facial\na  chill ran down\n"
	got, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	want := []string{"still", "smile", "a chill ran down"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestRead_Empty(t *testing.T) {
	if _, err := Read(strings.NewReader("# nothing\n\n")); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestLoadWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focus.txt")
	if err := os.WriteFile(path, []byte("look\nturn\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := LoadWords(path)
	if err != nil {
		t.Fatalf("LoadWords failed: %v", err)
	}
	if len(got) != 2 || got[1] != "turn" {
		t.Fatalf("unexpected words %v", got)
	}

	empty := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadWords(empty); err == nil || !strings.Contains(err.Error(), "empty.txt") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}
