package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteJSONCreatesParentsAndIndents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "python", "arrays-quiz.json")

	if err := WriteJSON(target, map[string]any{"question": "a < b", "options": []string{"x"}}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "{\n  \"options\": [\n    \"x\"\n  ],\n  \"question\": \"a < b\"\n}\n"
	if string(data) != want {
		t.Fatalf("unexpected output\nwant: %q\ngot:  %q", want, string(data))
	}
}

func TestWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "quizz.json")

	if err := WriteFile(target, []byte("first"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(target, []byte("second"), 0o644); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		t.Fatalf("expected only the target, got %s", strings.Join(names, ", "))
	}
	data, _ := os.ReadFile(target)
	if string(data) != "second" {
		t.Fatalf("expected overwritten content, got %q", string(data))
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	ok, err := Exists(filepath.Join(dir, "missing.json"))
	if err != nil || ok {
		t.Fatalf("expected missing file, got %v (%v)", ok, err)
	}
	ok, err = Exists(dir)
	if err != nil || !ok {
		t.Fatalf("expected existing dir, got %v (%v)", ok, err)
	}
}

func TestWriteFileSyncsContentWithPermissions(t *testing.T) {
	target := filepath.Join(t.TempDir(), "go", "slices-quiz.json")

	if err := WriteFile(target, []byte(`{"quizz":{}}`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}
	if info.Size() != int64(len(`{"quizz":{}}`)) {
		t.Fatalf("unexpected size %d", info.Size())
	}
}
