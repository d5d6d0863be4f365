package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeManifest(t, `
[project]
name = "demo"
version = "0.1.0"

[run]
entry = "main.asm"
step-limit = 5000
seed = 7
`)
	m, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if m.Project.Name != "demo" || m.Project.Version != "0.1.0" {
		t.Errorf("project parsed as %+v", m.Project)
	}
	if m.Run.StepLimit != 5000 || m.Run.Seed != 7 {
		t.Errorf("run parsed as %+v", m.Run)
	}
	if m.EntryPath() != filepath.Join(dir, "main.asm") {
		t.Errorf("entry path %s", m.EntryPath())
	}
}

func TestLoadMissingEntry(t *testing.T) {
	dir := writeManifest(t, `
[project]
name = "demo"
`)
	if _, err := Load(dir); err == nil {
		t.Error("expected error for missing run.entry")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for missing manifest")
	}
}
