package presets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePresetDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	manifest := `
presets:
  - name: numpad
    description: Seventeen-key number pad
    file: numpad.json
  - name: sixty
    file: sixty.json
`
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	layout := "[\"Num\",\"/\",\"*\",\"-\"],\n[\"7\",\"8\",\"9\"]"
	if err := os.WriteFile(filepath.Join(dir, "numpad.json"), []byte(layout), 0644); err != nil {
		t.Fatalf("writing layout: %v", err)
	}
	return dir
}

func TestLibraryList(t *testing.T) {
	lib := NewLibrary(writePresetDir(t))

	entries, err := lib.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 presets, got %d", len(entries))
	}
	if entries[0].Name != "numpad" || entries[0].File != "numpad.json" {
		t.Errorf("Unexpected first preset: %+v", entries[0])
	}
	if entries[0].Description == "" {
		t.Errorf("Expected description on first preset")
	}
}

func TestLibraryListMissingManifest(t *testing.T) {
	lib := NewLibrary(t.TempDir())

	entries, err := lib.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty list, got %d", len(entries))
	}
}

func TestLibraryReadLayout(t *testing.T) {
	lib := NewLibrary(writePresetDir(t))

	raw, err := lib.ReadLayout("numpad")
	if err != nil {
		t.Fatalf("ReadLayout failed: %v", err)
	}
	if !strings.Contains(raw, "\"Num\"") {
		t.Errorf("Unexpected layout content: %s", raw)
	}

	if _, err := lib.ReadLayout("missing"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestLibraryRejectsPathEscape(t *testing.T) {
	dir := t.TempDir()
	manifest := "presets:\n  - name: evil\n    file: ../secret.json\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	lib := NewLibrary(dir)
	if _, err := lib.ReadLayout("evil"); err == nil {
		t.Error("Expected error for path-escaping preset file")
	}
}
