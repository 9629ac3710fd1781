// Package presets loads the bundled example layouts shipped with the
// server. A YAML manifest lists the presets; each entry points at a raw
// layout file in the same directory.
package presets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ManifestName is the manifest file looked up inside the presets directory.
const ManifestName = "presets.yaml"

// Preset describes one bundled layout.
type Preset struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	File        string `json:"file" yaml:"file"`
}

type manifest struct {
	Presets []Preset `yaml:"presets"`
}

// Library serves presets from a directory on disk.
type Library struct {
	dir string
}

// NewLibrary creates a preset library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// List reads the manifest and returns all presets. A missing manifest is
// not an error; it yields an empty list.
func (l *Library) List() ([]Preset, error) {
	file, err := os.Open(filepath.Join(l.dir, ManifestName))
	if err != nil {
		if os.IsNotExist(err) {
			return []Preset{}, nil
		}
		return nil, fmt.Errorf("opening preset manifest: %w", err)
	}
	defer file.Close()

	return parseManifest(file)
}

// ReadLayout returns the raw layout text for a preset by name.
func (l *Library) ReadLayout(name string) (string, error) {
	entries, err := l.List()
	if err != nil {
		return "", err
	}

	for _, p := range entries {
		if p.Name != name {
			continue
		}
		// Manifest file entries are bare names; reject anything that
		// would escape the presets directory.
		if filepath.Base(p.File) != p.File {
			return "", fmt.Errorf("invalid preset file name: %s", p.File)
		}
		data, err := os.ReadFile(filepath.Join(l.dir, p.File))
		if err != nil {
			return "", fmt.Errorf("reading preset %s: %w", name, err)
		}
		return string(data), nil
	}

	return "", fmt.Errorf("preset not found: %s", name)
}

func parseManifest(r io.Reader) ([]Preset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing preset manifest: %w", err)
	}
	if m.Presets == nil {
		m.Presets = []Preset{}
	}
	return m.Presets, nil
}
