package themes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Manifest mirrors the expected theme.json structure.
type Manifest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Version     string     `json:"version"`
	Templates   string     `json:"templates,omitempty"`
	Public      string     `json:"public,omitempty"`
	Resources   []Resource `json:"resources,omitempty"`
}

// Resource is a static library registered with the host asset pipeline.
type Resource struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// LoadManifest reads and parses a manifest from disk.
func LoadManifest(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("themes: open manifest: %w", err)
	}
	defer file.Close()
	return ParseManifest(file)
}

// ParseManifest decodes and validates manifest JSON from a reader.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var manifest Manifest
	if err := json.NewDecoder(r).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("themes: parse manifest: %w", err)
	}
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}

func (m *Manifest) validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("themes: manifest missing name")
	}
	if strings.TrimSpace(m.Version) == "" {
		return fmt.Errorf("themes: manifest missing version")
	}
	for i, res := range m.Resources {
		if strings.TrimSpace(res.Path) == "" || strings.TrimSpace(res.Name) == "" {
			return fmt.Errorf("themes: manifest resource %d requires path and name", i)
		}
	}
	return nil
}
