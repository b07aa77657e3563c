package themes

import (
	"fmt"
	"path/filepath"
	"strings"
)

// resolveDir joins dir onto base and rejects results that escape base.
// The returned path is absolute.
func resolveDir(base, dir string) (string, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return "", fmt.Errorf("themes: directory required")
	}
	if strings.TrimSpace(base) == "" {
		base = "."
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("themes: resolve base %s: %w", base, err)
	}
	clean := filepath.Clean(filepath.Join(absBase, dir))
	rel, err := filepath.Rel(absBase, clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("themes: directory %s escapes theme base", dir)
	}
	return clean, nil
}
