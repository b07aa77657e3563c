package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-mxtheme"
)

const cliConfig = `
site_url: https://data.example.org
locales: [en, es]
routes:
  - name: dataset
    base_url: https://data.example.org
    paths:
      read: /dataset/:id
`

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mxtheme.yaml")
	if err := os.WriteFile(path, []byte(cliConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path, filepath.Join(dir, "missing.env")
}

func TestRunLocalize(t *testing.T) {
	config, envFile := writeConfig(t)
	var out bytes.Buffer

	err := run([]string{"localize", "--config", config, "--env-file", envFile, "--request-locale", "es", "--script-root", "/data", "/data/dataset/x"}, &out, &out)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "/data/es/dataset/x" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunBuildQualified(t *testing.T) {
	config, envFile := writeConfig(t)
	var out bytes.Buffer

	err := run([]string{"build", "--config", config, "--env-file", envFile, "--request-locale", "es", "--qualified", "-p", "id=x", "dataset.read"}, &out, &out)
	if err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "https://data.example.org/es/dataset/x" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunBuildReportsMissingAPIVersion(t *testing.T) {
	config, envFile := writeConfig(t)
	var out bytes.Buffer

	err := run([]string{"build", "--config", config, "--env-file", envFile, "-p", "controller=api"}, &out, &out)
	var missing *mxtheme.MissingAPIVersionError
	if !errors.As(err, &missing) {
		t.Fatalf("expected missing version error, got %v", err)
	}
}
