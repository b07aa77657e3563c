package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-mxtheme/internal/runtimeconfig"
)

const sampleYAML = `
site_url: https://data.example.org
root_path: /portal/{{LANG}}
default_locale: en
locales: [en, es, fr]
router:
  default_group: frontend
routes:
  - name: frontend
    base_url: https://data.example.org
    paths:
      home: /
      read: /dataset/:id
    groups:
      - name: es
        path: /es
        paths:
          read: /conjunto/:id
helpers:
  date_format: "%d.%m.%Y"
features:
  metrics: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mxtheme.yaml", sampleYAML)

	cfg, err := Load(Options{Path: path, EnvPrefix: "MXTHEME_TEST_A_"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.SiteURL != "https://data.example.org" || cfg.RootPath != "/portal/{{LANG}}" {
		t.Fatalf("unexpected site settings %q %q", cfg.SiteURL, cfg.RootPath)
	}
	if len(cfg.Locales) != 3 || cfg.Locales[1] != "es" {
		t.Fatalf("unexpected locales %v", cfg.Locales)
	}
	if cfg.Helpers.DateFormat != "%d.%m.%Y" {
		t.Fatalf("expected date format override, got %q", cfg.Helpers.DateFormat)
	}
	if len(cfg.Helpers.RegularFormats) == 0 {
		t.Fatal("expected default regular formats to survive")
	}
	if cfg.Theme.TemplateDir != "templates" || cfg.Metrics.Namespace != "mxtheme" {
		t.Fatalf("expected defaults to survive, got %+v %+v", cfg.Theme, cfg.Metrics)
	}
	if !cfg.Features.Metrics || cfg.Router.DefaultGroup != "frontend" || cfg.Router.DefaultAction != "index" {
		t.Fatalf("unexpected router/features %+v %+v", cfg.Router, cfg.Features)
	}
	if cfg.Routes == nil || len(cfg.Routes.Groups) != 1 {
		t.Fatalf("expected one route group, got %+v", cfg.Routes)
	}
	group := cfg.Routes.Groups[0]
	if group.Name != "frontend" || group.Paths["read"] != "/dataset/:id" || len(group.Groups) != 1 || group.Groups[0].Path != "/es" {
		t.Fatalf("unexpected route group %+v", group)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "mxtheme.yaml", sampleYAML)
	t.Setenv("MXTHEME_TEST_B_ROOT_PATH", "/data/{{LANG}}")
	t.Setenv("MXTHEME_TEST_B_THEME__BASE_PATH", "/srv/theme")

	cfg, err := Load(Options{Path: path, EnvPrefix: "MXTHEME_TEST_B_"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RootPath != "/data/{{LANG}}" {
		t.Fatalf("expected env root path, got %q", cfg.RootPath)
	}
	if cfg.Theme.BasePath != "/srv/theme" {
		t.Fatalf("expected env theme base path, got %q", cfg.Theme.BasePath)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	dotenv := writeFile(t, dir, ".env", "MXTHEME_TEST_C_SITE_URL=http://dotenv.example.com\n")
	t.Cleanup(func() { os.Unsetenv("MXTHEME_TEST_C_SITE_URL") })

	cfg, err := Load(Options{DotEnv: dotenv, EnvPrefix: "MXTHEME_TEST_C_"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SiteURL != "http://dotenv.example.com" {
		t.Fatalf("expected site url from .env, got %q", cfg.SiteURL)
	}
}

func TestLoadIgnoresMissingDotEnv(t *testing.T) {
	cfg, err := Load(Options{DotEnv: filepath.Join(t.TempDir(), "missing.env"), EnvPrefix: "MXTHEME_TEST_D_"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("expected defaults, got %q", cfg.DefaultLocale)
	}
}

func TestLoadValidates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.yaml", "site_url: example.com\n")

	_, err := Load(Options{Path: path, EnvPrefix: "MXTHEME_TEST_E_"})
	if !errors.Is(err, runtimeconfig.ErrSiteURLInvalid) {
		t.Fatalf("expected ErrSiteURLInvalid, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.yaml"), EnvPrefix: "MXTHEME_TEST_F_"}); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
