package mxtheme_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mxtheme"
)

func newModule(t *testing.T, mutate func(*mxtheme.Config), opts ...mxtheme.Option) *mxtheme.Module {
	t.Helper()
	cfg := mxtheme.DefaultConfig()
	cfg.SiteURL = "https://data.example.org"
	cfg.Locales = []string{"en", "es"}
	cfg.Theme.BasePath = t.TempDir()
	if mutate != nil {
		mutate(&cfg)
	}
	module, err := mxtheme.New(cfg, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return module
}

func staticRouter(path string) mxtheme.Option {
	return mxtheme.WithRouter(mxtheme.RouterFunc(func(ctx context.Context, args []string, params mxtheme.Params) (string, error) {
		return path, nil
	}))
}

func TestModuleBuildLocalizesForRequest(t *testing.T) {
	module := newModule(t, nil, staticRouter("/dataset/x"))
	ctx := mxtheme.WithRequest(context.Background(), mxtheme.Request{Locale: "es"})

	got, err := module.URLs().Build(ctx, []string{"dataset.read"}, nil)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got != "/es/dataset/x" {
		t.Fatalf("unexpected url %q", got)
	}

	got, err = module.URLs().Localize(ctx, "/dataset/x", mxtheme.Options{Locale: mxtheme.DefaultLocale})
	if err != nil {
		t.Fatalf("Localize returned error: %v", err)
	}
	if got != "/dataset/x" {
		t.Fatalf("expected default locale identity, got %q", got)
	}
}

func TestModuleCategorisesMissingAPIVersion(t *testing.T) {
	module := newModule(t, nil, staticRouter("/api/3/action"))

	_, err := module.URLs().Build(context.Background(), nil, mxtheme.Params{"controller": "api"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !errors.Is(err, mxtheme.ErrMissingAPIVersion) {
		t.Fatalf("expected ErrMissingAPIVersion, got %v", err)
	}
}

func TestModuleCategorisesBrokenURL(t *testing.T) {
	module := newModule(t, nil, staticRouter("/packages"))

	_, err := module.URLs().Build(context.Background(), []string{"packages"}, nil)
	if !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Fatalf("expected internal category, got %v", err)
	}
	var broken *mxtheme.BrokenURLError
	if !errors.As(err, &broken) || broken.URL != "/packages" {
		t.Fatalf("expected BrokenURLError, got %v", err)
	}
}

func TestModuleSiteOrigin(t *testing.T) {
	module := newModule(t, nil)
	scheme, host := module.URLs().SiteOrigin()
	if scheme != "https" || host != "data.example.org" {
		t.Fatalf("unexpected origin %q %q", scheme, host)
	}
}

func TestModuleHelpersAndPlugin(t *testing.T) {
	module := newModule(t, nil)

	helpers := module.Helpers()
	for _, name := range []string{"format_display_date", "is_regular_format", "url_for", "localize_url", "slugify"} {
		if _, ok := helpers[name]; !ok {
			t.Fatalf("expected helper %q", name)
		}
	}
	if len(module.Plugin().Helpers()) != len(helpers) {
		t.Fatal("expected plugin to expose the helper table")
	}
	if module.Plugin().Name() != "mxtheme" {
		t.Fatalf("unexpected plugin name %q", module.Plugin().Name())
	}
}

func TestModuleMarkdownIsOptional(t *testing.T) {
	if newModule(t, nil).Markdown() != nil {
		t.Fatal("expected markdown disabled by default")
	}

	module := newModule(t, func(cfg *mxtheme.Config) { cfg.Features.Markdown = true })
	ctx := mxtheme.WithRequest(context.Background(), mxtheme.Request{Locale: "es"})
	html, err := module.Markdown().RenderString(ctx, "[read](/dataset/x)")
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if !strings.Contains(html, `href="/es/dataset/x"`) {
		t.Fatalf("expected localized link, got %s", html)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := mxtheme.DefaultConfig()
	cfg.SiteURL = "not a url"
	if _, err := mxtheme.New(cfg); !errors.Is(err, mxtheme.ErrSiteURLInvalid) {
		t.Fatalf("expected ErrSiteURLInvalid, got %v", err)
	}
}
