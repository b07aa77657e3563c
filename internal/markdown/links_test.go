package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-mxtheme/internal/requestctx"
	"github.com/goliatone/go-mxtheme/internal/urls"
)

func TestRenderLocalizesRootRelativeLinks(t *testing.T) {
	r := NewRenderer(RendererOptions{Localizer: urls.NewLocalizer(urls.LocalizerOptions{}), Images: true})
	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{Locale: "es"})

	html, err := r.RenderString(ctx, "[data](/dataset/a) [ext](https://example.com/x) [proto](//cdn.example.com/y) [frag](#top)\n\n![logo](/img/logo.png)\n")
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}

	for _, want := range []string{
		`href="/es/dataset/a"`,
		`href="https://example.com/x"`,
		`href="//cdn.example.com/y"`,
		`href="#top"`,
		`src="/es/img/logo.png"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %s in output:\n%s", want, html)
		}
	}
}

func TestRenderLeavesImagesWhenDisabled(t *testing.T) {
	r := NewRenderer(RendererOptions{Localizer: urls.NewLocalizer(urls.LocalizerOptions{})})
	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{Locale: "fr"})

	html, err := r.RenderString(ctx, "![logo](/img/logo.png)")
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if !strings.Contains(html, `src="/img/logo.png"`) {
		t.Fatalf("expected untouched image source, got %s", html)
	}
}

func TestRenderKeepsLinkWhenLocalizationFails(t *testing.T) {
	r := NewRenderer(RendererOptions{Localizer: urls.NewLocalizer(urls.LocalizerOptions{})})

	html, err := r.RenderString(context.Background(), "[all](/packages)")
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if !strings.Contains(html, `href="/packages"`) {
		t.Fatalf("expected original destination, got %s", html)
	}
}

func TestRenderWithoutLocalizer(t *testing.T) {
	r := NewRenderer(RendererOptions{})
	html, err := r.RenderString(context.Background(), "[a](/b)")
	if err != nil {
		t.Fatalf("RenderString returned error: %v", err)
	}
	if !strings.Contains(html, `href="/b"`) {
		t.Fatalf("unexpected output %s", html)
	}
}
