// Package markdown renders markdown with root-relative links localized for
// the current request.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-mxtheme/internal/logging"
	"github.com/goliatone/go-mxtheme/internal/urls"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

const linkTransformerPriority = 100

var requestKey = parser.NewContextKey()

// Localizer is the slice of urls.Localizer used for link rewriting.
type Localizer interface {
	Localize(ctx context.Context, rawURL string, opts urls.Options) (string, error)
}

// RendererOptions configures a Renderer.
type RendererOptions struct {
	Localizer Localizer
	Logger    interfaces.Logger
	// Images also rewrites image sources.
	Images bool
}

// Renderer converts markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer builds a goldmark renderer with GFM and link localization.
func NewRenderer(opts RendererOptions) *Renderer {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, &linkLocalization{
			localizer: opts.Localizer,
			logger:    logger,
			images:    opts.Images,
		}),
	)
	return &Renderer{md: md}
}

// Render writes the HTML for src to w, localizing links for ctx.
func (r *Renderer) Render(ctx context.Context, src []byte, w io.Writer) error {
	pc := parser.NewContext()
	pc.Set(requestKey, ctx)
	if err := r.md.Convert(src, w, parser.WithContext(pc)); err != nil {
		return fmt.Errorf("markdown render: %w", err)
	}
	return nil
}

// RenderString is a convenience wrapper around Render.
func (r *Renderer) RenderString(ctx context.Context, src string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(ctx, []byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type linkLocalization struct {
	localizer Localizer
	logger    interfaces.Logger
	images    bool
}

func (e *linkLocalization) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithASTTransformers(
			util.Prioritized(&linkTransformer{ext: e}, linkTransformerPriority),
		),
	)
}

type linkTransformer struct {
	ext *linkLocalization
}

func (t *linkTransformer) Transform(node *ast.Document, _ text.Reader, pc parser.Context) {
	if t.ext.localizer == nil {
		return
	}
	ctx, _ := pc.Get(requestKey).(context.Context)
	if ctx == nil {
		ctx = context.Background()
	}

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		var dest *[]byte
		switch v := n.(type) {
		case *ast.Link:
			dest = &v.Destination
		case *ast.Image:
			if t.ext.images {
				dest = &v.Destination
			}
		}
		if dest == nil || !isRootRelative(string(*dest)) {
			return ast.WalkContinue, nil
		}

		localized, err := t.ext.localizer.Localize(ctx, string(*dest), urls.Options{})
		if err != nil {
			logging.ForRequest(ctx, t.ext.logger).Warn("markdown.link.localize_failed", "destination", string(*dest), "error", err)
			return ast.WalkContinue, nil
		}
		*dest = []byte(localized)
		return ast.WalkContinue, nil
	})
}

func isRootRelative(dest string) bool {
	return strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//")
}
