// Package mxtheme is a portal theme plugin: it localizes router generated
// urls for the request locale, exposes template helpers and registers theme
// assets with a host.
package mxtheme

import (
	"context"
	"io"

	"github.com/goliatone/go-mxtheme/internal/di"
	"github.com/goliatone/go-mxtheme/internal/requestctx"
	"github.com/goliatone/go-mxtheme/internal/urls"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

type (
	Options    = urls.Options
	Params     = urls.Params
	Router     = urls.Router
	RouterFunc = urls.RouterFunc
	Settings   = urls.Settings
	Request    = requestctx.Info
	Option     = di.Option
)

const DefaultLocale = urls.DefaultLocale

var (
	WithRouter         = di.WithRouter
	WithLoggerProvider = di.WithLoggerProvider
	WithSettings       = di.WithSettings
	WithRegisterer     = di.WithRegisterer
)

// WithRequest attaches the request locale and script root to ctx.
func WithRequest(ctx context.Context, req Request) context.Context {
	return requestctx.WithInfo(ctx, req)
}

// Module is the public entry point.
type Module struct {
	container *di.Container
}

// New validates cfg and wires the module.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// URLs exposes url building and localization.
func (m *Module) URLs() *URLs {
	return &URLs{module: m}
}

// Helpers returns the template helper table keyed by helper name.
func (m *Module) Helpers() map[string]any {
	return m.container.Helpers().Map()
}

// Plugin exposes theme asset registration.
func (m *Module) Plugin() *Plugin {
	return &Plugin{module: m}
}

// Markdown exposes link localizing markdown rendering. It is nil unless
// Features.Markdown is enabled.
func (m *Module) Markdown() *Markdown {
	if m.container.Markdown() == nil {
		return nil
	}
	return &Markdown{module: m}
}

// URLs builds and localizes urls. Errors are categorised with go-errors.
type URLs struct {
	module *Module
}

// Build asks the router for the url described by args and params and
// localizes it.
func (u *URLs) Build(ctx context.Context, args []string, params Params) (string, error) {
	out, err := u.module.container.Localizer().BuildURL(ctx, args, params)
	return out, wrapURLError(err)
}

// Localize rewrites an already built url.
func (u *URLs) Localize(ctx context.Context, rawURL string, opts Options) (string, error) {
	out, err := u.module.container.Localizer().Localize(ctx, rawURL, opts)
	return out, wrapURLError(err)
}

// SiteOrigin returns the scheme and host of the configured site url.
func (u *URLs) SiteOrigin() (scheme, host string) {
	origin := u.module.container.Localizer().ResolveSiteOrigin()
	return origin.Scheme, origin.Host
}

// Plugin registers theme directories with a host.
type Plugin struct {
	module *Module
}

// Name reports the resource name of the theme.
func (p *Plugin) Name() string {
	return p.module.container.Plugin().Name()
}

// UpdateConfig adds templates, public files and resources to host.
func (p *Plugin) UpdateConfig(host interfaces.HostConfigurer) error {
	return p.module.container.Plugin().UpdateConfig(host)
}

// Helpers returns the helper table registered by the plugin.
func (p *Plugin) Helpers() map[string]any {
	return p.module.container.Plugin().Helpers()
}

// Markdown renders markdown with localized links.
type Markdown struct {
	module *Module
}

// Render writes HTML for src to w.
func (m *Markdown) Render(ctx context.Context, src []byte, w io.Writer) error {
	return m.module.container.Markdown().Render(ctx, src, w)
}

// RenderString renders src and returns the HTML.
func (m *Markdown) RenderString(ctx context.Context, src string) (string, error) {
	return m.module.container.Markdown().RenderString(ctx, src)
}
