// Package di wires the mxtheme services from a runtime configuration.
package di

import (
	"fmt"

	urlkit "github.com/goliatone/go-urlkit"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-mxtheme/internal/helpers"
	"github.com/goliatone/go-mxtheme/internal/logging"
	"github.com/goliatone/go-mxtheme/internal/logging/gologger"
	"github.com/goliatone/go-mxtheme/internal/markdown"
	"github.com/goliatone/go-mxtheme/internal/metrics"
	"github.com/goliatone/go-mxtheme/internal/runtimeconfig"
	"github.com/goliatone/go-mxtheme/internal/themes"
	"github.com/goliatone/go-mxtheme/internal/urls"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

// Container holds the wired services.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	registerer     prom.Registerer
	settings       urls.Settings
	router         urls.Router
	routeManager   *urlkit.RouteManager

	collector *metrics.Collector
	localizer *urls.Localizer
	helpers   *helpers.Table
	plugin    *themes.Plugin
	markdown  *markdown.Renderer
}

// Option mutates the container before services are built.
type Option func(*Container)

// WithRouter replaces the urlkit backed router.
func WithRouter(router urls.Router) Option {
	return func(c *Container) {
		if router != nil {
			c.router = router
		}
	}
}

// WithLoggerProvider overrides the provider derived from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithSettings replaces the settings read from the configuration.
func WithSettings(settings urls.Settings) Option {
	return func(c *Container) {
		if settings != nil {
			c.settings = settings
		}
	}
}

// WithRegisterer sets the prometheus registerer used when metrics are enabled.
func WithRegisterer(reg prom.Registerer) Option {
	return func(c *Container) {
		if reg != nil {
			c.registerer = reg
		}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		settings: configSettings{cfg: cfg},
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureRouting()
	if err := c.configureMetrics(); err != nil {
		return nil, err
	}

	c.localizer = urls.NewLocalizer(urls.LocalizerOptions{
		Router:   c.router,
		Settings: c.settings,
		Locales:  cfg.AllowedLocales(),
		Logger:   logging.URLsLogger(c.loggerProvider),
		Observer: c.observer(),
	})

	c.helpers = helpers.New(helpers.Options{
		URLs:           c.localizer,
		DateFormat:     cfg.Helpers.DateFormat,
		RegularFormats: cfg.Helpers.RegularFormats,
	})

	plugin, err := themes.NewPlugin(themes.PluginOptions{
		Config:  cfg.Theme,
		Helpers: c.helpers,
		Logger:  logging.ThemesLogger(c.loggerProvider),
	})
	if err != nil {
		return nil, err
	}
	c.plugin = plugin

	if cfg.Features.Markdown {
		c.markdown = markdown.NewRenderer(markdown.RendererOptions{
			Localizer: c.localizer,
			Logger:    logging.MarkdownLogger(c.loggerProvider),
			Images:    true,
		})
	}
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}
	provider, err := gologger.NewProvider(c.Config.Logging)
	if err != nil {
		return fmt.Errorf("di: logger provider: %w", err)
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureRouting() {
	if c.router != nil {
		return
	}
	if c.Config.Routes != nil {
		c.routeManager = urlkit.NewRouteManager(c.Config.Routes)
	}
	c.router = urls.NewURLKitRouter(urls.URLKitRouterOptions{
		Manager:       c.routeManager,
		DefaultGroup:  c.Config.Router.DefaultGroup,
		DefaultAction: c.Config.Router.DefaultAction,
	})
}

func (c *Container) configureMetrics() error {
	if !c.Config.Features.Metrics {
		return nil
	}
	collector, err := metrics.NewCollector(c.registerer, c.Config.Metrics.Namespace)
	if err != nil {
		return fmt.Errorf("di: metrics collector: %w", err)
	}
	c.collector = collector
	return nil
}

func (c *Container) observer() urls.Observer {
	if c.collector == nil {
		return nil
	}
	return c.collector
}

// LoggerProvider exposes the provider in use, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// RouteManager exposes the urlkit manager built from Config.Routes.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// Localizer returns the url localizer.
func (c *Container) Localizer() *urls.Localizer {
	return c.localizer
}

// Helpers returns the template helper table.
func (c *Container) Helpers() *helpers.Table {
	return c.helpers
}

// Plugin returns the theme plugin.
func (c *Container) Plugin() *themes.Plugin {
	return c.plugin
}

// Markdown returns the renderer, nil unless Features.Markdown is set.
func (c *Container) Markdown() *markdown.Renderer {
	return c.markdown
}

// Metrics returns the collector, nil unless Features.Metrics is set.
func (c *Container) Metrics() *metrics.Collector {
	return c.collector
}

type configSettings struct {
	cfg runtimeconfig.Config
}

func (s configSettings) SiteURL() (string, bool) {
	return s.cfg.SiteURL, s.cfg.SiteURL != ""
}

func (s configSettings) RootPathTemplate() (string, bool) {
	return s.cfg.RootPath, s.cfg.RootPath != ""
}
