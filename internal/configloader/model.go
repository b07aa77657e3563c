package configloader

import (
	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-mxtheme/internal/runtimeconfig"
)

// document is the on-disk shape. Struct tags use koanf, not yaml.
type document struct {
	SiteURL       string          `koanf:"site_url"`
	RootPath      string          `koanf:"root_path"`
	DefaultLocale string          `koanf:"default_locale"`
	Locales       []string        `koanf:"locales"`
	Routes        []routeGroup    `koanf:"routes"`
	Router        routerSection   `koanf:"router"`
	Theme         themeSection    `koanf:"theme"`
	Helpers       helpersSection  `koanf:"helpers"`
	Metrics       metricsSection  `koanf:"metrics"`
	Logging       loggingSection  `koanf:"logging"`
	Features      featuresSection `koanf:"features"`
}

type routeGroup struct {
	Name    string            `koanf:"name"`
	BaseURL string            `koanf:"base_url"`
	Path    string            `koanf:"path"`
	Paths   map[string]string `koanf:"paths"`
	Groups  []routeGroup      `koanf:"groups"`
}

type routerSection struct {
	DefaultGroup  string `koanf:"default_group"`
	DefaultAction string `koanf:"default_action"`
}

type themeSection struct {
	BasePath     string `koanf:"base_path"`
	Manifest     string `koanf:"manifest"`
	TemplateDir  string `koanf:"template_dir"`
	PublicDir    string `koanf:"public_dir"`
	ResourceDir  string `koanf:"resource_dir"`
	ResourceName string `koanf:"resource_name"`
}

type helpersSection struct {
	DateFormat     string   `koanf:"date_format"`
	RegularFormats []string `koanf:"regular_formats"`
}

type metricsSection struct {
	Namespace string `koanf:"namespace"`
}

type loggingSection struct {
	Provider  string   `koanf:"provider"`
	Level     string   `koanf:"level"`
	Format    string   `koanf:"format"`
	AddSource bool     `koanf:"add_source"`
	Focus     []string `koanf:"focus"`
}

type featuresSection struct {
	Logger   bool `koanf:"logger"`
	Metrics  bool `koanf:"metrics"`
	Markdown bool `koanf:"markdown"`
}

// fromRuntime seeds the document with defaults. Slices are left nil so file
// values replace rather than merge into them; toRuntime restores them.
func fromRuntime(cfg runtimeconfig.Config) document {
	cfg.Locales = nil
	cfg.Helpers.RegularFormats = nil
	return document{
		SiteURL:       cfg.SiteURL,
		RootPath:      cfg.RootPath,
		DefaultLocale: cfg.DefaultLocale,
		Locales:       cfg.Locales,
		Router:        routerSection(cfg.Router),
		Theme:         themeSection(cfg.Theme),
		Helpers:       helpersSection(cfg.Helpers),
		Metrics:       metricsSection(cfg.Metrics),
		Logging:       loggingSection(cfg.Logging),
		Features:      featuresSection(cfg.Features),
	}
}

// toRuntime converts the decoded document into the runtime configuration.
func (d document) toRuntime() runtimeconfig.Config {
	cfg := runtimeconfig.Config{
		SiteURL:       d.SiteURL,
		RootPath:      d.RootPath,
		DefaultLocale: d.DefaultLocale,
		Locales:       d.Locales,
		Router:        runtimeconfig.RouterConfig(d.Router),
		Theme:         runtimeconfig.ThemeConfig(d.Theme),
		Helpers:       runtimeconfig.HelpersConfig(d.Helpers),
		Metrics:       runtimeconfig.MetricsConfig(d.Metrics),
		Logging:       runtimeconfig.LoggingConfig(d.Logging),
		Features:      runtimeconfig.Features(d.Features),
	}
	defaults := runtimeconfig.DefaultConfig()
	if len(cfg.Locales) == 0 {
		cfg.Locales = defaults.Locales
	}
	if len(cfg.Helpers.RegularFormats) == 0 {
		cfg.Helpers.RegularFormats = defaults.Helpers.RegularFormats
	}
	if len(d.Routes) > 0 {
		cfg.Routes = &urlkit.Config{Groups: toGroupConfigs(d.Routes)}
	}
	return cfg
}

func toGroupConfigs(groups []routeGroup) []urlkit.GroupConfig {
	out := make([]urlkit.GroupConfig, 0, len(groups))
	for _, g := range groups {
		out = append(out, urlkit.GroupConfig{
			Name:    g.Name,
			BaseURL: g.BaseURL,
			Path:    g.Path,
			Paths:   g.Paths,
			Groups:  toGroupConfigs(g.Groups),
		})
	}
	return out
}
