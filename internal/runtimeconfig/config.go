package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	urlkit "github.com/goliatone/go-urlkit"
	"golang.org/x/text/language"
)

var ErrSiteURLInvalid = errors.New("mxtheme config: site url must be an absolute url with scheme and host")
var ErrRootPathInvalid = errors.New("mxtheme config: root path must start with a slash")
var ErrDefaultLocaleRequired = errors.New("mxtheme config: default locale is required")
var ErrLocaleInvalid = errors.New("mxtheme config: locale is not a valid language tag")
var ErrDateFormatRequired = errors.New("mxtheme config: helpers date format is required")
var ErrThemeBasePathRequired = errors.New("mxtheme config: theme base path is required")
var ErrMetricsNamespaceInvalid = errors.New("mxtheme config: metrics namespace is invalid")
var ErrLoggingProviderRequired = errors.New("mxtheme config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("mxtheme config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mxtheme config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mxtheme config: logging format is invalid")

var metricNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config aggregates the settings of the theme plugin.
type Config struct {
	// SiteURL is the public base url used for qualified links.
	SiteURL string
	// RootPath is an optional mount template that may contain {{LANG}}.
	RootPath      string
	DefaultLocale string
	Locales       []string
	Routes        *urlkit.Config
	Router        RouterConfig
	Theme         ThemeConfig
	Helpers       HelpersConfig
	Metrics       MetricsConfig
	Logging       LoggingConfig
	Features      Features
}

// RouterConfig tunes how route groups are looked up.
type RouterConfig struct {
	DefaultGroup  string
	DefaultAction string
}

// ThemeConfig locates the theme assets registered with the host.
type ThemeConfig struct {
	BasePath     string
	Manifest     string
	TemplateDir  string
	PublicDir    string
	ResourceDir  string
	ResourceName string
}

// HelpersConfig configures the template helper table.
type HelpersConfig struct {
	DateFormat     string
	RegularFormats []string
}

// MetricsConfig configures the prometheus collector.
type MetricsConfig struct {
	Namespace string
}

// Features toggles optional functionality.
type Features struct {
	Logger   bool
	Metrics  bool
	Markdown bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en"},
		Router: RouterConfig{
			DefaultAction: "index",
		},
		Theme: ThemeConfig{
			BasePath:     ".",
			Manifest:     "theme.json",
			TemplateDir:  "templates",
			PublicDir:    "public",
			ResourceDir:  "assets",
			ResourceName: "mxtheme",
		},
		Helpers: HelpersConfig{
			DateFormat:     "%Y/%m/%d",
			RegularFormats: []string{"csv", "xml", "shp", "kml", "kmz", "json", "xls", "txt", "tls"},
		},
		Metrics: MetricsConfig{
			Namespace: "mxtheme",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if err := validation.Validate(cfg.SiteURL, validation.By(absoluteURL)); err != nil {
		return fmt.Errorf("%w: %v", ErrSiteURLInvalid, err)
	}
	if root := strings.TrimSpace(cfg.RootPath); root != "" && !strings.HasPrefix(root, "/") {
		return fmt.Errorf("%w: %s", ErrRootPathInvalid, root)
	}
	if err := validation.Validate(strings.TrimSpace(cfg.DefaultLocale), validation.Required); err != nil {
		return ErrDefaultLocaleRequired
	}
	for _, locale := range append([]string{cfg.DefaultLocale}, cfg.Locales...) {
		if _, err := language.Parse(strings.TrimSpace(locale)); err != nil {
			return fmt.Errorf("%w: %s", ErrLocaleInvalid, locale)
		}
	}
	if err := validation.Validate(strings.TrimSpace(cfg.Helpers.DateFormat), validation.Required); err != nil {
		return ErrDateFormatRequired
	}
	if err := validation.Validate(strings.TrimSpace(cfg.Theme.BasePath), validation.Required); err != nil {
		return ErrThemeBasePathRequired
	}
	if cfg.Features.Metrics {
		err := validation.Validate(cfg.Metrics.Namespace,
			validation.Required,
			validation.Match(metricNamePattern),
		)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrMetricsNamespaceInvalid, cfg.Metrics.Namespace)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// AllowedLocales returns the configured locales, default first, without
// duplicates or blanks.
func (cfg Config) AllowedLocales() []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(cfg.Locales)+1)
	for _, locale := range append([]string{cfg.DefaultLocale}, cfg.Locales...) {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			continue
		}
		if _, ok := seen[locale]; ok {
			continue
		}
		seen[locale] = struct{}{}
		out = append(out, locale)
	}
	return out
}

func absoluteURL(value any) error {
	raw, _ := value.(string)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("missing scheme or host")
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	return provider == "gologger"
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
