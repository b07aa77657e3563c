package urls

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/goliatone/go-mxtheme/internal/logging"
	"github.com/goliatone/go-mxtheme/internal/requestctx"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

// LocalizerOptions configures a Localizer.
type LocalizerOptions struct {
	Router   Router
	Settings Settings
	// Locales restricts the locales accepted through Options.Locale. When
	// empty every explicit locale is accepted.
	Locales  []string
	Logger   interfaces.Logger
	Observer Observer
}

// Localizer rewrites router generated urls for the resolved locale, the
// request mount root and the configured root path template.
type Localizer struct {
	router   Router
	settings Settings
	locales  map[string]struct{}
	logger   interfaces.Logger
	observer Observer

	originOnce sync.Once
	origin     SiteOrigin
}

// NewLocalizer constructs a Localizer. Missing collaborators fall back to
// empty settings, a no-op logger and a no-op observer.
func NewLocalizer(opts LocalizerOptions) *Localizer {
	l := &Localizer{
		router:   opts.Router,
		settings: opts.Settings,
		logger:   opts.Logger,
		observer: opts.Observer,
	}
	if l.settings == nil {
		l.settings = StaticSettings{}
	}
	if l.logger == nil {
		l.logger = logging.NoOp()
	}
	if l.observer == nil {
		l.observer = noopObserver{}
	}
	if len(opts.Locales) > 0 {
		l.locales = make(map[string]struct{}, len(opts.Locales))
		for _, locale := range opts.Locales {
			if trimmed := strings.TrimSpace(locale); trimmed != "" {
				l.locales[trimmed] = struct{}{}
			}
		}
	}
	return l
}

// Localize rewrites rawURL, a path or url produced by the router, into the
// final url for the resolved locale.
func (l *Localizer) Localize(ctx context.Context, rawURL string, opts Options) (string, error) {
	res := l.ResolveLocale(ctx, opts.Locale)

	root := requestctx.ScriptRoot(ctx)
	if opts.Qualified {
		root = l.qualifiedRoot(ctx, root)
	}
	suffix := strings.TrimPrefix(rawURL, root)

	var result, outcome string
	if template, ok := l.settings.RootPathTemplate(); ok {
		mount := ""
		// the template only applies when it mentions the current root
		if strings.Contains(template, root) {
			mount = expandRootPath(template, res)
		}
		result = root + mount + suffix
		outcome = OutcomeRootPath
	} else if res.IsDefault {
		result = rawURL
		outcome = OutcomeDefault
	} else {
		result = root + "/" + res.Locale + suffix
		outcome = OutcomeLocalized
	}

	if opts.NoRoot {
		result = suffix
		if !res.IsDefault {
			result = "/" + res.Locale + result
		}
		outcome = OutcomeNoRoot
	}

	if result == brokenPath {
		l.observer.ObserveLocalize(OutcomeBroken)
		logging.WithURLContext(logging.ForRequest(ctx, l.logger), rawURL, res.Locale, opts.Qualified, opts.NoRoot).
			Error("urls.localize.broken", "result", result)
		return "", &BrokenURLError{URL: result, RawURL: rawURL, Options: opts}
	}

	l.observer.ObserveLocalize(outcome)
	return result, nil
}

// ResolveLocale picks the locale a url is rewritten for: the explicit
// locale when accepted, otherwise the request locale, otherwise the default.
func (l *Localizer) ResolveLocale(ctx context.Context, explicit string) Resolution {
	locale := strings.TrimSpace(explicit)
	if locale == DefaultLocale {
		return Resolution{IsDefault: true}
	}
	if locale != "" && l.accepts(locale) {
		return Resolution{Locale: locale}
	}

	current, isDefault := requestctx.CurrentLocale(ctx)
	if current == "" {
		return Resolution{IsDefault: true}
	}
	return Resolution{Locale: current, IsDefault: isDefault}
}

// ResolveSiteOrigin returns the scheme and host of the configured site url.
// The value is parsed once; an unset or unparsable url yields a zero origin.
func (l *Localizer) ResolveSiteOrigin() SiteOrigin {
	l.originOnce.Do(func() {
		siteURL, ok := l.settings.SiteURL()
		l.logger.Info("urls.site_url", "site_url", siteURL)
		if !ok {
			return
		}
		l.origin = ParseSiteOrigin(siteURL)
		if l.origin.IsZero() {
			l.logger.Warn("urls.site_url.unparsable", "site_url", siteURL)
		}
	})
	return l.origin
}

// ParseSiteOrigin extracts scheme and host from siteURL. Both are empty
// unless the url carries both.
func ParseSiteOrigin(siteURL string) SiteOrigin {
	parsed, err := url.Parse(strings.TrimSpace(siteURL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return SiteOrigin{}
	}
	return SiteOrigin{Scheme: parsed.Scheme, Host: parsed.Host}
}

func (l *Localizer) accepts(locale string) bool {
	if l.locales == nil {
		return true
	}
	_, ok := l.locales[locale]
	return ok
}

// qualifiedRoot asks the router for the absolute form of "/" and drops the
// trailing slash. Router failures degrade to the unqualified root.
func (l *Localizer) qualifiedRoot(ctx context.Context, root string) string {
	origin := l.ResolveSiteOrigin()
	if l.router == nil {
		return origin.String() + root
	}
	raw, err := l.router.BuildRawURL(ctx, []string{"/"}, Params{
		ParamQualified: true,
		ParamProtocol:  origin.Scheme,
		ParamHost:      origin.Host,
	})
	if err != nil {
		logging.ForRequest(ctx, l.logger).Warn("urls.qualified_root.failed", "error", err)
		return root
	}
	return strings.TrimSuffix(raw, "/")
}

func expandRootPath(template string, res Resolution) string {
	var expanded string
	if res.IsDefault {
		expanded = strings.ReplaceAll(template, "/"+LangPlaceholder, "")
	} else {
		expanded = strings.ReplaceAll(template, LangPlaceholder, res.Locale)
	}
	return strings.TrimSuffix(expanded, "/")
}
