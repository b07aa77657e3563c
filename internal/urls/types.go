package urls

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"
)

// Reserved Params keys understood by BuildURL and the routers.
const (
	ParamController = "controller"
	ParamAction     = "action"
	ParamVersion    = "ver"
	ParamQualified  = "qualified"
	ParamProtocol   = "protocol"
	ParamHost       = "host"
	ParamLocale     = "locale"
	ParamNoRoot     = "__no_root"
	ParamQuery      = "query"
)

// DefaultLocale selects the site default locale when passed as Options.Locale.
const DefaultLocale = "default"

// LangPlaceholder is substituted in root path templates.
const LangPlaceholder = "{{LANG}}"

// Options controls how a router generated url is rewritten.
type Options struct {
	// Qualified requests an absolute url with scheme and host.
	Qualified bool
	// NoRoot marks redirect targets; the mount root is not applied again.
	NoRoot bool
	// Locale overrides the request locale. Use DefaultLocale to force the
	// default locale.
	Locale string
}

// Resolution is the locale a url is rewritten for.
type Resolution struct {
	Locale    string
	IsDefault bool
}

// SiteOrigin holds the scheme and host of the configured site url.
type SiteOrigin struct {
	Scheme string
	Host   string
}

// IsZero reports whether no origin could be resolved.
func (o SiteOrigin) IsZero() bool {
	return o.Scheme == "" && o.Host == ""
}

// String renders the origin as scheme://host, or "" when incomplete.
func (o SiteOrigin) String() string {
	if o.Scheme == "" || o.Host == "" {
		return ""
	}
	return o.Scheme + "://" + o.Host
}

// Params carries keyword arguments for a router call.
type Params map[string]any

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Text returns the trimmed string form of key, or "" when missing or nil.
func (p Params) Text(key string) string {
	raw, ok := p[key]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}

// Bool interprets key as a flag. Strings are parsed with strconv.ParseBool.
func (p Params) Bool(key string) bool {
	switch v := p[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	case int:
		return v != 0
	default:
		return false
	}
}

// ParamsFromPairs builds Params from alternating key/value arguments, the
// shape template helpers receive. A trailing key without value is ignored.
func ParamsFromPairs(pairs ...any) (Params, error) {
	params := Params{}
	for i := 0; i+1 < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("urls: parameter name at position %d must be a string, got %T", i, pairs[i])
		}
		params[key] = pairs[i+1]
	}
	return params, nil
}

// Router builds raw urls for controller/action pairs or named routes.
type Router interface {
	BuildRawURL(ctx context.Context, args []string, params Params) (string, error)
}

// RouterFunc adapts a function to the Router interface.
type RouterFunc func(ctx context.Context, args []string, params Params) (string, error)

// BuildRawURL calls f.
func (f RouterFunc) BuildRawURL(ctx context.Context, args []string, params Params) (string, error) {
	return f(ctx, args, params)
}

// Settings exposes the configuration values the localizer reads.
type Settings interface {
	SiteURL() (string, bool)
	RootPathTemplate() (string, bool)
}

// StaticSettings is a Settings backed by fixed values. Empty values are
// reported as absent.
type StaticSettings struct {
	Site     string
	RootPath string
}

func (s StaticSettings) SiteURL() (string, bool) {
	v := strings.TrimSpace(s.Site)
	return v, v != ""
}

func (s StaticSettings) RootPathTemplate() (string, bool) {
	v := strings.TrimSpace(s.RootPath)
	return v, v != ""
}

// Observer is notified about every rewrite outcome.
type Observer interface {
	ObserveLocalize(outcome string)
	ObserveBuildError(kind string)
}

// Rewrite outcomes reported to Observer.
const (
	OutcomeDefault   = "default"
	OutcomeLocalized = "localized"
	OutcomeRootPath  = "root_path"
	OutcomeNoRoot    = "no_root"
	OutcomeBroken    = "broken"
)

// Build error kinds reported to Observer.
const (
	BuildErrorMissingVersion = "missing_api_version"
	BuildErrorRouter         = "router"
	BuildErrorBroken         = "broken_url"
)

type noopObserver struct{}

func (noopObserver) ObserveLocalize(string)   {}
func (noopObserver) ObserveBuildError(string) {}
