package urls

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-mxtheme/internal/logging"
)

const apiController = "api"

// BuildURL asks the router for the url of args/params and localizes it.
// The locale and no-root markers are consumed here and never reach the
// router. params is not modified.
func (l *Localizer) BuildURL(ctx context.Context, args []string, params Params) (string, error) {
	kw := params.Clone()

	locale := kw.Text(ParamLocale)
	noRoot := kw.Bool(ParamNoRoot)
	delete(kw, ParamLocale)
	delete(kw, ParamNoRoot)

	if kw.Text(ParamController) == apiController {
		ver := kw.Text(ParamVersion)
		if isBlank(kw[ParamVersion]) {
			l.observer.ObserveBuildError(BuildErrorMissingVersion)
			return "", &MissingAPIVersionError{Args: args, Params: params.Clone()}
		}
		kw[ParamVersion] = "/" + ver
	}

	qualified := kw.Bool(ParamQualified)
	if qualified {
		origin := l.ResolveSiteOrigin()
		kw[ParamProtocol] = origin.Scheme
		kw[ParamHost] = origin.Host
	}

	if l.router == nil {
		l.observer.ObserveBuildError(BuildErrorRouter)
		return "", fmt.Errorf("urls: router not configured")
	}
	raw, err := l.router.BuildRawURL(ctx, args, kw)
	if err != nil {
		l.observer.ObserveBuildError(BuildErrorRouter)
		logging.ForRequest(ctx, l.logger).Warn("urls.build.router_failed", "args", args, "error", err)
		return "", fmt.Errorf("urls: build raw url: %w", err)
	}

	localized, err := l.Localize(ctx, raw, Options{
		Qualified: qualified,
		NoRoot:    noRoot,
		Locale:    locale,
	})
	if err != nil {
		l.observer.ObserveBuildError(BuildErrorBroken)
		return "", err
	}
	return localized, nil
}

// isBlank reports values a version check treats as absent: nil, blank
// strings, false and numeric zero.
func isBlank(v any) bool {
	switch value := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(value) == ""
	case bool:
		return !value
	case int:
		return value == 0
	case int64:
		return value == 0
	case uint:
		return value == 0
	case float64:
		return value == 0
	default:
		return false
	}
}
