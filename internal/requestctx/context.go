package requestctx

import "context"

type contextKey string

const requestInfoKey contextKey = "mxtheme.request.info"

// Info describes the request-scoped values URL generation depends on.
type Info struct {
	Locale     string
	IsDefault  bool
	ScriptRoot string
}

// WithInfo returns a context carrying request locale and mount information.
// An empty locale is always treated as the default locale.
func WithInfo(ctx context.Context, info Info) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if info.Locale == "" {
		info.IsDefault = true
	}
	return context.WithValue(ctx, requestInfoKey, info)
}

// FromContext extracts request information previously attached with WithInfo.
func FromContext(ctx context.Context) (Info, bool) {
	if ctx == nil {
		return Info{IsDefault: true}, false
	}
	info, ok := ctx.Value(requestInfoKey).(Info)
	if !ok {
		return Info{IsDefault: true}, false
	}
	return info, true
}

// CurrentLocale reports the request locale and whether it is the site default.
// Background work without request information resolves to ("", true).
func CurrentLocale(ctx context.Context) (string, bool) {
	info, _ := FromContext(ctx)
	if info.Locale == "" {
		return "", true
	}
	return info.Locale, info.IsDefault
}

// ScriptRoot reports the mount prefix of the current request, or "".
func ScriptRoot(ctx context.Context) string {
	info, _ := FromContext(ctx)
	return info.ScriptRoot
}
