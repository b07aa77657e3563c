package logging

import (
	"context"

	"github.com/goliatone/go-mxtheme/internal/requestctx"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

// ForRequest binds the logger to ctx and annotates it with the request locale
// and script root when the context carries request information.
func ForRequest(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if logger == nil || ctx == nil {
		return logger
	}
	logger = logger.WithContext(ctx)

	info, ok := requestctx.FromContext(ctx)
	if !ok {
		return logger
	}
	fields := map[string]any{"locale_default": info.IsDefault}
	if info.Locale != "" {
		fields["request_locale"] = info.Locale
	}
	if info.ScriptRoot != "" {
		fields["script_root"] = info.ScriptRoot
	}
	return WithFields(logger, fields)
}
