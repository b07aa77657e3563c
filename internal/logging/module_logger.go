package logging

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

const (
	rootModule     = "mxtheme"
	urlsModule     = "mxtheme.urls"
	themesModule   = "mxtheme.themes"
	markdownModule = "mxtheme.markdown"
)

const (
	fieldLocale  = "locale"
	fieldURL     = "url"
	fieldNoRoot  = "no_root"
	fieldQualify = "qualified"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// URLsLogger returns the logger namespace reserved for URL localisation.
func URLsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, urlsModule)
}

// ThemesLogger returns the logger namespace reserved for plugin registration.
func ThemesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, themesModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown link rewriting.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithURLContext enriches the logger with the URL being rewritten and the
// rewrite options. Empty values are ignored.
func WithURLContext(logger interfaces.Logger, url, locale string, qualified, noRoot bool) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(url); trimmed != "" {
		fields[fieldURL] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if qualified {
		fields[fieldQualify] = true
	}
	if noRoot {
		fields[fieldNoRoot] = true
	}
	return WithFields(logger, fields)
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger
// and returns it unchanged otherwise. fields is copied.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	withFields, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return withFields.WithFields(maps.Clone(fields))
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
