// Package gologger backs the mxtheme logging interfaces with go-logger.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mxtheme/internal/logging"
	"github.com/goliatone/go-mxtheme/internal/runtimeconfig"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

// Provider hands out go-logger child loggers per module.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds a provider from the logging section of the runtime
// configuration.
func NewProvider(cfg runtimeconfig.LoggingConfig) (*Provider, error) {
	var options []glog.Option

	if level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]; ok {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("gologger: unsupported format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := trimmed(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the child logger for a module such as "mxtheme.urls".
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &moduleLogger{inner: inner}
}

// moduleLogger forwards to go-logger. fields holds pairs that could not be
// attached through glog.FieldsLogger and are appended to every call.
type moduleLogger struct {
	inner  glog.Logger
	fields []any
}

func (l *moduleLogger) Trace(msg string, args ...any) { l.inner.Trace(msg, l.args(args)...) }
func (l *moduleLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, l.args(args)...) }
func (l *moduleLogger) Info(msg string, args ...any)  { l.inner.Info(msg, l.args(args)...) }
func (l *moduleLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.args(args)...) }
func (l *moduleLogger) Error(msg string, args ...any) { l.inner.Error(msg, l.args(args)...) }
func (l *moduleLogger) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.args(args)...) }

func (l *moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return &moduleLogger{inner: with.WithFields(maps.Clone(fields)), fields: l.fields}
	}

	pairs := slices.Clone(l.fields)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		pairs = append(pairs, key, fields[key])
	}
	return &moduleLogger{inner: l.inner, fields: pairs}
}

func (l *moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &moduleLogger{inner: l.inner.WithContext(ctx), fields: l.fields}
}

func (l *moduleLogger) args(args []any) []any {
	if len(l.fields) == 0 {
		return args
	}
	return append(slices.Clone(l.fields), args...)
}

func trimmed(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}
