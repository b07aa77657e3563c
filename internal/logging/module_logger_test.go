package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-mxtheme/internal/requestctx"
	"github.com/goliatone/go-mxtheme/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "mxtheme.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = URLsLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != urlsModule {
		t.Fatalf("expected module %s, got %v", urlsModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != urlsModule {
		t.Fatalf("expected module field %s, got %v", urlsModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestThemesAndMarkdownLoggersRequestTheirModules(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ThemesLogger(provider)
	_ = MarkdownLogger(provider)
	if len(provider.requested) != 2 || provider.requested[0] != themesModule || provider.requested[1] != markdownModule {
		t.Fatalf("unexpected module requests %v", provider.requested)
	}
}

func TestWithURLContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithURLContext(rec, " /dataset/x ", "", true, false)

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldURL] != "/dataset/x" {
		t.Fatalf("expected trimmed url, got %v", fields[fieldURL])
	}
	if _, ok := fields[fieldLocale]; ok {
		t.Fatal("expected empty locale to be skipped")
	}
	if _, ok := fields[fieldNoRoot]; ok {
		t.Fatal("expected false no_root to be skipped")
	}
	if fields[fieldQualify] != true {
		t.Fatalf("expected qualified flag, got %v", fields[fieldQualify])
	}
}

func TestForRequestAnnotatesRequestInfo(t *testing.T) {
	rec := &recordingLogger{}
	ctx := requestctx.WithInfo(context.Background(), requestctx.Info{Locale: "fr", ScriptRoot: "/portal"})

	ForRequest(ctx, rec)

	if len(rec.contexts) != 1 || rec.contexts[0] != ctx {
		t.Fatalf("expected context binding, got %v", rec.contexts)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected request fields, got %v", rec.fields)
	}
	if rec.fields[0]["request_locale"] != "fr" || rec.fields[0]["script_root"] != "/portal" {
		t.Fatalf("unexpected fields %v", rec.fields[0])
	}
}

func TestForRequestWithoutInfoOnlyBindsContext(t *testing.T) {
	rec := &recordingLogger{}

	ForRequest(context.Background(), rec)

	if len(rec.contexts) != 1 {
		t.Fatalf("expected context binding, got %d", len(rec.contexts))
	}
	if len(rec.fields) != 0 {
		t.Fatalf("expected no fields, got %v", rec.fields)
	}
}

type contextOnlyLogger struct{}

func (contextOnlyLogger) Trace(string, ...any)                          {}
func (contextOnlyLogger) Debug(string, ...any)                          {}
func (contextOnlyLogger) Info(string, ...any)                           {}
func (contextOnlyLogger) Warn(string, ...any)                           {}
func (contextOnlyLogger) Error(string, ...any)                          {}
func (contextOnlyLogger) Fatal(string, ...any)                          {}
func (l contextOnlyLogger) WithContext(context.Context) interfaces.Logger { return l }

func TestWithFieldsSkipsLoggersWithoutFieldSupport(t *testing.T) {
	plain := contextOnlyLogger{}
	if got := WithFields(plain, map[string]any{"url": "/a"}); got != interfaces.Logger(plain) {
		t.Fatalf("expected logger returned unchanged, got %#v", got)
	}
	if WithFields(nil, map[string]any{"url": "/a"}) != nil {
		t.Fatal("expected nil logger to stay nil")
	}

	rec := &recordingLogger{}
	WithFields(rec, nil)
	if len(rec.fields) != 0 {
		t.Fatalf("expected empty fields to be skipped, got %v", rec.fields)
	}
	WithFields(rec, map[string]any{"url": "/a"})
	if len(rec.fields) != 1 || rec.fields[0]["url"] != "/a" {
		t.Fatalf("expected fields forwarded, got %v", rec.fields)
	}
}
