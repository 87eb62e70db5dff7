package jsmodules

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
)

func TestSlogLoggerIsSilentOnSuccessAtInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	tree := MustTree(fstest.MapFS{
		"init.js":          file(`var x = 1;`),
		"modules/event.js": file(`module.exports = 1;`),
	})

	if err := Load(context.Background(), NewRuntimeWithLoader(), tree, WithLogger(logger)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestSlogLoggerWritesOneErrorRecord(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	tree := MustTree(fstest.MapFS{
		"init.js":          file(`throw new Error("nope");`),
		"modules/event.js": file(`module.exports = 1;`),
	})

	if Define(context.Background(), NewRuntimeWithLoader(), tree, WithLogger(logger), fixedRunID()) {
		t.Fatalf("expected Define to fail")
	}
	out := strings.TrimSpace(buf.String())
	if strings.Count(out, "\n") != 0 {
		t.Fatalf("expected a single record, got %q", out)
	}
	for _, want := range []string{"level=ERROR", "Failed to load internal modules", "run_id=run-1", "units=1", "cause="} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestSlogLoggerDebugIncludesUnits(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	logger.LogBootstrap(BootstrapLogEvent{RunID: "r", Stage: string(TierModule), Name: "jsmodule_event", Path: "modules/event.js"})
	logger.LogBootstrap(BootstrapLogEvent{RunID: "r", Stage: StageBootstrap, Units: 1})

	out := buf.String()
	if !strings.Contains(out, `"name":"jsmodule_event"`) || !strings.Contains(out, `"msg":"Internal modules loaded"`) {
		t.Fatalf("unexpected debug output %q", out)
	}
}

func TestWithLoggerNilAndFuncAdapter(t *testing.T) {
	cfg := applyOptions([]Option{WithLogger(nil)})
	cfg.logger.LogBootstrap(BootstrapLogEvent{Err: errors.New("ignored")})

	var nilFunc BootstrapLoggerFunc
	nilFunc.LogBootstrap(BootstrapLogEvent{})
}

func TestSlogLoggerWarnsOnActivityFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	logger.LogBootstrap(BootstrapLogEvent{RunID: "r", Stage: StageActivity, Name: "jsmodules.module.registered", Err: errors.New("sink offline")})

	out := buf.String()
	for _, want := range []string{"level=WARN", `msg="Activity hook failed"`, "name=jsmodules.module.registered", `error="sink offline"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
