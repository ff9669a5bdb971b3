package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"INFO":      zerolog.InfoLevel,
		"warning":   zerolog.WarnLevel,
		" error ":   zerolog.ErrorLevel,
		"":          zerolog.DebugLevel,
		"loud":      zerolog.DebugLevel,
		"panic":     zerolog.PanicLevel,
		"warn":      zerolog.WarnLevel,
		"disabled":  zerolog.Disabled,
		"nonsense ": zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuild_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{
		Level:        "info",
		Format:       "json",
		Service:      "skillproof",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})
	l.Debug().Msg("dropped")
	l.Info().Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("want exactly one json line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "kept" || line["service"] != "skillproof" || line["build"] != "test" {
		t.Fatalf("line = %v", line)
	}
	if _, ok := line["component"]; ok {
		t.Fatal("empty component should be omitted")
	}
}

func TestWithRequest_MergesIDs(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-1", "")
	ctx = WithRequest(ctx, "", "viewer-9")

	f := ctx.Value(requestKey{}).(requestFields)
	if f.requestID != "req-1" || f.viewerID != "viewer-9" {
		t.Fatalf("fields = %+v", f)
	}
}

func TestC_AddsRequestFields(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithRequest(context.Background(), "req-1", "viewer-9")
	l := C(ctx).Output(&buf).Sample(&zerolog.BasicSampler{N: 1}).Level(zerolog.InfoLevel)
	l.Info().Msg("scored")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if line["request_id"] != "req-1" || line["viewer_id"] != "viewer-9" {
		t.Fatalf("line = %v", line)
	}
}

func TestNamed(t *testing.T) {
	if Named("") != Get() {
		t.Fatal("empty component should return the root logger")
	}
	var buf bytes.Buffer
	l := Named("maturity").Output(&buf).Level(zerolog.InfoLevel)
	l.Info().Msg("x")
	if !bytes.Contains(buf.Bytes(), []byte(`"component":"maturity"`)) {
		t.Fatalf("missing component in %q", buf.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "svc-b" || !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv = %+v", opt)
	}
}
