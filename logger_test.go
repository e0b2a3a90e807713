package contour

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestNopHandler(t *testing.T) {
	var h slog.Handler = nopHandler{}
	ctx := context.Background()
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(ctx, level) {
			t.Errorf("Enabled(%v) = true", level)
		}
	}
	if err := h.Handle(ctx, slog.Record{}); err != nil {
		t.Errorf("Handle() = %v", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.Float64("threshold", 1)}).(nopHandler); !ok {
		t.Error("WithAttrs() left the nop handler")
	}
	if _, ok := h.WithGroup("band").(nopHandler); !ok {
		t.Error("WithGroup() left the nop handler")
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil after SetLogger(nil)")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left an enabled logger")
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(custom)
	if Logger() != custom {
		t.Fatal("Logger() is not the logger passed to SetLogger")
	}

	if _, err := Extract(peakGrid(t), Thresholds{5}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "band extracted") || !strings.Contains(out, "threshold=5") {
		t.Errorf("extraction was not logged: %s", out)
	}
}

func TestLoggerRace(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	g := peakGrid(t)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
				SetLogger(nil)
				return
			}
			if _, err := Run(g, Thresholds{2, 5, 8}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}
