package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer for reads while the spinner writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerAnimatesAndClears(t *testing.T) {
	var out syncBuffer
	s := startSpinnerTo(context.Background(), &out, "Rendering Amazing Grace...")
	time.Sleep(300 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Rendering Amazing Grace...") {
		t.Errorf("spinner output %q should contain the message", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Error("spinner should clear its line on stop")
	}
}

func TestSpinnerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var out syncBuffer
	s := startSpinnerTo(ctx, &out, "Fetching...")

	select {
	case <-s.stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("spinner kept running after its context ended")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := startSpinnerTo(context.Background(), io.Discard, "Loading...")
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessage(t *testing.T) {
	var buf bytes.Buffer
	uiOut = &buf
	defer func() { uiOut = io.Discard }()

	startSpinnerTo(context.Background(), io.Discard, "Rendering...").StopWithSuccess("Rendered")
	startSpinnerTo(context.Background(), io.Discard, "Rendering...").StopWithError("Render failed")

	out := buf.String()
	for _, want := range []string{iconSuccess + " Rendered", iconError + " Render failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
