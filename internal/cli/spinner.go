package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a status message on stderr while a fetch or render
// runs. It clears itself when stopped or when its context ends.
type Spinner struct {
	message string
	out     io.Writer
	frames  spinner.Spinner

	stop    context.CancelFunc
	stopped chan struct{}
	mu      sync.Mutex
}

// startSpinner starts animating message until Stop is called or ctx ends.
func startSpinner(ctx context.Context, message string) *Spinner {
	return startSpinnerTo(ctx, os.Stderr, message)
}

func startSpinnerTo(ctx context.Context, out io.Writer, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &Spinner{
		message: message,
		out:     out,
		frames:  spinner.MiniDot,
		stop:    cancel,
		stopped: make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *Spinner) run(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			frame := s.frames.Frames[i%len(s.frames.Frames)]
			s.write(fmt.Sprintf("\r%s %s", styleSpinner.Render(frame), styleDim.Render(s.message)))
		}
	}
}

// Stop halts the animation and waits for the line to be cleared. Calling it
// again is a no-op.
func (s *Spinner) Stop() {
	s.stop()
	<-s.stopped
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints a failure line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

func (s *Spinner) clearLine() {
	s.write("\r" + strings.Repeat(" ", len([]rune(s.message))+4) + "\r")
}

func (s *Spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.out, text)
}
