package cli

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line until it is stopped or its context ends.
type Spinner struct {
	message string
	out     io.Writer
	parent  context.Context

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
	mu     sync.Mutex // serializes writes to out
}

// newSpinner returns a stopped spinner writing to stderr.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext returns a spinner that stops animating when ctx is
// cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	s := &Spinner{message: message, out: os.Stderr, parent: ctx}
	s.ctx, s.cancel = context.WithCancel(ctx)
	return s
}

// Start animates in the background.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.spin()
}

func (s *Spinner) spin() {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			return
		case <-tick.C:
			glyph := spinnerFrames[frame%len(spinnerFrames)]
			s.write("\r" + styleSpinner.Render(glyph) + " " + StyleDim.Render(s.message))
		}
	}
}

func (s *Spinner) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.out, text)
}

// Stop ends the animation and blanks the line. Later calls do nothing.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		s.write("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
	})
}

// StopWithSuccess stops and leaves a success line in place of the spinner.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	newTerminal(s.out).ok("%s", message)
}

// StopWithError stops and leaves a failure line in place of the spinner.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	newTerminal(s.out).fail("%s", message)
}

// Cancelled reports whether the caller's context ended.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
