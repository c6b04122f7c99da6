package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner animates a message on w while a request is in flight.
type Spinner struct {
	w        io.Writer
	message  string
	frames   []string
	interval time.Duration
	done     chan struct{}
	stopped  chan struct{}
	once     sync.Once
	started  bool
}

// NewSpinner creates a new spinner.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:        w,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 100 * time.Millisecond,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start starts the animation in a goroutine.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.message)
			select {
			case <-s.done:
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner and clears the line. Later calls do nothing.
func (s *Spinner) Stop() {
	s.finish("\r\033[K")
}

// Success stops the spinner with a success message.
func (s *Spinner) Success(message string) {
	s.finish(fmt.Sprintf("\r\033[K✓ %s\n", message))
}

// Fail stops the spinner with a failure message.
func (s *Spinner) Fail(message string) {
	s.finish(fmt.Sprintf("\r\033[K✗ %s\n", message))
}

// finish stops the animation once. A spinner that never started writes
// nothing.
func (s *Spinner) finish(final string) {
	s.once.Do(func() {
		close(s.done)
		if !s.started {
			return
		}
		<-s.stopped
		fmt.Fprint(s.w, final)
	})
}
