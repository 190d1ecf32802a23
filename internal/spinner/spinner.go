// Package spinner draws a one-line progress indicator on a terminal.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// DefaultInterval is the time between frames.
const DefaultInterval = 80 * time.Millisecond

// Spinner redraws an animated frame and a message on w until stopped.
type Spinner struct {
	w        io.Writer
	interval time.Duration

	mu  sync.Mutex
	msg string

	done     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once
}

// Start displays an animated spinner with the given message on w.
func Start(w io.Writer, message string) *Spinner {
	return StartInterval(w, message, DefaultInterval)
}

// StartInterval is Start with an explicit frame interval.
func StartInterval(w io.Writer, message string, interval time.Duration) *Spinner {
	s := &Spinner{
		w:        w,
		interval: interval,
		msg:      message,
		done:     make(chan struct{}),
		cleared:  make(chan struct{}),
	}
	go s.loop()
	return s
}

// Update replaces the message shown next to the frame.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.msg = message
	s.mu.Unlock()
}

// Stop clears the line and waits for the spinner goroutine to exit. It is
// safe to call more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.cleared
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	i, width := 0, 0
	for {
		select {
		case <-s.done:
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width)) //nolint:errcheck
			close(s.cleared)
			return
		case <-ticker.C:
			s.mu.Lock()
			line := frames[i%len(frames)] + " " + s.msg
			s.mu.Unlock()

			pad := ""
			if w := runewidth.StringWidth(line); w < width {
				pad = strings.Repeat(" ", width-w)
			} else {
				width = w
			}
			fmt.Fprintf(s.w, "\r%s%s", line, pad) //nolint:errcheck
			i++
		}
	}
}
