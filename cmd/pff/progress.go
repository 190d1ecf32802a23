package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/pffbench/pff/internal/orchestration"
	"github.com/pffbench/pff/internal/spinner"
)

func verboseProgressListener(w io.Writer) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventSizeStart:
			fmt.Fprintf(w, "== %d-bit inputs ==\n", event.SizeBits)
		case orchestration.EventRunStart:
			fmt.Fprintf(w, "Running %s on %d trial(s) of %d bits...\n", event.Algorithm, event.TotalTrials, event.SizeBits)
		case orchestration.EventTrialComplete:
			icon := "✓"
			suffix := ""
			if !event.Succeeded {
				icon = "✗"
				suffix = " " + event.ErrorKind
			}
			fmt.Fprintf(w, "  %s [%d/%d] %v%s\n", icon, event.Trial, event.TotalTrials, event.Elapsed, suffix)
		case orchestration.EventRunComplete:
			fmt.Fprintf(w, "Run complete in %v\n\n", event.Elapsed)
		case orchestration.EventSweepStopped:
			fmt.Fprintln(w, "Sweep stopped before the next size.")
		}
	}
}

func simpleProgressListener(w io.Writer) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		switch event.EventType {
		case orchestration.EventSizeComplete:
			fmt.Fprintf(w, "✓ %d bits done\n", event.SizeBits)
		case orchestration.EventSweepStopped:
			fmt.Fprintln(w, "✗ sweep stopped")
		}
	}
}

// lockedWriter serializes writes from listeners called by concurrent runs.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func spinnerProgressListener(s *spinner.Spinner) orchestration.ProgressListener {
	return func(event orchestration.ProgressEvent) {
		if event.EventType == orchestration.EventTrialStart {
			s.Update(fmt.Sprintf("%s %d-bit: trial %d/%d", event.Algorithm, event.SizeBits, event.Trial, event.TotalTrials))
		}
	}
}
