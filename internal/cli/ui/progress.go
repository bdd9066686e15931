package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on one terminal line until stopped. The
// message may be changed while it runs.
type Spinner struct {
	writer   io.Writer
	interval time.Duration
	noColor  bool

	mu      sync.Mutex
	message string
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a stopped spinner. A zero interval means 100ms.
func NewSpinner(w io.Writer, message string, interval time.Duration, noColor bool) *Spinner {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Spinner{writer: w, message: message, interval: interval, noColor: noColor}
}

// Start begins the animation. Starting a running spinner does nothing.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.animate(s.done, s.stopped)
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done, stopped := s.done, s.stopped
	s.done, s.stopped = nil, nil
	s.mu.Unlock()

	if done == nil {
		return
	}
	close(done)
	<-stopped
	fmt.Fprint(s.writer, "\r\033[K")
}

// SetMessage changes the text shown next to the spinner
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *Spinner) animate(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	cyan := color.New(color.FgCyan)
	if s.noColor {
		cyan.DisableColor()
	}

	for frame := 0; ; frame = (frame + 1) % len(spinnerFrames) {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			msg := s.message
			s.mu.Unlock()
			cyan.Fprintf(s.writer, "\r%s %s", spinnerFrames[frame], msg)
		}
	}
}

// ProgressBar draws progress toward a known total, such as iterations of a
// run toward its iteration limit
type ProgressBar struct {
	writer  io.Writer
	total   int
	width   int
	noColor bool
	current int
}

// NewProgressBar creates a bar of the given width. A zero width means 30.
func NewProgressBar(w io.Writer, total, width int, noColor bool) *ProgressBar {
	if width <= 0 {
		width = 30
	}
	if total < 1 {
		total = 1
	}
	return &ProgressBar{writer: w, total: total, width: width, noColor: noColor}
}

// Set moves the bar to current, clamped to total, and redraws it with
// detail appended
func (p *ProgressBar) Set(current int, detail string) {
	p.current = max(0, min(current, p.total))

	filled := p.width * p.current / p.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	green := color.New(color.FgGreen)
	if p.noColor {
		green.DisableColor()
	}
	fmt.Fprint(p.writer, "\r\033[K")
	green.Fprint(p.writer, bar)
	fmt.Fprintf(p.writer, " %d/%d", p.current, p.total)
	if detail != "" {
		fmt.Fprintf(p.writer, " %s", detail)
	}
}

// Current returns the last position set
func (p *ProgressBar) Current() int {
	return p.current
}

// Finish ends the bar's line
func (p *ProgressBar) Finish() {
	fmt.Fprintln(p.writer)
}
