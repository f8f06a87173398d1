// Package profiling records nested timing spans and drives pprof output for
// dndctl's --timing, --cpu-profile and --mem-profile flags.
package profiling

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stopper ends a span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	profiler *Profiler
}

func (s *span) Stop() {
	s.profiler.endSpan(s)
}

// Profiler is a tree of timing spans. Spans started while another span is
// open become its children. The zero value is disabled.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	stack   []*span
	now     func() time.Time
}

// New returns an enabled profiler.
func New() *Profiler {
	p := &Profiler{}
	p.Enable()
	return p
}

var defaultProfiler = &Profiler{}

// Enable turns on the process-wide profiler.
func Enable() { defaultProfiler.Enable() }

// Start opens a span on the process-wide profiler.
func Start(name string) Stopper { return defaultProfiler.Start(name) }

// Summarize writes the process-wide profile.
func Summarize(w io.Writer) { defaultProfiler.Summarize(w) }

// Enable starts recording. Calling it twice keeps the existing tree.
func (p *Profiler) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return
	}
	if p.now == nil {
		p.now = time.Now
	}
	p.enabled = true
	p.root = &span{name: "root", start: p.now(), profiler: p}
	p.stack = []*span{p.root}
}

// Start opens a span. It returns a no-op Stopper while disabled.
func (p *Profiler) Start(name string) Stopper {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return noopStopper{}
	}
	parent := p.stack[len(p.stack)-1]
	s := &span{name: name, start: p.now(), profiler: p}
	parent.children = append(parent.children, s)
	p.stack = append(p.stack, s)
	return s
}

// endSpan closes s and every span opened after it.
func (p *Profiler) endSpan(s *span) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s.duration = p.now().Sub(s.start)
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i] == s {
			p.stack = p.stack[:i]
			return
		}
	}
}

// Summarize writes the span tree with each span's share of the total.
func (p *Profiler) Summarize(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return
	}
	total := p.now().Sub(p.root.start)

	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, child := range p.root.children {
		printSpan(w, child, 0, total)
	}
	fmt.Fprintln(w, "----------------------")
}

// printSpan writes s and its children, which are kept in start order.
func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	share := 0.0
	if total > 0 {
		share = float64(s.duration) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", strings.Repeat("  ", depth), s.name, s.duration.Round(100*time.Microsecond), share)
	for _, child := range s.children {
		printSpan(w, child, depth+1, total)
	}
}

type noopStopper struct{}

func (noopStopper) Stop() {}
