package prune

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker tracks and reports progress of a prune run.
type ProgressTracker struct {
	writer         io.Writer
	total          int
	scanned        int
	removed        int
	reportInterval int
	lastReported   int
	startTime      time.Time
	started        bool
	mu             sync.Mutex
}

// NewProgressTracker creates a new progress tracker.
// writer: where to write progress output (typically os.Stderr)
// total: number of items expected to be scanned
// reportInterval: report progress every N scanned items
func NewProgressTracker(writer io.Writer, total, reportInterval int) *ProgressTracker {
	if reportInterval < 1 {
		reportInterval = 1
	}
	return &ProgressTracker{
		writer:         writer,
		total:          total,
		reportInterval: reportInterval,
	}
}

// Start begins tracking progress.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.scanned = 0
	p.removed = 0
	p.lastReported = 0
}

// Add records a processed batch: scanned items, of which removed were pruned.
// The catalog can grow during a run, so scanned may pass the expected total.
func (p *ProgressTracker) Add(scanned, removed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.scanned += scanned
	p.removed += removed
	if p.scanned > p.total {
		p.total = p.scanned
	}

	if p.scanned-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.scanned
	}
}

// Finish prints the final progress line.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer)
}

// Elapsed returns the time elapsed since Start was called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0
	}

	return time.Since(p.startTime)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressTracker) report() {
	elapsed := time.Since(p.startTime)
	rate := 0.0
	if seconds := elapsed.Seconds(); seconds > 0 {
		rate = float64(p.scanned) / seconds
	}

	percentage := 100.0
	if p.total > 0 {
		percentage = float64(p.scanned) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rScanned: %d/%d (%.1f%%) - removed %d - %.1f items/s",
		p.scanned, p.total, percentage, p.removed, rate)
}
