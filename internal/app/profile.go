package app

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"time"
)

// profiler appends per-section timings of the capture pipeline to a CSV
// file. It is only touched by the capture goroutine. A nil profiler is a
// no-op.
type profiler struct {
	file  *os.File
	w     *bufio.Writer
	frame uint64
	start time.Time
	last  time.Time
}

func newProfiler(path string, logger *log.Logger) *profiler {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		if logger != nil {
			logger.Printf("profiler disabled: %v", err)
		}
		return nil
	}
	p := &profiler{file: f, w: bufio.NewWriter(f)}
	fmt.Fprintln(p.w, "timestamp,frame,section,delta_ms")
	return p
}

func (p *profiler) beginFrame() {
	if p == nil {
		return
	}
	p.frame++
	now := time.Now()
	p.start = now
	p.last = now
	p.write(now, "frame_start", 0)
}

func (p *profiler) markSection(name string) {
	if p == nil {
		return
	}
	now := time.Now()
	p.write(now, name, now.Sub(p.last))
	p.last = now
}

func (p *profiler) endFrame() {
	if p == nil {
		return
	}
	now := time.Now()
	p.write(now, "frame_total", now.Sub(p.start))
}

func (p *profiler) Close() error {
	if p == nil {
		return nil
	}
	if err := p.w.Flush(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}

func (p *profiler) write(now time.Time, section string, d time.Duration) {
	fmt.Fprintf(p.w, "%s,%d,%s,%.3f\n", now.Format(time.RFC3339Nano), p.frame, section, float64(d)/float64(time.Millisecond))
}
