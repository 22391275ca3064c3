// Package monitor reports the server's own resource usage. The telemetry
// design accepts unbounded concurrent sessions, so the one thing worth
// watching is what that costs the process.
package monitor

import (
	"context"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/fuelwatch/backend/internal/session"
)

// Health is a point-in-time view of the process and its session load.
type Health struct {
	CPUPercent        float64 `json:"cpuPercent"`
	RSSBytes          uint64  `json:"rssBytes"`
	Goroutines        int     `json:"goroutines"`
	ActiveSessions    int     `json:"activeSessions"`
	CompletedSessions int     `json:"completedSessions"`
	UptimeSeconds     float64 `json:"uptimeSeconds"`
}

type Reporter struct {
	store   *session.Store
	proc    *process.Process
	started time.Time
}

func NewReporter(store *session.Store) *Reporter {
	r := &Reporter{store: store, started: time.Now()}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		// Session counters still work without process stats.
		log.Printf("monitor: process stats unavailable: %v", err)
	} else {
		r.proc = proc
	}
	return r
}

// Snapshot gathers a Health sample. Safe for concurrent use; gopsutil calls
// that fail leave their fields zero rather than surfacing an error.
func (r *Reporter) Snapshot() Health {
	h := Health{
		Goroutines:        runtime.NumGoroutine(),
		ActiveSessions:    r.store.ActiveCount(),
		CompletedSessions: r.store.HandledCount(),
		UptimeSeconds:     time.Since(r.started).Seconds(),
	}
	if r.proc != nil {
		if pct, err := r.proc.CPUPercent(); err == nil {
			h.CPUPercent = pct
		}
		if mi, err := r.proc.MemoryInfo(); err == nil && mi != nil {
			h.RSSBytes = mi.RSS
		}
	}
	return h
}

// Run logs a health line every interval until ctx is done.
func (r *Reporter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h := r.Snapshot()
			log.Printf("health: cpu=%.1f%% rss=%.1fMiB goroutines=%d active=%d completed=%d",
				h.CPUPercent, float64(h.RSSBytes)/(1024*1024), h.Goroutines,
				h.ActiveSessions, h.CompletedSessions)
		}
	}
}
