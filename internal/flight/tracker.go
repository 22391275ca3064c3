// Package flight carries the per-session fuel consumption math. A Tracker
// folds the stream of validated readings for one flight into per-step
// consumption events and, at disconnect, the session average.
package flight

import (
	"time"

	"github.com/fuelwatch/backend/internal/telemetry"
)

// Event is the instantaneous consumption computed from one accepted reading
// and its predecessor. Ephemeral: emitted to the reporting sink, never stored.
type Event struct {
	SessionID     string
	Timestamp     time.Time
	FuelRemaining float64
	Rate          float64 // fuel units per second; negative if fuel increased
}

// Summary is emitted exactly once, when the session ends.
type Summary struct {
	SessionID   string
	AverageRate float64
}

// Tracker accumulates consumption state for a single flight session. It is
// owned exclusively by one session handler and needs no locking.
type Tracker struct {
	id        string
	started   bool
	startTime time.Time
	startFuel float64
	lastTime  time.Time
	lastFuel  float64
	accepted  int
}

func NewTracker(sessionID string) *Tracker {
	return &Tracker{id: sessionID}
}

// Accept folds one reading into the session. The first reading establishes
// the start point and produces no event; every later reading produces an
// event whose rate is fuel consumed per elapsed second. Non-positive elapsed
// time (duplicate or out-of-order timestamps) yields rate 0 rather than an
// error or a division by zero. Fuel that increased passes through as a
// negative rate.
func (t *Tracker) Accept(r telemetry.Reading) (Event, bool) {
	t.accepted++

	if !t.started {
		t.started = true
		t.startTime = r.Timestamp
		t.startFuel = r.FuelRemaining
		t.lastTime = r.Timestamp
		t.lastFuel = r.FuelRemaining
		return Event{}, false
	}

	consumed := t.lastFuel - r.FuelRemaining
	elapsed := r.Timestamp.Sub(t.lastTime).Seconds()
	rate := 0.0
	if elapsed > 0 {
		rate = consumed / elapsed
	}

	t.lastTime = r.Timestamp
	t.lastFuel = r.FuelRemaining

	return Event{
		SessionID:     t.id,
		Timestamp:     r.Timestamp,
		FuelRemaining: r.FuelRemaining,
		Rate:          rate,
	}, true
}

// Finalize computes the whole-session average. Safe to call with zero or one
// accepted readings: start and last coincide, total time is zero, and the
// average falls back to 0.
func (t *Tracker) Finalize() Summary {
	totalFuel := t.startFuel - t.lastFuel
	totalTime := t.lastTime.Sub(t.startTime).Seconds()
	avg := 0.0
	if totalTime > 0 {
		avg = totalFuel / totalTime
	}
	return Summary{SessionID: t.id, AverageRate: avg}
}

// Accepted reports how many readings the tracker has folded in.
func (t *Tracker) Accepted() int {
	return t.accepted
}
