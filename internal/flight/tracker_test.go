package flight

import (
	"testing"
	"time"

	"github.com/fuelwatch/backend/internal/telemetry"
)

var flightStart = time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

func reading(offsetSec int, fuel float64) telemetry.Reading {
	return telemetry.Reading{
		Timestamp:     flightStart.Add(time.Duration(offsetSec) * time.Second),
		FuelRemaining: fuel,
	}
}

func TestFirstReadingEmitsNoEvent(t *testing.T) {
	tr := NewTracker("N1")
	if _, ok := tr.Accept(reading(0, 100)); ok {
		t.Error("first reading produced an event")
	}
	if tr.Accepted() != 1 {
		t.Errorf("Accepted() = %d, want 1", tr.Accepted())
	}
}

func TestEventCountIsReadingsMinusOne(t *testing.T) {
	tr := NewTracker("N1")
	events := 0
	for i := 0; i < 10; i++ {
		if _, ok := tr.Accept(reading(i*10, 100-float64(i))); ok {
			events++
		}
	}
	if events != 9 {
		t.Errorf("10 readings produced %d events, want 9", events)
	}
}

func TestRateComputation(t *testing.T) {
	tests := []struct {
		name     string
		prev     telemetry.Reading
		cur      telemetry.Reading
		wantRate float64
	}{
		{"SteadyBurn", reading(0, 100), reading(10, 95), 0.5},
		{"FasterBurn", reading(0, 95), reading(10, 88), 0.7},
		{"FuelIncreasedNegativeRate", reading(0, 90), reading(10, 95), -0.5},
		{"ZeroElapsed", reading(0, 100), reading(0, 50), 0},
		{"NegativeElapsed", reading(10, 100), reading(0, 50), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker("N1")
			tr.Accept(tt.prev)
			ev, ok := tr.Accept(tt.cur)
			if !ok {
				t.Fatal("second reading produced no event")
			}
			if ev.Rate != tt.wantRate {
				t.Errorf("rate = %v, want %v", ev.Rate, tt.wantRate)
			}
			if ev.FuelRemaining != tt.cur.FuelRemaining {
				t.Errorf("event fuel = %v, want %v", ev.FuelRemaining, tt.cur.FuelRemaining)
			}
		})
	}
}

func TestLastAlwaysTracksNewestReading(t *testing.T) {
	tr := NewTracker("N1")
	tr.Accept(reading(0, 100))
	tr.Accept(reading(0, 50)) // zero elapsed: rate 0, but last still moves
	ev, _ := tr.Accept(reading(10, 45))
	if ev.Rate != 0.5 {
		t.Errorf("rate after zero-elapsed update = %v, want 0.5", ev.Rate)
	}
}

func TestFinalizeZeroReadings(t *testing.T) {
	tr := NewTracker("N1")
	sum := tr.Finalize()
	if sum.AverageRate != 0 {
		t.Errorf("average with no readings = %v, want 0", sum.AverageRate)
	}
	if sum.SessionID != "N1" {
		t.Errorf("SessionID = %q, want N1", sum.SessionID)
	}
}

func TestFinalizeSingleReading(t *testing.T) {
	tr := NewTracker("N1")
	tr.Accept(reading(0, 100))
	if sum := tr.Finalize(); sum.AverageRate != 0 {
		t.Errorf("average with one reading = %v, want 0", sum.AverageRate)
	}
}

// The canonical flight: (t=0,100), (t=10,95), (t=20,88) must yield step
// rates 0.5 and 0.7 and a session average of (100-88)/20 = 0.6.
func TestCanonicalFlight(t *testing.T) {
	tr := NewTracker("N12AB")

	if _, ok := tr.Accept(reading(0, 100)); ok {
		t.Fatal("first reading produced an event")
	}

	ev, ok := tr.Accept(reading(10, 95))
	if !ok || ev.Rate != 0.5 {
		t.Fatalf("second reading: rate = %v, ok = %v, want 0.5", ev.Rate, ok)
	}

	ev, ok = tr.Accept(reading(20, 88))
	if !ok || ev.Rate != 0.7 {
		t.Fatalf("third reading: rate = %v, ok = %v, want 0.7", ev.Rate, ok)
	}

	sum := tr.Finalize()
	if sum.AverageRate != 0.6 {
		t.Errorf("average = %v, want 0.6", sum.AverageRate)
	}
}
