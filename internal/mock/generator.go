// Package mock generates synthetic flight telemetry for load and
// integration testing against a live server.
package mock

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/fuelwatch/backend/internal/telemetry"
)

// Profile describes one synthetic flight.
type Profile struct {
	ID             string
	StartFuel      float64
	BurnPerSec     float64 // nominal consumption rate
	Jitter         float64 // max random fuel wobble per reading
	MalformedEvery int     // every Nth line is garbage; 0 disables
}

// DefaultProfiles returns n flights with varied burn behavior. Every third
// flight is "faulty" and injects a malformed line now and then, which
// exercises the server's parse-failure path.
func DefaultProfiles(n int) []Profile {
	profiles := make([]Profile, 0, n)
	for i := 0; i < n; i++ {
		p := Profile{
			ID:         fmt.Sprintf("N%03dFW", 100+i),
			StartFuel:  5000 + float64(i)*250,
			BurnPerSec: 0.4 + 0.15*float64(i%5),
			Jitter:     0.05,
		}
		if i%3 == 2 {
			p.MalformedEvery = 7
		}
		profiles = append(profiles, p)
	}
	return profiles
}

// Flight steps a profile through simulated time and renders wire-format
// telemetry lines.
type Flight struct {
	profile Profile
	rng     *rand.Rand
	clock   time.Time
	fuel    float64
	emitted int
}

func NewFlight(p Profile, start time.Time, seed int64) *Flight {
	return &Flight{
		profile: p,
		rng:     rand.New(rand.NewSource(seed)),
		clock:   start,
		fuel:    p.StartFuel,
	}
}

// Next advances simulated time by step and returns the next telemetry line
// (without the trailing newline). Faulty profiles periodically return a line
// the server cannot parse.
func (f *Flight) Next(step time.Duration) string {
	f.clock = f.clock.Add(step)
	f.fuel -= f.profile.BurnPerSec * step.Seconds()
	if f.profile.Jitter > 0 {
		f.fuel += (f.rng.Float64() - 0.5) * f.profile.Jitter
	}
	if f.fuel < 0 {
		f.fuel = 0
	}
	f.emitted++

	if f.profile.MalformedEvery > 0 && f.emitted%f.profile.MalformedEvery == 0 {
		return "SENSOR FAULT " + strconv.Itoa(f.emitted)
	}

	return f.clock.Format(telemetry.TimestampLayout) + "," +
		strconv.FormatFloat(f.fuel, 'f', 2, 64)
}

// ID returns the profile's airplane ID.
func (f *Flight) ID() string {
	return f.profile.ID
}
