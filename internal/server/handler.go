// Package server owns the telemetry listener: the accept loop and the
// per-connection session pipeline (framer, parser, consumption tracker).
package server

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/fuelwatch/backend/internal/flight"
	"github.com/fuelwatch/backend/internal/report"
	"github.com/fuelwatch/backend/internal/session"
	"github.com/fuelwatch/backend/internal/telemetry"
)

// DefaultReadBuffer is the per-connection receive chunk size.
const DefaultReadBuffer = 128

// Handler runs one flight session per connection. All session state is owned
// by the goroutine calling Handle; the sink and store are the only shared
// resources and both serialize internally.
type Handler struct {
	sink       report.Sink
	store      *session.Store
	readBuffer int
}

func NewHandler(sink report.Sink, store *session.Store, readBuffer int) *Handler {
	if readBuffer <= 0 {
		readBuffer = DefaultReadBuffer
	}
	return &Handler{sink: sink, store: store, readBuffer: readBuffer}
}

// Handle drives a connection through its whole life: ID line, telemetry
// stream, final summary. It returns when the peer closes the connection or
// an unrecoverable read error occurs.
func (h *Handler) Handle(conn io.ReadCloser, remoteAddr string) {
	defer conn.Close()
	h.run(conn, remoteAddr)
}

func (h *Handler) run(r io.Reader, remoteAddr string) {
	framer := &telemetry.Framer{}
	buf := make([]byte, h.readBuffer)

	var (
		tracker *flight.Tracker
		state   *session.SessionState
	)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			for record := range framer.Feed(buf[:n]) {
				if tracker == nil {
					// First complete line is the airplane ID; any
					// remainder of the chunk is already telemetry.
					tracker = flight.NewTracker(record)
					now := time.Now()
					state = &session.SessionState{
						ID:         record,
						RemoteAddr: remoteAddr,
						StartedAt:  now,
						LastSeenAt: now,
					}
					h.store.Update(state)
					h.sink.Emit(report.Connected(record))
					continue
				}
				h.handleRecord(tracker, state, record)
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("read error from %s: %v", remoteAddr, err)
			}
			break
		}
	}

	// Whatever is still buffered in the framer has no trailing newline and
	// is dropped as incomplete. A disconnect before a complete ID line
	// discards the session without any output.
	if tracker == nil {
		return
	}

	sum := tracker.Finalize()
	now := time.Now()
	state.Done = true
	state.AverageRate = sum.AverageRate
	state.CompletedAt = &now
	h.store.Update(state)
	h.sink.Emit(report.FlightEnded(sum))
}

// handleRecord runs one raw record through parse and accept. Blank records
// are skipped, malformed ones reported and skipped; neither ends the session.
func (h *Handler) handleRecord(tracker *flight.Tracker, state *session.SessionState, record string) {
	if strings.TrimSpace(record) == "" {
		return
	}

	reading, err := telemetry.Parse(record)
	if err != nil {
		state.ParseFailures++
		h.store.Update(state)
		h.sink.Emit(report.ParseFailure(record))
		return
	}

	ev, ok := tracker.Accept(reading)

	state.Readings = tracker.Accepted()
	state.LastSeenAt = time.Now()
	state.LastFuel = reading.FuelRemaining
	if ok {
		state.LastRate = ev.Rate
	}
	h.store.Update(state)

	if ok {
		h.sink.Emit(report.Consumption(ev))
	}
}
