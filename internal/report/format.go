package report

import (
	"strconv"
	"time"

	"github.com/fuelwatch/backend/internal/flight"
)

// timestampLayout matches the report output of the reference console: C
// asctime, which Go spells time.ANSIC.
const timestampLayout = time.ANSIC

// num renders floats with shortest-round-trip precision, so 0.5 prints as
// "0.5", not "0.500000".
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Connected formats the session-opened line.
func Connected(id string) string {
	return "Connected client, airplane ID: " + id
}

// Consumption formats the per-reading rate line.
func Consumption(ev flight.Event) string {
	return "Airplane " + ev.SessionID +
		" | " + ev.Timestamp.Format(timestampLayout) +
		" Fuel Remaining: " + num(ev.FuelRemaining) +
		" | Current Consumption: " + num(ev.Rate) + " fuel/sec"
}

// ParseFailure formats the rejected-record line, carrying the raw record so
// bad client data can be diagnosed from the log.
func ParseFailure(raw string) string {
	return "Failed to parse telemetry data: " + raw
}

// FlightEnded formats the end-of-session summary line.
func FlightEnded(sum flight.Summary) string {
	return "Flight for airplane " + sum.SessionID +
		" ended. Average Fuel Consumption: " + num(sum.AverageRate) + " fuel/sec"
}
