package telemetry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the wire timestamp format: day_month_year clock time,
// digits without mandatory leading zeros (e.g. "7_3_2025 14:30:05").
const TimestampLayout = "2_1_2006 15:04:05"

// FileHeader prefixes the first line of recorded telemetry CSV files. It is
// a recording artifact, not part of the live wire protocol; clients strip it
// before transmission.
const FileHeader = "FUEL TOTAL QUANTITY,"

// Parse failure reasons. A failed record is reported and skipped; it never
// terminates the session.
var (
	ErrFieldCount = errors.New("telemetry: wrong field count")
	ErrTimestamp  = errors.New("telemetry: bad timestamp")
	ErrFuelValue  = errors.New("telemetry: fuel value not a finite number")
)

// Reading is one validated telemetry record. Immutable once parsed.
type Reading struct {
	Timestamp     time.Time
	FuelRemaining float64
}

// Parse converts one raw record into a Reading. The record layout is
// "<timestamp>,<fuel>" with optional surrounding whitespace. Parse is pure:
// it touches no shared state and is safe to call from any goroutine.
func Parse(record string) (Reading, error) {
	trimmed := strings.TrimSpace(record)

	tsField, fuelField, found := strings.Cut(trimmed, ",")
	if !found || strings.Contains(fuelField, ",") {
		return Reading{}, fmt.Errorf("%w: %q", ErrFieldCount, record)
	}

	ts, err := time.Parse(TimestampLayout, strings.TrimSpace(tsField))
	if err != nil {
		return Reading{}, fmt.Errorf("%w: %q", ErrTimestamp, tsField)
	}

	fuel, err := strconv.ParseFloat(strings.TrimSpace(fuelField), 64)
	if err != nil || math.IsNaN(fuel) || math.IsInf(fuel, 0) {
		return Reading{}, fmt.Errorf("%w: %q", ErrFuelValue, fuelField)
	}

	return Reading{Timestamp: ts, FuelRemaining: fuel}, nil
}

// StripFileHeader removes the recorded-file header from line if present.
// The second return value reports whether a header was found.
func StripFileHeader(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, FileHeader); ok {
		return rest, true
	}
	return line, false
}
