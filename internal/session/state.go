package session

import "time"

// SessionState is the observer-facing snapshot of one flight session. The
// authoritative consumption state lives inside the owning handler's tracker;
// the store only holds these copies so the HTTP/WebSocket observers can list
// live flights.
type SessionState struct {
	ID            string     `json:"id"`
	RemoteAddr    string     `json:"remoteAddr,omitempty"`
	StartedAt     time.Time  `json:"startedAt"`
	LastSeenAt    time.Time  `json:"lastSeenAt"`
	Readings      int        `json:"readings"`
	ParseFailures int        `json:"parseFailures"`
	LastFuel      float64    `json:"lastFuel"`
	LastRate      float64    `json:"lastRate"`
	Done          bool       `json:"done"`
	AverageRate   float64    `json:"averageRate"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// Clone returns a deep copy so the caller can mutate it independently.
func (s *SessionState) Clone() *SessionState {
	c := *s
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
