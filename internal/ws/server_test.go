package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fuelwatch/backend/internal/monitor"
	"github.com/fuelwatch/backend/internal/session"
)

func newTestServer() (*Server, *session.Store) {
	store := session.NewStore()
	return NewServer(store, NewBroadcaster(store, 0), monitor.NewReporter(store)), store
}

func TestHandleSessions(t *testing.T) {
	s, store := newTestServer()
	store.Update(&session.SessionState{ID: "N12AB", Readings: 2, LastFuel: 95})

	rec := httptest.NewRecorder()
	s.handleSessions(rec, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []*session.SessionState
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].ID != "N12AB" || got[0].LastFuel != 95 {
		t.Errorf("sessions = %+v", got)
	}
}

func TestHandleHealth(t *testing.T) {
	s, store := newTestServer()
	store.Update(&session.SessionState{ID: "a"})
	store.Update(&session.SessionState{ID: "b", Done: true})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var got monitor.Health
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ActiveSessions != 1 || got.CompletedSessions != 1 {
		t.Errorf("health = %+v", got)
	}
	if got.Goroutines <= 0 {
		t.Errorf("goroutines = %d", got.Goroutines)
	}
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		host   string
		want   bool
	}{
		{"NoOrigin", "", "example.com", true},
		{"SameHost", "http://example.com", "example.com", true},
		{"Localhost", "http://localhost:3000", "example.com", true},
		{"Loopback", "http://127.0.0.1:8080", "example.com", true},
		{"CrossSite", "http://evil.test", "example.com", false},
		{"Garbage", "http://[", "example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := checkOrigin(r); got != tt.want {
				t.Errorf("checkOrigin(origin=%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
