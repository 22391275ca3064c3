package server

import (
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/fuelwatch/backend/internal/session"
)

// TestDispatcherServesConcurrentClients runs the real accept loop on a
// loopback listener and drives several TCP clients through full sessions.
func TestDispatcherServesConcurrentClients(t *testing.T) {
	sink := &captureSink{}
	store := session.NewStore()
	d := NewDispatcher(NewHandler(sink, store, 0))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	serveDone := make(chan error, 1)
	go func() { serveDone <- d.Serve(ln) }()

	const clients = 5
	for i := 0; i < clients; i++ {
		conn, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		fmt.Fprintf(conn, "TEST%d\n", i)
		fmt.Fprintf(conn, "7_3_2025 12:00:00,100\n")
		fmt.Fprintf(conn, "7_3_2025 12:00:10,95\n")
		conn.Close()
	}

	// Sessions finish asynchronously after the client closes.
	deadline := time.Now().Add(5 * time.Second)
	for d.Completed() < clients {
		if time.Now().After(deadline) {
			t.Fatalf("only %d of %d sessions completed", d.Completed(), clients)
		}
		time.Sleep(10 * time.Millisecond)
	}

	ln.Close()
	if err := <-serveDone; err != nil {
		t.Errorf("Serve returned %v after listener close", err)
	}
	d.Wait()

	if store.HandledCount() != clients {
		t.Errorf("HandledCount = %d, want %d", store.HandledCount(), clients)
	}

	ended := 0
	for _, line := range sink.all() {
		if strings.HasPrefix(line, "Flight for airplane TEST") {
			ended++
		}
	}
	if ended != clients {
		t.Errorf("%d summary lines, want %d", ended, clients)
	}
}

func TestListenRejectsBadAddress(t *testing.T) {
	if _, err := Listen("256.256.256.256", 27000); err == nil {
		t.Fatal("Listen on bogus host succeeded")
	}
}
