package server

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
)

// Dispatcher accepts connections and runs one handler goroutine per
// connection. There is deliberately no concurrency cap and no per-session
// timeout: a client holds its goroutine until it disconnects. Unlike a pure
// fire-and-forget spawn, the dispatcher tracks its goroutines so tests and
// shutdown can wait for in-flight sessions.
type Dispatcher struct {
	handler *Handler

	wg        sync.WaitGroup
	mu        sync.Mutex
	completed int
}

func NewDispatcher(h *Handler) *Dispatcher {
	return &Dispatcher{handler: h}
}

// Listen binds the telemetry port. A failure here is fatal to the process;
// the caller decides how loudly to die.
func Listen(host string, port int) (net.Listener, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	log.Printf("Telemetry server listening on %s", addr)
	return ln, nil
}

// Serve accepts connections until ln is closed. Accept errors on a live
// listener are logged and the loop continues; only listener closure ends it.
func (d *Dispatcher) Serve(ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("accept error: %v", err)
			continue
		}

		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.handler.Handle(conn, conn.RemoteAddr().String())
			d.mu.Lock()
			d.completed++
			d.mu.Unlock()
		}()
	}
}

// Wait blocks until every session goroutine spawned so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Completed reports how many session goroutines have run to completion.
func (d *Dispatcher) Completed() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.completed
}
