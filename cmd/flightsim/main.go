// flightsim is a telemetry client for exercising the server: it flies
// synthetic flights or replays a recorded telemetry CSV file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/fuelwatch/backend/internal/mock"
	"github.com/fuelwatch/backend/internal/telemetry"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:27000", "Server address")
	planes := flag.Int("planes", 3, "Number of concurrent synthetic flights")
	readings := flag.Int("readings", 20, "Telemetry readings per flight")
	interval := flag.Duration("interval", 250*time.Millisecond, "Delay between readings")
	step := flag.Duration("step", 10*time.Second, "Simulated time between readings")
	file := flag.String("file", "", "Replay a recorded telemetry CSV instead of simulating")
	id := flag.String("id", "N42REPLAY", "Airplane ID used for -file replay")
	flag.Parse()

	if *file != "" {
		if err := replay(*addr, *id, *file, *interval); err != nil {
			log.Fatalf("Replay failed: %v", err)
		}
		return
	}

	profiles := mock.DefaultProfiles(*planes)
	var wg sync.WaitGroup
	for i, p := range profiles {
		wg.Add(1)
		go func(i int, p mock.Profile) {
			defer wg.Done()
			if err := fly(*addr, p, int64(i+1), *readings, *interval, *step); err != nil {
				log.Printf("Flight %s failed: %v", p.ID, err)
			}
		}(i, p)
	}
	wg.Wait()
}

func fly(addr string, p mock.Profile, seed int64, readings int, interval, step time.Duration) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", p.ID); err != nil {
		return err
	}

	f := mock.NewFlight(p, time.Now(), seed)
	for i := 0; i < readings; i++ {
		if _, err := fmt.Fprintf(conn, "%s\n", f.Next(step)); err != nil {
			return err
		}
		time.Sleep(interval)
	}
	return nil
}

// replay streams a recorded telemetry file line by line, stripping the
// recorder's header from the first line.
func replay(addr, id, path string, interval time.Duration) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", id); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line, _ = telemetry.StripFileHeader(line)
			first = false
		}
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			return err
		}
		time.Sleep(interval)
	}
	return scanner.Err()
}
