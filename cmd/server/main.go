package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fuelwatch/backend/internal/config"
	"github.com/fuelwatch/backend/internal/monitor"
	"github.com/fuelwatch/backend/internal/report"
	"github.com/fuelwatch/backend/internal/server"
	"github.com/fuelwatch/backend/internal/session"
	"github.com/fuelwatch/backend/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override telemetry port")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}

	store := session.NewStore()
	reporter := monitor.NewReporter(store)

	sink := report.Sink(report.NewWriterSink(os.Stdout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Observer.Enabled {
		broadcaster := ws.NewBroadcaster(store, cfg.Observer.SnapshotInterval.Std())
		sink = report.TeeSink{sink, report.FuncSink(broadcaster.PublishLine)}

		observer := ws.NewServer(store, broadcaster, reporter)
		mux := http.NewServeMux()
		observer.SetupRoutes(mux)
		go func() {
			if err := ws.ListenAndServe(cfg.Observer.Host, cfg.Observer.Port, mux); err != nil {
				log.Printf("Observer server error: %v", err)
			}
		}()
	}

	if cfg.Monitor.Enabled {
		go reporter.Run(ctx, cfg.Monitor.ReportInterval.Std())
	}

	ln, err := server.Listen(cfg.Server.Host, cfg.Server.Port)
	if err != nil {
		log.Fatalf("Telemetry listener error: %v", err)
	}

	// Sessions have no cancellation by design; on a signal the process
	// exits without draining open connections.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		os.Exit(0)
	}()

	handler := server.NewHandler(sink, store, cfg.Server.ReadBuffer)
	dispatcher := server.NewDispatcher(handler)

	if err := dispatcher.Serve(ln); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	dispatcher.Wait()
}
