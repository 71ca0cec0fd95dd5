// astrodb-server loads the celestial-object catalog described by its
// configuration, seals it, and serves it over a combined REST +
// WebSocket HTTP server behind one net/http.Server, following the
// teacher's cmd/server signal-driven graceful-shutdown loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/draco-astrodb/astrodb/internal/api/rest"
	"github.com/draco-astrodb/astrodb/internal/api/websocket"
	"github.com/draco-astrodb/astrodb/internal/astrodb"
	"github.com/draco-astrodb/astrodb/internal/bookmarks"
	"github.com/draco-astrodb/astrodb/internal/catalogload"
	"github.com/draco-astrodb/astrodb/internal/config"
	"github.com/draco-astrodb/astrodb/internal/eventbus"
)

func main() {
	configPath := flag.String("config", "astrodb.yaml", "path to YAML configuration")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("warning: %v; using defaults", err)
		cfg = config.Default()
	}

	bus := eventbus.NewInMemoryBus()
	store := bookmarks.NewInMemoryStore()

	server := rest.NewServer(rest.Config{Address: cfg.Address, Debug: cfg.Debug}, bus, store)

	if hasSources(cfg.Sources) {
		builder := astrodb.NewBuilder(bus)
		if _, err := catalogload.FromConfig(builder, cfg.Sources, func(msg string) {
			log.Println(msg)
		}); err != nil {
			return fmt.Errorf("load sources: %w", err)
		}
		db, err := builder.Seal(ctx)
		if err != nil {
			return fmt.Errorf("seal: %w", err)
		}
		server.SetDatabase(db)
		stars, dsos := db.Count()
		log.Printf("catalog sealed: %d stars, %d DSOs", stars, dsos)
	} else {
		log.Println("no sources configured; catalog starts empty, populate via POST /api/v1/catalog/import")
	}

	hub := websocket.NewHub()
	go hub.Run(ctx)
	if err := hub.BridgeEventBus(ctx, bus); err != nil {
		return fmt.Errorf("bridge event bus: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", server.Handler())
	mux.HandleFunc("/ws", hub.HandleWebSocket)

	httpServer := &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	log.Printf("astrodb-server listening on %s", cfg.Address)
	log.Println("API endpoints:")
	log.Println("  GET  /api/v1/health")
	log.Println("  GET  /api/v1/objects/:number")
	log.Println("  GET  /api/v1/objects/by-name")
	log.Println("  GET  /api/v1/objects/complete")
	log.Println("  GET  /api/v1/objects/visible")
	log.Println("  GET  /api/v1/objects/close")
	log.Println("  POST /api/v1/catalog/import")
	log.Println("  POST /api/v1/catalog/seal")
	log.Println("  GET  /api/v1/bookmarks")
	log.Println("  WS   /ws")

	select {
	case <-ctx.Done():
		log.Println("shutting down gracefully...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

func hasSources(s config.Sources) bool {
	return s.StarsBin != "" || len(s.StarsSTC) > 0 || len(s.DSODSC) > 0 || len(s.NamesTxt) > 0 || len(s.XIndex) > 0
}
