package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"RiskCockpit/internal/broadcast"
	"RiskCockpit/internal/config"
	"RiskCockpit/internal/content"
	"RiskCockpit/internal/recorder"
	"RiskCockpit/internal/scheduler"
	"RiskCockpit/internal/session"
	transport "RiskCockpit/internal/transport/http"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] RiskCockpit starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Broadcast: SSE hub for clients plus a log line for the console.
	hub := broadcast.NewHub()
	bc := broadcast.Multi{broadcast.LogBroadcaster{}, hub}

	// Init coordinator
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	coord := session.New(cfg, content.New(), rec, bc, rng)

	// HTTP transport
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	router := transport.NewRouter(coord, hub, cfg.Server.AdminKey)
	router.Register(engine.Group("/api"))

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: engine}

	// Optional autopilot
	var auto *scheduler.Autopilot
	if cfg.Autopilot.Enabled {
		auto = scheduler.NewAutopilot(coord)
		if err := auto.Register(cfg.Autopilot.OpenCron, cfg.Autopilot.CloseCron); err != nil {
			log.Fatalf("[FATAL] register autopilot: %v", err)
		}
		auto.Start()
		defer auto.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("[INFO] shutdown signal received, stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("[FATAL] server: %v", err)
	}
	log.Println("[INFO] RiskCockpit stopped")
}
