package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"milk-platform-be/internal/bootstrap"
	"milk-platform-be/internal/config"
	"milk-platform-be/internal/server"
	"milk-platform-be/internal/tracer"
	"milk-platform-be/pkg/database"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load configuration
	cfg := config.Load()
	if cfg.Auth.JwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	shutdownTracer := tracer.InitTracer(cfg.Tracing)
	defer shutdownTracer(context.Background())

	// 2. Initialize database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.App.IsProduction())
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	// 4. Background services
	g.Go(func() error {
		container.WebSocketHub.Run(ctx)
		return nil
	})

	if err := container.NotificationConsumer.Consume(ctx); err != nil {
		log.Fatalf("Failed to start notification consumer: %v", err)
	}

	if err := container.SweepScheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start subscription sweep: %v", err)
	}

	if container.NatsSubscriber != nil {
		if err := container.NatsSubscriber.Subscribe(ctx, "events.>", "milk-audit", container.EventAuditor.Handle); err != nil {
			log.Printf("[WARN] Event audit subscriber not started: %v", err)
		}
	}

	// 5. HTTP server
	srv := server.New(cfg, container)
	g.Go(srv.Run)

	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := container.SweepScheduler.Shutdown(); err != nil {
			log.Printf("[WARN] Sweep scheduler shutdown: %v", err)
		}
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
