package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"adorder-be/internal/bootstrap"
	"adorder-be/internal/config"
	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/server"
	"adorder-be/internal/tracer"
	"adorder-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(cfg.App.OtelEnabled, cfg.App.OtelEndpoint, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(ctx, gormDB, cfg, sysLogger)

	// 5. Start Background Services
	go func() {
		if err := container.ConsumerService.Consume(ctx); err != nil {
			sysLogger.Error("MAIN", "Mail consumer stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	container.NotificationService.Start(ctx)

	// 6. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		sysLogger.Info("MAIN", "Shutting down", nil)
		cancel()
		_ = srv.Shutdown()
	}()

	// 7. Run Server
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
