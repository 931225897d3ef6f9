package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"logireport/adapters/excel"
	"logireport/internal"
	"logireport/internal/config"
	"logireport/ui"
	"logireport/ui/services"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(appConfig.Server.GinMode)
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level), appConfig.Server.GinMode != gin.ReleaseMode)
	defer logger.Sync()
	internal.DefaultLogger = logger

	reader := excel.NewDataReader(excel.DefaultReaderConfig(), logger)
	server, err := ui.NewServer(ui.Dependencies{
		Reports:     services.NewReportService(reader, appConfig.Palettes, appConfig.Upload.PreviewRows, logger),
		Render:      services.NewRenderService(),
		MaxUploadMB: appConfig.Upload.MaxUploadMB,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(":" + appConfig.Server.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down, waiting up to %s for in-flight uploads", appConfig.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
