package main

import (
	"log"

	"github.com/joho/godotenv"

	"logireport/adapters/excel"
	"logireport/internal"
	"logireport/internal/config"
	"logireport/ui"
	"logireport/ui/services"
)

func main() {
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.Logging.Level), true)
	defer logger.Sync()

	reader := excel.NewDataReader(excel.DefaultReaderConfig(), logger)
	app, err := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, ui.Dependencies{
		Reports:     services.NewReportService(reader, appConfig.Palettes, appConfig.Upload.PreviewRows, logger),
		Render:      services.NewRenderService(),
		MaxUploadMB: appConfig.Upload.MaxUploadMB,
		Logger:      logger,
	})
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Fatal(app.Start())
}
