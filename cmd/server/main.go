package main

import (
	"log/slog"
	"os"

	"mdd-api/internal/app"
	"mdd-api/internal/logger"
)

func main() {
	logger.Setup(os.Stdout, slog.LevelInfo, os.Getenv("LOG_FORMAT"))

	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
