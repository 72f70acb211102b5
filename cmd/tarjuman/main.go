package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hassanrz/tarjuman/internal/config"
	"github.com/hassanrz/tarjuman/usecase"
)

func main() {
	// Load .env if present, otherwise the process environment is used.
	_ = godotenv.Load()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := config.Load()
	if err := config.Validate(cfg); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}
	if err := cfg.InjectToolPath(); err != nil {
		logger.Fatal("Failed to inject tool path", zap.Error(err))
	}

	ctx := context.Background()

	// Model bundle initialization is fatal on failure: there is no
	// partial-capability mode.
	bundle, err := usecase.NewBundle(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Model bundle initialization failed", zap.Error(err))
	}

	pipeline := usecase.NewPipeline(bundle, cfg, logger)

	run, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("Pipeline aborted",
			zap.String("runID", run.ID),
			zap.String("failedStage", string(run.FailedStage)),
			zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("Done",
		zap.String("runID", run.ID),
		zap.String("urdu", run.UrduText),
		zap.String("english", run.EnglishText))
}
