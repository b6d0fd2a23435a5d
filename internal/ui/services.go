package ui

import (
	"context"

	"go.uber.org/zap"

	"hyperfolio/internal/config"
	"hyperfolio/internal/export"
	"hyperfolio/internal/logger"
	"hyperfolio/internal/tracker"
)

// Services provides screens access to the application's backends.
type Services struct {
	Ctx       context.Context
	Config    *config.Config
	Logger    *zap.Logger
	LogBuffer *logger.LogBuffer
	Tracker   *tracker.Service
	Exporter  *export.SnapshotExporter
}
