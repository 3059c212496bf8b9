package port

import (
	"context"

	"github.com/rs/zerolog"
)

// LoggerFromContext returns the logger carried by ctx. Replay runs log
// through it, so tests can capture a run's output without touching the
// process-wide logger.
type LoggerFromContext func(ctx context.Context) *zerolog.Logger
