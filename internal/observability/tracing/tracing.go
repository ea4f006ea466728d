package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InjectTraceID attaches a fresh trace id to the logger carried by ctx, so every
// log.Ctx(ctx) line of one job can be correlated.
func InjectTraceID(ctx context.Context) context.Context {
	id := uuid.New().String()
	logger := loggerFrom(ctx).With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

// WithFields returns ctx with a logger enriched by fields.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	logger := loggerFrom(ctx).With().Fields(fields).Logger()
	return logger.WithContext(ctx)
}

func loggerFrom(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l == zerolog.DefaultContextLogger || l.GetLevel() == zerolog.Disabled {
		return &log.Logger
	}
	return l
}
