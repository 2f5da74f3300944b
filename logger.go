package timelock

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Logger is the logging interface used by the controller.
type Logger interface {
	Infof(template string, args ...any)
	Debugf(template string, args ...any)
}

type contextLoggerValueT string

// ContextLoggerValue is the context key holding the Logger used by the controller.
const ContextLoggerValue = contextLoggerValueT("timelock-logger")

var defaultLogger = sync.OnceValue(func() Logger {
	return zap.Must(zap.NewProduction()).Sugar()
})

// WithLogger returns a copy of ctx carrying lggr.
func WithLogger(ctx context.Context, lggr Logger) context.Context {
	return context.WithValue(ctx, ContextLoggerValue, lggr)
}

// LoggerFrom returns the logger carried by ctx, or a zap production logger.
func LoggerFrom(ctx context.Context) Logger {
	value := ctx.Value(ContextLoggerValue)
	logger, ok := value.(Logger)
	if !ok {
		logger = defaultLogger()
	}

	return logger
}
