package formkit

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/logger"
)

// ErrorSink receives every processing error a Processor raises.
type ErrorSink interface {
	// HandleError is called once per error. Rejected overlapping calls may
	// reach it from several goroutines at once.
	HandleError(ctx context.Context, err ProcessingError)
}

// ErrorSinkFunc adapts a function to ErrorSink.
type ErrorSinkFunc func(ctx context.Context, err ProcessingError)

// HandleError calls f.
func (f ErrorSinkFunc) HandleError(ctx context.Context, err ProcessingError) {
	f(ctx, err)
}

// LogSink writes processing errors to log at warn level.
func LogSink(log *slog.Logger) ErrorSink {
	if log == nil {
		log = slog.Default()
	}
	return ErrorSinkFunc(func(ctx context.Context, err ProcessingError) {
		log.WarnContext(ctx, "form processing error",
			logger.ErrorType(err.Type()),
			slog.String("message", err.Message()),
			slog.String("technical_message", err.TechnicalMessage()),
			logger.Error(err.Unwrap()),
		)
	})
}

// MultiSink fans errors out to every non-nil sink in order.
func MultiSink(sinks ...ErrorSink) ErrorSink {
	clean := make([]ErrorSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			clean = append(clean, s)
		}
	}
	return ErrorSinkFunc(func(ctx context.Context, err ProcessingError) {
		for _, s := range clean {
			s.HandleError(ctx, err)
		}
	})
}
