// Package logger builds structured slog loggers for formkit services and
// keeps attribute names consistent across packages.
//
// New returns a *slog.Logger configured by Option values: output format,
// level, static attributes and context extractors that copy request scoped
// values (a request id, for example) into every record logged with a
// context.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formkit-server"),
//	    logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	log.DebugContext(ctx, "validation run finished",
//	    logger.Form("#main-form"),
//	    logger.Variant("quote"),
//	    logger.Failures(2),
//	)
//
// Helpers that take optional values (Error, RunID, RequestID) return an
// empty slog.Attr for nil input, which slog drops.
package logger
