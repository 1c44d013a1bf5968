// Command formkit-server serves the contact page and validates its forms on
// submission.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/handler"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
	"github.com/dmitrymomot/formkit/pkg/ruleset"
)

const serviceName = "formkit-server"

var forms = []handler.Form{
	{Name: "main-form", Selector: "#main-form", VariantField: "contact-type"},
	{Name: "single-form", Selector: "#single-form"},
}

func main() {
	cfg := config.MustLoad[Config](config.WithPrefix("FORMKIT_"))

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Environment, serviceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		logOpts = append(logOpts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	log := logger.New(logOpts...)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	body := page
	if cfg.PagePath != "" {
		b, err := os.ReadFile(cfg.PagePath)
		if err != nil {
			return err
		}
		body = b
	}

	src, checks, cleanup, err := ruleSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	h, err := handler.New(body, src, forms,
		handler.WithLogger(log),
		handler.WithDecodeOptions(ruleset.WithNamedPatterns(ruleset.DefaultNamedPatterns())),
		handler.WithProcessorOptions(
			formkit.WithInvalidClass(cfg.InvalidClass),
			formkit.WithHintDisplay(cfg.HintDisplay),
		),
	)
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, checks...))
	r.Mount("/", h.Routes())

	return httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}
