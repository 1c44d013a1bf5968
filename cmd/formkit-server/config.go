package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/redis"
	"github.com/dmitrymomot/formkit/pkg/rulesource"
)

// Rule source kinds.
const (
	sourceEmbed = "embed"
	sourceDir   = "dir"
	sourceS3    = "s3"
	sourceRedis = "redis"
)

type Config struct {
	Environment string `env:"ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"`
	LogFormat   string `env:"LOG_FORMAT"`

	HTTP  httpserver.Config
	Redis redis.Config
	S3    rulesource.S3Config

	RuleSource   string        `env:"RULE_SOURCE" envDefault:"embed"`
	RulesDir     string        `env:"RULES_DIR" envDefault:"rules"`
	PagePath     string        `env:"PAGE_PATH"`
	CacheSize    int           `env:"RULE_CACHE_SIZE" envDefault:"64"`
	CacheTTL     time.Duration `env:"RULE_CACHE_TTL" envDefault:"1m"`
	InvalidClass string        `env:"INVALID_CLASS" envDefault:"invalid"`
	HintDisplay  string        `env:"HINT_DISPLAY" envDefault:"block"`
}

// ruleSource builds the configured source and any readiness checks it needs.
// The returned cleanup must be called on shutdown.
func ruleSource(ctx context.Context, cfg Config, log *slog.Logger) (rulesource.Source, []func(context.Context) error, func(), error) {
	noop := func() {}

	var src rulesource.Source
	var checks []func(context.Context) error
	cleanup := noop

	switch cfg.RuleSource {
	case sourceEmbed:
		src = rulesource.NewFSSource(rulesFS(), "")
	case sourceDir:
		src = rulesource.NewFSSource(os.DirFS(cfg.RulesDir), "")
	case sourceS3:
		s3src, err := rulesource.NewS3Source(ctx, cfg.S3)
		if err != nil {
			return nil, nil, noop, err
		}
		src = s3src
	case sourceRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		src = rulesource.NewRedisSource(redis.NewStore(client, cfg.Redis.KeyPrefix))
		checks = append(checks, redis.Healthcheck(client))
		cleanup = func() { _ = client.Close() }
	default:
		return nil, nil, noop, fmt.Errorf("%w: unknown rule source %q", rulesource.ErrInvalidConfig, cfg.RuleSource)
	}

	log.Info("rule source ready", slog.String("source", cfg.RuleSource))
	if cfg.CacheSize > 0 {
		src = rulesource.Cached(src, cfg.CacheSize, rulesource.WithTTL(cfg.CacheTTL))
	}
	return src, checks, cleanup, nil
}
