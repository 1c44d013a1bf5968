package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

type loadOptions struct {
	prefix      string
	files       []string
	environment map[string]string
}

// Option configures a single Load call.
type Option func(*loadOptions)

// WithPrefix prepends prefix to every env tag, e.g. "FORMKIT_".
func WithPrefix(prefix string) Option {
	return func(o *loadOptions) { o.prefix = prefix }
}

// WithEnvFiles loads the given .env files before parsing. Missing files are
// an error, unlike the default .env which is optional.
func WithEnvFiles(files ...string) Option {
	return func(o *loadOptions) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from the given map instead of the process
// environment. No .env file is read.
func WithEnvironment(vars map[string]string) Option {
	return func(o *loadOptions) { o.environment = vars }
}

// Load parses the environment into a new T using `env` struct tags.
//
// The default .env file in the working directory is loaded once per process
// if it exists. Values already set in the environment win over .env entries.
//
// Example:
//
//	type ServerConfig struct {
//		Addr        string        `env:"ADDR" envDefault:":8080"`
//		ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
//	}
//
//	cfg, err := config.Load[ServerConfig](config.WithPrefix("FORMKIT_"))
func Load[T any](opts ...Option) (T, error) {
	var cfg T
	o := &loadOptions{}
	for _, opt := range opts {
		opt(o)
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environment != nil {
		envOpts.Environment = o.environment
	} else {
		defaultEnvLoaded.Do(func() {
			// the default .env is optional
			_ = godotenv.Load()
		})
		if len(o.files) > 0 {
			if err := godotenv.Load(o.files...); err != nil {
				return cfg, errors.Join(ErrLoadingEnvFile, err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Use it for configuration the process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return cfg
}
