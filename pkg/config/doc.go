// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
//
//   - The default `.env` in the working directory is loaded once per process
//     when present; extra files can be requested with WithEnvFiles.
//   - The environment is parsed into any struct using `env` field tags, with
//     an optional prefix shared by every variable.
//   - MustLoad panics on failure for configuration the process needs to start.
//
// # Usage
//
//	type Config struct {
//	    Addr       string `env:"ADDR" envDefault:":8080"`
//	    RuleSource string `env:"RULE_SOURCE" envDefault:"embed"`
//	    S3Bucket   string `env:"S3_BUCKET"`
//	}
//
//	cfg := config.MustLoad[Config](config.WithPrefix("FORMKIT_"))
//
// Tests can bypass the process environment entirely:
//
//	cfg, err := config.Load[Config](config.WithEnvironment(map[string]string{
//	    "ADDR": ":9000",
//	}))
//
// # Error Handling
//
// Parsing failures are returned joined with ErrParsingConfig, unreadable
// explicit .env files with ErrLoadingEnvFile; both work with errors.Is.
package config
