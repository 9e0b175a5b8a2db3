// Package config loads application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// the default `.env` file is loaded once per process (missing files are
// fine), then the environment is parsed into any annotated struct.
//
// Describe configuration with `env` tags:
//
//	type ServerConfig struct {
//	    Addr   string        `env:"HTTP_ADDR" envDefault:":8080"`
//	    Secret string        `env:"JWT_SECRET,required"`
//	    TTL    time.Duration `env:"TOKEN_TTL" envDefault:"60m"`
//	}
//
// Then populate it:
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatalf("config: %v", err)
//	}
//
// MustLoad panics instead of returning an error; it is intended for the
// composition root where a missing required variable must stop startup.
package config
