package session

import "time"

// Config holds session store and cookie configuration.
type Config struct {
	// CookieName is the name of the session id cookie (default: "sid").
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`

	// IdleTimeout is how long an untouched session stays alive.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`

	// SweepInterval is the period of the background expiry sweep (0 disables it).
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`

	// CookieTTL is the lifetime of the session id cookie. It is independent
	// of the store's idle timeout: the cookie only names the device.
	CookieTTL time.Duration `env:"SESSION_COOKIE_TTL" envDefault:"1h"`

	// SecureCookies enables the Secure flag on session cookies.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:    "sid",
		IdleTimeout:   30 * time.Minute,
		SweepInterval: 5 * time.Minute,
		CookieTTL:     time.Hour,
	}
}
