package github

import "time"

// Config holds GitHub API client configuration.
type Config struct {
	BaseURL   string        `env:"GITHUB_API_BASE_URL" envDefault:"https://api.github.com"`
	UserAgent string        `env:"GITHUB_USER_AGENT" envDefault:"repobook/1.0"`
	Timeout   time.Duration `env:"GITHUB_HTTP_TIMEOUT" envDefault:"10s"`
}
