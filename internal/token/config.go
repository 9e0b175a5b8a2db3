package token

import "time"

// Config holds token issuance configuration. The signing secret has no
// default: startup must fail without one.
type Config struct {
	Secret   string        `env:"JWT_SECRET,required"`
	Issuer   string        `env:"JWT_ISSUER" envDefault:"repobook"`
	Audience string        `env:"JWT_AUDIENCE" envDefault:"repobook"`
	TTL      time.Duration `env:"JWT_EXPIRATION" envDefault:"60m"`
}
