package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider backends.
const (
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// AccountServiceConfig holds the account service settings read from the
// environment at start-up.
type AccountServiceConfig struct {
	AppEnv   string `env:"APP_ENV"   envDefault:"development"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	Locale   string `env:"LOCALE"    envDefault:"tr"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	Site     SiteConfig
	Provider ProviderConfig
	Token    TokenConfig
	Google   GoogleConfig
	Consul   ConsulConfig
	Limit    RateLimitConfig
}

// SiteConfig holds the school site settings.
type SiteConfig struct {
	Name                string `env:"SITE_NAME"             envDefault:"Cemil Meriç Ortaokulu"`
	AdminEnrollmentCode string `env:"ADMIN_ENROLLMENT_CODE"`
	ContactRecipient    string `env:"CONTACT_RECIPIENT"`
}

// ProviderConfig selects and configures the identity and document backend.
type ProviderConfig struct {
	Backend       string `env:"PROVIDER_BACKEND" envDefault:"mongo"`
	MongoURI      string `env:"MONGO_URI"        envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE"   envDefault:"school_site"`
	RedisAddr     string `env:"REDIS_ADDR"       envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"         envDefault:"0"`
}

// TokenConfig configures the ID tokens issued on sign-in.
type TokenConfig struct {
	Secret    string        `env:"ID_TOKEN_SECRET"`
	Issuer    string        `env:"ID_TOKEN_ISSUER"     envDefault:"school-site"`
	ExpiresIn time.Duration `env:"ID_TOKEN_EXPIRES_IN" envDefault:"1h"`
}

// GoogleConfig enables Google sign-in when ClientID is set.
type GoogleConfig struct {
	ClientID string `env:"GOOGLE_CLIENT_ID"`
}

// ConsulConfig enables service registration when Addr is set.
type ConsulConfig struct {
	Addr string `env:"CONSUL_ADDR"`
}

// RateLimitConfig limits requests to the auth endpoints per client address.
// Forwarded client addresses are only believed from TrustedProxies.
type RateLimitConfig struct {
	PerSecond      float64  `env:"AUTH_RATE_LIMIT" envDefault:"1"`
	Burst          int      `env:"AUTH_RATE_BURST" envDefault:"5"`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// TrustedPrefixes parses TrustedProxies. Bare addresses are single-host
// prefixes.
func (c RateLimitConfig) TrustedPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", raw, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TRUSTED_PROXIES entry %q: %w", raw, err)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return prefixes, nil
}

// Load parses the environment and validates the result.
func Load() (*AccountServiceConfig, error) {
	cfg, err := env.ParseAs[AccountServiceConfig]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *AccountServiceConfig) validate() error {
	var errs []error

	if c.Site.AdminEnrollmentCode == "" {
		errs = append(errs, errors.New("missing ADMIN_ENROLLMENT_CODE environment variable"))
	}
	if c.Token.Secret == "" {
		errs = append(errs, errors.New("missing ID_TOKEN_SECRET environment variable"))
	}
	if c.Token.ExpiresIn <= 0 {
		errs = append(errs, errors.New("ID_TOKEN_EXPIRES_IN must be positive"))
	}
	if c.Locale != "tr" && c.Locale != "en" {
		errs = append(errs, fmt.Errorf("unsupported LOCALE %q", c.Locale))
	}

	switch c.Provider.Backend {
	case BackendMemory:
	case BackendMongo:
		if c.Provider.MongoURI == "" {
			errs = append(errs, errors.New("missing MONGO_URI environment variable"))
		}
		if c.Provider.MongoDatabase == "" {
			errs = append(errs, errors.New("missing MONGO_DATABASE environment variable"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported PROVIDER_BACKEND %q", c.Provider.Backend))
	}

	if c.Limit.PerSecond <= 0 || c.Limit.Burst <= 0 {
		errs = append(errs, errors.New("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive"))
	}
	if _, err := c.Limit.TrustedPrefixes(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
