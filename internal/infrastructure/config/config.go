package config

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"

	AuditSinkLog   = "log"
	AuditSinkMongo = "mongo"
	AuditSinkNone  = "none"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	SeedData  bool          `env:"SEED_DATA, default=true"`

	Auth      AuthConfig
	RateLimit RateLimitConfig
	Session   SessionConfig
	Audit     AuditConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type AuthConfig struct {
	Latency      time.Duration `env:"AUTH_LATENCY,       default=1s"`
	UniqueEmails bool          `env:"AUTH_UNIQUE_EMAILS, default=false"`
}

type RateLimitConfig struct {
	RPS            float64  `env:"RATE_LIMIT_RPS,   default=5"`
	Burst          int      `env:"RATE_LIMIT_BURST, default=10"`
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// ProxyRanges parses TrustedProxies as CIDR blocks.
func (c RateLimitConfig) ProxyRanges() ([]*net.IPNet, error) {
	ranges := make([]*net.IPNet, 0, len(c.TrustedProxies))
	for _, cidr := range c.TrustedProxies {
		_, n, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		ranges = append(ranges, n)
	}
	return ranges, nil
}

type SessionConfig struct {
	Store string `env:"SESSION_STORE, default=memory"`
}

type AuditConfig struct {
	Sink    string `env:"AUDIT_SINK,    default=log"`
	Workers int    `env:"AUDIT_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=campus_events"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Development reports whether the service runs with developer conveniences
// such as pretty logs.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("SESSION_STORE must be %q or %q, got %q", SessionStoreMemory, SessionStoreRedis, c.Session.Store)
	}
	switch c.Audit.Sink {
	case AuditSinkLog, AuditSinkMongo, AuditSinkNone:
	default:
		return fmt.Errorf("AUDIT_SINK must be one of log, mongo, none, got %q", c.Audit.Sink)
	}
	if c.JWTSecret == "" && !c.Development() {
		return fmt.Errorf("JWT_SECRET is required outside development")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if _, err := c.RateLimit.ProxyRanges(); err != nil {
		return err
	}
	return nil
}
