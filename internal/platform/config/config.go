// Package config reads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevJWTSigningKey is used when JWT_SIGNING_KEY is unset. Override it in any
// shared environment.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

// Config is the full service configuration.
type Config struct {
	Server   Server
	Log      Log
	Upstream Upstream
	Session  Session
	Lockout  Lockout
	Redis    RedisConfig
	Audit    Audit
	Tracing  Tracing
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"LAUNCHPAD_ADDR" envDefault:":8080"`
	JWTSigningKey   string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer       string        `env:"JWT_ISSUER"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Upstream locates the authentication and business-creation backends.
type Upstream struct {
	BusinessAPIURL string        `env:"BUSINESS_API_URL" envDefault:"http://localhost:5000/api"`
	AuthAPIURL     string        `env:"AUTH_API_URL" envDefault:"http://localhost:5000/api"`
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"10s"`
	RegisterRole   string        `env:"REGISTER_ROLE" envDefault:"business_owner"`
}

// Session bounds in-memory onboarding sessions.
type Session struct {
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
}

type Lockout struct {
	Threshold    int           `env:"AUTH_LOCKOUT_THRESHOLD" envDefault:"5"`
	Window       time.Duration `env:"AUTH_LOCKOUT_WINDOW" envDefault:"15m"`
	LockDuration time.Duration `env:"AUTH_LOCKOUT_DURATION" envDefault:"15m"`
}

// RedisConfig is optional; an empty URL keeps lockout state in memory.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Audit selects the audit sink. With no brokers events go to the log.
type Audit struct {
	KafkaBrokers  []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic    string        `env:"KAFKA_AUDIT_TOPIC" envDefault:"launchpad.onboarding.audit"`
	BufferSize    int           `env:"AUDIT_BUFFER_SIZE" envDefault:"10000"`
	FlushInterval time.Duration `env:"AUDIT_FLUSH_INTERVAL" envDefault:"1s"`
	OpsSampleRate float64       `env:"AUDIT_OPS_SAMPLE_RATE" envDefault:"1"`
}

// Tracing is opt-in: an empty endpoint disables export.
type Tracing struct {
	Endpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"launchpad"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{
		"BUSINESS_API_URL": c.Upstream.BusinessAPIURL,
		"AUTH_API_URL":     c.Upstream.AuthAPIURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s must be an absolute URL, got %q", name, raw))
		}
	}
	if c.Upstream.Timeout <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}
	if c.Session.TTL <= 0 || c.Session.SweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_TTL and SESSION_SWEEP_INTERVAL must be positive"))
	}
	if c.Audit.OpsSampleRate < 0 || c.Audit.OpsSampleRate > 1 {
		errs = append(errs, errors.New("AUDIT_OPS_SAMPLE_RATE must be within [0,1]"))
	}
	return errors.Join(errs...)
}

// UsesDevSigningKey reports whether the built-in development key is active.
func (c Config) UsesDevSigningKey() bool {
	return c.Server.JWTSigningKey == DevJWTSigningKey
}
