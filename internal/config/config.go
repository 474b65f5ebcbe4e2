package config

import (
	"fmt"
	"time"

	"minifeed/internal/utils"

	"github.com/ilyakaznacheev/cleanenv"
)

// durationSeconds parses env as time.Duration: "10s", "5m" or bare number = seconds (e.g. "10" -> 10s).
type durationSeconds time.Duration

func (d *durationSeconds) SetValue(data string) error {
	v, err := utils.ParseDurationEnv(data)
	if err != nil {
		return err
	}
	*d = durationSeconds(v)
	return nil
}

func (d durationSeconds) Duration() time.Duration { return time.Duration(d) }

type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Session SessionConfig
	Log     LogConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Env     string `env:"APP_ENV" env-default:"dev"`
	Version string `env:"VERSION" env-default:"dev"`
}

type HTTPConfig struct {
	Port string `env:"HTTP_PORT" env-default:"8080"`

	// Value: "10s", "5m" or a bare number of seconds (e.g. 10).
	ReadTimeout     durationSeconds `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    durationSeconds `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout     durationSeconds `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout durationSeconds `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// SessionConfig controls the session cookie. The cookie max-age is the
// only expiry a session has.
type SessionConfig struct {
	CookieName string          `env:"SESSION_COOKIE" env-default:"session_id"`
	TTL        durationSeconds `env:"SESSION_TTL" env-default:"24h"`
	Secure     bool            `env:"SESSION_SECURE" env-default:"false"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" env-default:""`
}

type CacheConfig struct {
	Enabled bool `env:"CACHE_ENABLED" env-default:"true"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if cfg.Session.CookieName == "" {
		return Config{}, fmt.Errorf("SESSION_COOKIE must not be empty")
	}
	if cfg.Session.TTL.Duration() <= 0 {
		return Config{}, fmt.Errorf("SESSION_TTL must be positive")
	}
	return cfg, nil
}
