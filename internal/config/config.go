package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	Env      string `mapstructure:"ENV"`
	AppName  string `mapstructure:"APP_NAME"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	// text | json
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Vacío = repos in-memory.
	DatabaseDSN string `mapstructure:"DB_DSN"`
	// Vacío = revocación de sesiones en memoria.
	RedisURL string `mapstructure:"REDIS_URL"`

	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`
	AuthBaseURL   string `mapstructure:"AUTH_BASE_URL"`

	NotifyBaseURL string `mapstructure:"NOTIFY_BASE_URL"`
	NotifyAPIKey  string `mapstructure:"NOTIFY_API_KEY"`

	HTTPTimeout         time.Duration `mapstructure:"HTTP_TIMEOUT"`
	SessionCookieSecure bool          `mapstructure:"SESSION_COOKIE_SECURE"`
}

var keys = []string{
	"PORT", "ENV", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT",
	"DB_DSN", "REDIS_URL",
	"AUTH_JWT_SECRET", "AUTH_BASE_URL",
	"NOTIFY_BASE_URL", "NOTIFY_API_KEY",
	"HTTP_TIMEOUT", "SESSION_COOKIE_SECURE",
}

// Load lee variables de entorno y, si existe, un .env en el cwd.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "petcheck")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("SESSION_COOKIE_SECURE", false)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Port), ":")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate rechaza combinaciones que dejarían la API abierta fuera de dev.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	if !c.IsDev() && strings.TrimSpace(c.AuthJWTSecret) == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is required when ENV=%q", c.Env)
	}
	return nil
}
