package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is used only when JWT_SECRET is unset. It exists so that
// a fresh checkout runs out of the box; Validate refuses to start a
// production server with it.
const DefaultJWTSecret = "meditrack_secret_key"

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret   string   `mapstructure:"JWT_SECRET"`
	JWTTTL      string   `mapstructure:"JWT_TTL"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Fixed-window rate limit applied per client address.
	RateLimitMax    int    `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindow string `mapstructure:"RATE_LIMIT_WINDOW"`

	// Upstream base URL for the hospital bed-availability bridge.
	BedInfoBaseURL string `mapstructure:"BEDINFO_BASE_URL"`
	BedInfoTimeout string `mapstructure:"BEDINFO_TIMEOUT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "5000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "15m")
	v.SetDefault("BEDINFO_BASE_URL", "http://yankes.kemkes.go.id/app/siranap/")
	v.SetDefault("BEDINFO_TIMEOUT", "10s")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_TTL")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("RATE_LIMIT_MAX")
	v.BindEnv("RATE_LIMIT_WINDOW")
	v.BindEnv("BEDINFO_BASE_URL")
	v.BindEnv("BEDINFO_TIMEOUT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == DefaultJWTSecret {
		log.Println("WARNING: JWT_SECRET is not set; using the built-in default.")
		log.Println("WARNING: Tokens signed with this secret are forgeable. Set JWT_SECRET.")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// JWTExpiry returns the parsed token lifetime, falling back to 7 days when
// JWT_TTL is missing or malformed.
func (c *Config) JWTExpiry() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// RateWindow returns the parsed rate-limit window, defaulting to 15 minutes.
func (c *Config) RateWindow() time.Duration {
	d, err := time.ParseDuration(c.RateLimitWindow)
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// UpstreamTimeout returns the parsed bed-bridge request timeout.
func (c *Config) UpstreamTimeout() time.Duration {
	d, err := time.ParseDuration(c.BedInfoTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Validate checks that the configuration is safe to run. A production server
// must not sign tokens with the built-in default secret.
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return fmt.Errorf("JWT_SECRET must be set in production; refusing to start with the built-in default")
	}
	if c.Env != "development" && c.Env != "production" && c.Env != "test" {
		return fmt.Errorf("ENV must be \"development\", \"test\", or \"production\", got %q", c.Env)
	}
	return nil
}
