package config

import (
	"time"

	"deal-engine/domain"
)

// Config is the deal engine service configuration.
type Config struct {
	Server      ServerConfig       `mapstructure:"server"`
	RateLimit   RateLimitConfig    `mapstructure:"rate_limit"`
	Redis       RedisConfig        `mapstructure:"redis"`
	Cache       CacheConfig        `mapstructure:"cache"`
	Logging     LoggingConfig      `mapstructure:"logging"`
	Recalc      RecalcConfig       `mapstructure:"recalc"`
	Assumptions domain.Assumptions `mapstructure:"assumptions"`
}

type ServerConfig struct {
	Addr            string `mapstructure:"addr"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type RateLimitConfig struct {
	Capacity int `mapstructure:"capacity"`
	Window   int `mapstructure:"window"` // milliseconds
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type CacheConfig struct {
	TTL           int `mapstructure:"ttl"`            // milliseconds
	ComparisonTTL int `mapstructure:"comparison_ttl"` // milliseconds, 0 keeps sets forever
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RecalcConfig configures clients that recalculate while the user types.
type RecalcConfig struct {
	Debounce int    `mapstructure:"debounce"` // milliseconds
	Endpoint string `mapstructure:"endpoint"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
