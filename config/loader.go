package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"deal-engine/domain"
)

const envPrefix = "DEALENGINE"

// Load reads config.yaml from the usual locations, then applies .env and
// DEALENGINE_* environment overrides. A missing config file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 5000)
	v.SetDefault("server.write_timeout", 10000)
	v.SetDefault("server.shutdown_timeout", 5000)

	v.SetDefault("rate_limit.capacity", 10)
	v.SetDefault("rate_limit.window", 1000)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.ttl", 15*60*1000)
	v.SetDefault("cache.comparison_ttl", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("recalc.debounce", 400)
	v.SetDefault("recalc.endpoint", "")

	a := domain.DefaultAssumptions()
	v.SetDefault("assumptions.insurance_pct", a.InsurancePct)
	v.SetDefault("assumptions.down_payment_pct", a.DownPaymentPct)
	v.SetDefault("assumptions.closing_costs_pct", a.ClosingCostsPct)
	v.SetDefault("assumptions.selling_costs_pct", a.SellingCostsPct)
	v.SetDefault("assumptions.rehab_budget_pct", a.RehabBudgetPct)
	v.SetDefault("assumptions.contingency_pct", a.ContingencyPct)
	v.SetDefault("assumptions.buy_discount_pct", a.BuyDiscountPct)
	v.SetDefault("assumptions.platform_fee_pct", a.PlatformFeePct)
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// applyDefaults fills values that were explicitly blanked out.
func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Recalc.Debounce == 0 {
		cfg.Recalc.Debounce = 400
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.RateLimit.Capacity <= 0 {
		return fmt.Errorf("rate_limit.capacity must be positive")
	}
	if cfg.RateLimit.Window <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if cfg.Redis.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when redis is enabled")
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if cfg.Recalc.Debounce < 0 {
		return fmt.Errorf("recalc.debounce must not be negative")
	}

	a := cfg.Assumptions
	fractions := map[string]float64{
		"insurance_pct":     a.InsurancePct,
		"down_payment_pct":  a.DownPaymentPct,
		"closing_costs_pct": a.ClosingCostsPct,
		"selling_costs_pct": a.SellingCostsPct,
		"rehab_budget_pct":  a.RehabBudgetPct,
		"contingency_pct":   a.ContingencyPct,
		"buy_discount_pct":  a.BuyDiscountPct,
		"platform_fee_pct":  a.PlatformFeePct,
	}
	for key, val := range fractions {
		if val < 0 || val > 1 {
			return fmt.Errorf("assumptions.%s must be between 0 and 1, got %v", key, val)
		}
	}
	return nil
}
