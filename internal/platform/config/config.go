// Package config loads the service configuration from environment variables
// and an optional config file.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the dashboard service.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Google     GoogleConfig     `mapstructure:"google"`
	Sheets     SheetsConfig     `mapstructure:"sheets"`
	TwelveData TwelveDataConfig `mapstructure:"twelvedata"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type GoogleConfig struct {
	// CredentialEnv names the environment variable holding the service-account JSON.
	CredentialEnv string `mapstructure:"credential_env"`
}

type SheetsConfig struct {
	Name           string        `mapstructure:"name"`
	Timeout        time.Duration `mapstructure:"timeout"`
	SheetsEndpoint string        `mapstructure:"sheets_endpoint"`
	DriveEndpoint  string        `mapstructure:"drive_endpoint"`
}

type TwelveDataConfig struct {
	APIKey        string        `mapstructure:"api_key"`
	BaseURL       string        `mapstructure:"base_url"`
	Exchange      string        `mapstructure:"exchange"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerMinute int           `mapstructure:"rate_per_minute"`
}

type CacheConfig struct {
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`
	ChartTTL    time.Duration `mapstructure:"chart_ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}

type DashboardConfig struct {
	Workers      int           `mapstructure:"workers"`
	DateOrder    string        `mapstructure:"date_order"`
	ChartTimeout time.Duration `mapstructure:"chart_timeout"`
}

// envBindings are the legacy variable names kept alongside the automatic
// SECTION_KEY names.
var envBindings = map[string]string{
	"twelvedata.api_key":  "TWELVE_DATA_API_KEY",
	"twelvedata.base_url": "TWELVE_DATA_BASE_URL",
	"redis.host":          "REDIS_HOST",
	"redis.port":          "REDIS_PORT",
	"redis.password":      "REDIS_PASSWORD",
	"server.addr":         "ADDR",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("google.credential_env", "GOOGLE_JSON")
	v.SetDefault("sheets.name", "작전주_포착_로그")
	v.SetDefault("sheets.timeout", 15*time.Second)
	v.SetDefault("sheets.sheets_endpoint", "")
	v.SetDefault("sheets.drive_endpoint", "")
	v.SetDefault("twelvedata.api_key", "")
	v.SetDefault("twelvedata.base_url", "https://api.twelvedata.com")
	v.SetDefault("twelvedata.exchange", "KRX")
	v.SetDefault("twelvedata.timeout", 10*time.Second)
	v.SetDefault("twelvedata.rate_per_minute", 8)
	v.SetDefault("cache.snapshot_ttl", 60*time.Second)
	v.SetDefault("cache.chart_ttl", time.Hour)
	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("dashboard.workers", 4)
	v.SetDefault("dashboard.date_order", "lexical")
	v.SetDefault("dashboard.chart_timeout", 10*time.Second)
}

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory or $HOME/.stock_dashboard.
// Environment variables take precedence over the file; every key can be set
// as SECTION_KEY, e.g. SHEETS_NAME or CACHE_SNAPSHOT_TTL.
func Load() (*Config, error) {
	return load(".", "$HOME/.stock_dashboard")
}

func load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.Server.Addr == "" {
		problems = append(problems, "server.addr is empty")
	}
	if c.Sheets.Name == "" {
		problems = append(problems, "sheets.name is empty")
	}
	if c.Sheets.Timeout <= 0 {
		problems = append(problems, "sheets.timeout must be positive")
	}
	if c.Cache.SnapshotTTL <= 0 || c.Cache.ChartTTL <= 0 {
		problems = append(problems, "cache ttls must be positive")
	}
	if c.TwelveData.RatePerMinute < 0 {
		problems = append(problems, "twelvedata.rate_per_minute must not be negative")
	}
	if c.Dashboard.Workers < 0 {
		problems = append(problems, "dashboard.workers must not be negative")
	}
	if c.Dashboard.ChartTimeout < 0 {
		problems = append(problems, "dashboard.chart_timeout must not be negative")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q is not json or text", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
