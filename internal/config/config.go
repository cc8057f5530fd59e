package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding the config file.
const EnvPrefix = "CHAINKIT"

// Config holds all configuration for the application.
type Config struct {
	App         AppConfig         `mapstructure:"app" yaml:"app"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger"`
	Rates       RatesConfig       `mapstructure:"rates" yaml:"rates"`
	ColdStaking ColdStakingConfig `mapstructure:"coldstaking" yaml:"coldstaking"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Version string `mapstructure:"version" yaml:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level" yaml:"level"`
	Encoding string `mapstructure:"encoding" yaml:"encoding"`
}

// RatesConfig holds the rate source endpoints and the refresh schedule.
type RatesConfig struct {
	BTCURL           string        `mapstructure:"btc_url" yaml:"btc_url"`
	BCHURL           string        `mapstructure:"bch_url" yaml:"bch_url"`
	RHOMURL          string        `mapstructure:"rhom_url" yaml:"rhom_url"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	RefreshOnStartup bool          `mapstructure:"refresh_on_startup" yaml:"refresh_on_startup"`
	RefreshInterval  time.Duration `mapstructure:"refresh_interval" yaml:"refresh_interval"`
}

// ColdStakingConfig holds the network context and prefix tables of the credential validator.
type ColdStakingConfig struct {
	Network                  string `mapstructure:"network" yaml:"network"`
	ExtendedKeyLivenetPrefix string `mapstructure:"extended_key_livenet_prefix" yaml:"extended_key_livenet_prefix"`
	ExtendedKeyTestnetPrefix string `mapstructure:"extended_key_testnet_prefix" yaml:"extended_key_testnet_prefix"`
	Bech32LivenetPrefix      string `mapstructure:"bech32_livenet_prefix" yaml:"bech32_livenet_prefix"`
	Bech32TestnetPrefix      string `mapstructure:"bech32_testnet_prefix" yaml:"bech32_testnet_prefix"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "chainkit")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("rates.btc_url", "https://bitpay.com/api/rates")
	v.SetDefault("rates.bch_url", "https://bitpay.com/api/rates/bch")
	v.SetDefault("rates.rhom_url", "https://api.coinmarketcap.com/v1/ticker/rhombus/")
	v.SetDefault("rates.request_timeout", "15s")
	v.SetDefault("rates.refresh_on_startup", true)
	v.SetDefault("rates.refresh_interval", "0s")
	v.SetDefault("coldstaking.network", "livenet")
	v.SetDefault("coldstaking.extended_key_livenet_prefix", "prom")
	v.SetDefault("coldstaking.extended_key_testnet_prefix", "RRoM")
	v.SetDefault("coldstaking.bech32_livenet_prefix", "rcs")
	v.SetDefault("coldstaking.bech32_testnet_prefix", "tpcs")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c RatesConfig) GetRequestTimeout() time.Duration {
	return c.RequestTimeout
}

func (c RatesConfig) GetRefreshInterval() time.Duration {
	return c.RefreshInterval
}
