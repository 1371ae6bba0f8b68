package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment string          `mapstructure:"environment"`
	LogLevel    string          `mapstructure:"log_level"`
	Server      ServerConfig    `mapstructure:"server"`
	Statfit     StatfitConfig   `mapstructure:"statfit"`
	Finbert     FinbertConfig   `mapstructure:"finbert"`
	Forecast    ForecastConfig  `mapstructure:"forecast"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StatfitConfig locates the statistical estimation sidecar. An empty
// service URL marks every estimation backend unavailable.
type StatfitConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Timeout    int    `mapstructure:"timeout"`
}

// FinbertConfig locates the sentiment classification sidecar.
type FinbertConfig struct {
	ServiceURL string `mapstructure:"service_url"`
	Timeout    int    `mapstructure:"timeout"`
}

// ForecastConfig holds model hyperparameters and feature settings.
type ForecastConfig struct {
	Horizon         int        `mapstructure:"horizon"`
	BaseTemperature float64    `mapstructure:"base_temperature"`
	ArimaOrder      []int      `mapstructure:"arima_order"`
	GarchOrder      []int      `mapstructure:"garch_order"`
	Vecm            VecmConfig `mapstructure:"vecm"`
}

// VecmConfig holds the cointegrated multivariate model settings. A rank of
// zero or below delegates rank selection to the backend's trace test.
type VecmConfig struct {
	DetOrder int `mapstructure:"det_order"`
	KarDiff  int `mapstructure:"k_ar_diff"`
	Rank     int `mapstructure:"rank"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	// Set default values
	setDefaults()

	// Enable environment variable support
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, use defaults and environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Normalize environment to lowercase for consistent comparison
	config.Environment = strings.ToLower(config.Environment)

	if config.Forecast.Horizon <= 0 {
		return nil, fmt.Errorf("forecast horizon must be positive, got %d", config.Forecast.Horizon)
	}
	if len(config.Forecast.ArimaOrder) != 3 {
		return nil, fmt.Errorf("arima_order must have exactly 3 elements (p, d, q), got %d", len(config.Forecast.ArimaOrder))
	}
	if len(config.Forecast.GarchOrder) != 2 {
		return nil, fmt.Errorf("garch_order must have exactly 2 elements (p, q), got %d", len(config.Forecast.GarchOrder))
	}

	return &config, nil
}

func setDefaults() {
	// Environment
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Statfit sidecar
	viper.SetDefault("statfit.service_url", "http://localhost:8181")
	viper.SetDefault("statfit.timeout", 30)

	// Finbert sidecar
	viper.SetDefault("finbert.service_url", "http://localhost:8282")
	viper.SetDefault("finbert.timeout", 60)

	// Forecast
	viper.SetDefault("forecast.horizon", 24)
	viper.SetDefault("forecast.base_temperature", 18.0)
	viper.SetDefault("forecast.arima_order", []int{1, 0, 1})
	viper.SetDefault("forecast.garch_order", []int{1, 1})
	viper.SetDefault("forecast.vecm.det_order", 0)
	viper.SetDefault("forecast.vecm.k_ar_diff", 1)
	viper.SetDefault("forecast.vecm.rank", 0)

	// Telemetry
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.endpoint", "")
}
