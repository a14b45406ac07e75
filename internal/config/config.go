package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Logging   LoggingConfig
	Export    ExportConfig
	Dashboard DashboardConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// ExportConfig controls where spreadsheet reports are written
type ExportConfig struct {
	Dir string
}

// DashboardConfig holds the analytics windows
type DashboardConfig struct {
	// DeadlineWindowDays is the upcoming-deadline horizon in days
	DeadlineWindowDays int
	// DelayTrendDays is the delay-trend lookback in days
	DelayTrendDays int
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	// Read from config file
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Production Board")
	v.SetDefault("app.environment", "development")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Export defaults
	v.SetDefault("export.dir", "./exports")

	// Dashboard defaults
	v.SetDefault("dashboard.deadlinewindowdays", 7)
	v.SetDefault("dashboard.delaytrenddays", 30)
}
