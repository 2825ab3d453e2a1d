// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Addr string `mapstructure:"addr" yaml:"addr"`
	} `mapstructure:"server" yaml:"server"`

	Telegram struct {
		BotToken string `mapstructure:"bot_token" yaml:"-"` // Never serialize the bot token
	} `mapstructure:"telegram" yaml:"telegram"`

	Webhook struct {
		APIKey string `mapstructure:"api_key" yaml:"-"` // Never serialize the webhook key
	} `mapstructure:"webhook" yaml:"webhook"`

	YNAB struct {
		APIKey    string `mapstructure:"api_key" yaml:"-"` // Never serialize the API key
		BudgetID  string `mapstructure:"budget_id" yaml:"budget_id"`
		AccountID string `mapstructure:"account_id" yaml:"account_id"`
		BaseURL   string `mapstructure:"base_url" yaml:"base_url"`
	} `mapstructure:"ynab" yaml:"ynab"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.yonder-ynab")
	v.AddConfigPath(".yonder-ynab")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("YONDER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Secrets and identifiers always bind from unprefixed env vars. These
	// are the names the hosting platform's secret store injects.
	secretBindings := map[string]string{
		"ynab.api_key":       "YNAB_API_KEY",
		"ynab.budget_id":     "YNAB_BUDGET_ID",
		"ynab.account_id":    "YNAB_ACCOUNT_ID",
		"telegram.bot_token": "TELEGRAM_BOT_TOKEN",
		"webhook.api_key":    "WEBHOOK_API_KEY",
	}
	for key, env := range secretBindings {
		if err := v.BindEnv(key, env); err != nil {
			fmt.Printf("Warning: failed to bind %s environment variable: %v\n", env, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Server defaults
	v.SetDefault("server.addr", ":8080")

	// YNAB defaults
	v.SetDefault("ynab.base_url", "https://api.ynab.com/v1")
	// "last-used" asks the API for the most recently used budget
	v.SetDefault("ynab.budget_id", "last-used")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate the account id when set. YNAB account ids are UUIDs.
	if config.YNAB.AccountID != "" {
		if _, err := uuid.Parse(config.YNAB.AccountID); err != nil {
			return fmt.Errorf("ynab.account_id must be a UUID: %w", err)
		}
	}

	return nil
}

// ValidateYNAB checks that everything needed to call the YNAB API is set.
func (c *Config) ValidateYNAB() error {
	if c.YNAB.APIKey == "" {
		return fmt.Errorf("YNAB_API_KEY is required")
	}
	if c.YNAB.BudgetID == "" {
		return fmt.Errorf("YNAB_BUDGET_ID is required")
	}
	if c.YNAB.AccountID == "" {
		return fmt.Errorf("YNAB_ACCOUNT_ID is required")
	}
	return nil
}

// ValidateTelegram checks that the Telegram ingress can be started.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}

// ValidateWebhook checks that the webhook ingress can authenticate callers.
func (c *Config) ValidateWebhook() error {
	if c.Webhook.APIKey == "" {
		return fmt.Errorf("WEBHOOK_API_KEY is required")
	}
	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
