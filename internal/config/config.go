package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries every knob the server needs. Values come from the
// environment (or an optional config.yaml in the working directory), with
// sensible defaults for local development.
type Config struct {
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`

	SMTPServer       string `mapstructure:"SMTP_SERVER"`
	SMTPPort         string `mapstructure:"SMTP_PORT"`
	SMTPUser         string `mapstructure:"SMTP_USER"`
	SMTPPassword     string `mapstructure:"SMTP_PASS"`
	SMTPAuthDisabled bool   `mapstructure:"SMTP_AUTH_DISABLED"`
	AlertFrom        string `mapstructure:"ALERT_FROM"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("REDIS_ADDR", "order-redis:6379")
	v.SetDefault("JWT_SECRET", "super-secret-key")
	v.SetDefault("SMTP_SERVER", "")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("SMTP_AUTH_DISABLED", false)
	v.SetDefault("ALERT_FROM", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}
