package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/bomsquad/shoplist/internal/pkg/constants"
)

// Config carries the client settings. The session cookie and CSRF token are
// opaque values obtained from a browser session; the client only forwards
// them.
type Config struct {
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
	SessionID string `mapstructure:"session_id"`
	CSRFToken string `mapstructure:"csrf_token"`
	Currency  string `mapstructure:"currency"`
	LogLevel  string `mapstructure:"log_level"`
}

// Load reads configuration from the given file (optional), the default
// search paths, and BOMSQUAD_* environment variables, in increasing
// precedence of env over file.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault(constants.ViperLogLevel, "info")
	v.SetDefault(constants.ViperCurrency, "USD")

	v.SetEnvPrefix("bomsquad")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("bomsquad")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bomsquad")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:   v.GetString(constants.ViperBaseURL),
		SessionID: v.GetString(constants.ViperSessionID),
		CSRFToken: v.GetString(constants.ViperCSRFToken),
		Currency:  v.GetString(constants.ViperCurrency),
		LogLevel:  v.GetString(constants.ViperLogLevel),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), constants.ErrValidation)
	}

	return cfg, nil
}
