package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/amocrm/request"
)

// EnvPrefix is the prefix of environment overrides, e.g. AMOCRM_AMOCRM_API_KEY
// or the shorter aliases bound in bindEnv
const EnvPrefix = "AMOCRM"

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".amocrm"))
		}

		// Check /etc
		v.AddConfigPath("/etc/amocrm/")
	}

	// Credentials may come from the environment alone
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// amoCRM defaults
	v.SetDefault("amocrm.auth_scheme", "current")
	v.SetDefault("amocrm.verify_tls", false)
	v.SetDefault("amocrm.timeout", request.DefaultTimeout)

	// Output defaults
	v.SetDefault("output.format", "json")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// bindEnv adds short aliases such as AMOCRM_DOMAIN and AMOCRM_API_KEY
func bindEnv(v *viper.Viper) error {
	aliases := map[string]string{
		"amocrm.domain":      "AMOCRM_DOMAIN",
		"amocrm.login":       "AMOCRM_LOGIN",
		"amocrm.api_key":     "AMOCRM_API_KEY",
		"amocrm.auth_scheme": "AMOCRM_AUTH_SCHEME",
		"amocrm.base_url":    "AMOCRM_BASE_URL",
	}

	for key, env := range aliases {
		if err := v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return fmt.Errorf("error binding %s: %w", key, err)
		}
	}
	return nil
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.AmoCRM.Domain == "" {
		return fmt.Errorf("amocrm.domain is required")
	}

	if cfg.AmoCRM.Login == "" {
		return fmt.Errorf("amocrm.login is required")
	}

	if cfg.AmoCRM.APIKey == "" || cfg.AmoCRM.APIKey == "your-api-key-here" {
		return fmt.Errorf("amocrm.api_key must be set to a valid API key")
	}

	if _, err := request.ParseAuthScheme(cfg.AmoCRM.AuthScheme); err != nil {
		return fmt.Errorf("invalid amocrm.auth_scheme: %s (must be 'current' or 'legacy')", cfg.AmoCRM.AuthScheme)
	}

	if cfg.AmoCRM.Timeout < 0 {
		return fmt.Errorf("amocrm.timeout must not be negative")
	}

	// Validate output format
	validOutputs := map[string]bool{
		"json": true,
		"yaml": true,
	}
	if !validOutputs[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// RequestOptions converts the transport settings into request options
func (c *AmoCRMConfig) RequestOptions() []request.Option {
	var opts []request.Option

	if scheme, err := request.ParseAuthScheme(c.AuthScheme); err == nil && scheme != request.AuthCurrent {
		opts = append(opts, request.WithAuthScheme(scheme))
	}
	if c.BaseURL != "" {
		opts = append(opts, request.WithBaseURL(c.BaseURL))
	}
	if c.VerifyTLS {
		opts = append(opts, request.WithTLSVerification())
	}
	if c.Timeout > 0 {
		opts = append(opts, request.WithTimeout(c.Timeout))
	}

	return opts
}
