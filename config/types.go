package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	AmoCRM  AmoCRMConfig  `mapstructure:"amocrm"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AmoCRMConfig holds amoCRM account credentials and transport settings
type AmoCRMConfig struct {
	Domain     string        `mapstructure:"domain"`
	Login      string        `mapstructure:"login"`
	APIKey     string        `mapstructure:"api_key"`
	AuthScheme string        `mapstructure:"auth_scheme"`
	BaseURL    string        `mapstructure:"base_url"`
	VerifyTLS  bool          `mapstructure:"verify_tls"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// OutputConfig controls how command results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
