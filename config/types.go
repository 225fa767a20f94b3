package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the Goodreads developer credentials and transport settings
type APIConfig struct {
	Key       string        `mapstructure:"key"`
	Secret    string        `mapstructure:"secret"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// OAuthConfig holds a previously authorized access token. When Token is empty the
// pair is read from CredentialsFile, which is also where `auth` stores it.
type OAuthConfig struct {
	Token           string `mapstructure:"token"`
	TokenSecret     string `mapstructure:"token_secret"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// HasToken reports whether a complete access token is configured
func (o OAuthConfig) HasToken() bool {
	return o.Token != "" && o.TokenSecret != ""
}

// FilterConfig contains named filter presets
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// Credentials is the on-disk form of an OAuth access token
type Credentials struct {
	Token       string `yaml:"token"`
	TokenSecret string `yaml:"token_secret"`
}
