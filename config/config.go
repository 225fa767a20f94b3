package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. GOODREADS_API_KEY
	EnvPrefix = "GOODREADS"

	configDirName = ".goodreads"
)

// Load loads the configuration from file and environment. With an empty configPath
// the standard locations are searched and a missing file is not an error, so the
// whole configuration may come from the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, configDirName))
		}
		v.AddConfigPath("/etc/goodreads/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if !cfg.OAuth.HasToken() && cfg.OAuth.CredentialsFile != "" {
		creds, err := LoadCredentials(cfg.OAuth.CredentialsFile)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			cfg.OAuth.Token = creds.Token
			cfg.OAuth.TokenSecret = creds.TokenSecret
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key gets one so that
// environment overrides are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.key", "")
	v.SetDefault("api.secret", "")
	v.SetDefault("api.base_url", "https://www.goodreads.com")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.user_agent", "goodreads-cli")

	v.SetDefault("oauth.token", "")
	v.SetDefault("oauth.token_secret", "")
	v.SetDefault("oauth.credentials_file", defaultCredentialsFile())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDirName, "credentials.yaml")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.Key == "" || cfg.API.Key == "your-api-key-here" {
		return fmt.Errorf("api.key must be set to your Goodreads developer key")
	}
	if cfg.API.Secret == "" || cfg.API.Secret == "your-api-secret-here" {
		return fmt.Errorf("api.secret must be set to your Goodreads developer secret")
	}

	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %q", cfg.API.BaseURL)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}

	if (cfg.OAuth.Token == "") != (cfg.OAuth.TokenSecret == "") {
		return fmt.Errorf("oauth.token and oauth.token_secret must be set together")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter %q has an empty expression", name)
		}
	}

	return nil
}

// LoadCredentials reads an access token stored by SaveCredentials
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	if creds.Token == "" || creds.TokenSecret == "" {
		return nil, fmt.Errorf("credentials file %s is incomplete", path)
	}
	return &creds, nil
}

// SaveCredentials writes an access token to path, readable only by the owner
func SaveCredentials(path, token, tokenSecret string) error {
	if path == "" {
		return fmt.Errorf("no credentials file configured")
	}

	data, err := yaml.Marshal(Credentials{Token: token, TokenSecret: tokenSecret})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	return os.Chmod(path, 0o600)
}
