package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			Key:     "key",
			Secret:  "secret",
			BaseURL: "https://www.goodreads.com",
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
api:
  key: abc
  secret: def
  timeout: 10s
oauth:
  credentials_file: `+filepath.Join(dir, "missing.yaml")+`
filter:
  long: Pages > 500
  classic: Year < 1970
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.API.Key)
	assert.Equal(t, "def", cfg.API.Secret)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, "https://www.goodreads.com", cfg.API.BaseURL)
	assert.Equal(t, "goodreads-cli", cfg.API.UserAgent)
	assert.False(t, cfg.OAuth.HasToken())
	assert.Equal(t, "Pages > 500", cfg.Filter["long"])
	assert.Len(t, cfg.Filter, 2)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
api:
  key: from-file
  secret: def
oauth:
  credentials_file: `+filepath.Join(dir, "missing.yaml")+`
`)

	t.Setenv("GOODREADS_API_KEY", "from-env")
	t.Setenv("GOODREADS_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.API.Key)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadCredentialsFile(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "creds", "credentials.yaml")
	require.NoError(t, SaveCredentials(credsPath, "tok", "sec"))

	path := writeFile(t, dir, "config.yaml", `
api:
  key: abc
  secret: def
oauth:
  credentials_file: `+credsPath+`
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.OAuth.HasToken())
	assert.Equal(t, "tok", cfg.OAuth.Token)
	assert.Equal(t, "sec", cfg.OAuth.TokenSecret)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")

	path := writeFile(t, dir, "config.yaml", "api:\n  key: abc\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.secret")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "placeholder key",
			mutate:  func(c *Config) { c.API.Key = "your-api-key-here" },
			wantErr: "api.key",
		},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.API.Secret = "" },
			wantErr: "api.secret",
		},
		{
			name:    "relative base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "www.goodreads.com" },
			wantErr: "api.base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.API.Timeout = 0 },
			wantErr: "api.timeout",
		},
		{
			name:    "half a token",
			mutate:  func(c *Config) { c.OAuth.Token = "tok" },
			wantErr: "oauth.token",
		},
		{
			name:   "complete token",
			mutate: func(c *Config) { c.OAuth.Token, c.OAuth.TokenSecret = "tok", "sec" },
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "empty filter",
			mutate:  func(c *Config) { c.Filter = FilterConfig{"blank": " "} },
			wantErr: "blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveCredentials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")

	require.NoError(t, SaveCredentials(path, "tok", "sec"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, &Credentials{Token: "tok", TokenSecret: "sec"}, creds)

	require.NoError(t, SaveCredentials(path, "tok2", "sec2"))
	creds, err = LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, "tok2", creds.Token)

	assert.Error(t, SaveCredentials("", "tok", "sec"))
}

func TestLoadCredentialsIncomplete(t *testing.T) {
	path := writeFile(t, t.TempDir(), "credentials.yaml", "token: tok\n")
	_, err := LoadCredentials(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")

	_, err = LoadCredentials(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
