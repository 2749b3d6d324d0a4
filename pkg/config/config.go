package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	VersionV1 = "v1"

	DefaultAPIURL = "https://api.clipshare.dev"
)

type Config struct {
	Version     string   `yaml:"version"`
	APIURL      string   `yaml:"api-url"`
	ClipsDir    string   `yaml:"clips-dir,omitempty"`
	TriggerPath string   `yaml:"trigger-path,omitempty"`
	DaemonUnit  string   `yaml:"daemon-unit,omitempty"`
	Settings    Settings `yaml:"settings,omitempty"`
}

type Settings struct {
	OutputFormat string `yaml:"output-format,omitempty"`
	Color        string `yaml:"color,omitempty"`
	TokenStorage string `yaml:"token-storage,omitempty"`
}

func DefaultConfig() Config {
	return Config{
		Version: VersionV1,
		APIURL:  DefaultAPIURL,
		Settings: Settings{
			OutputFormat: "table",
			Color:        "auto",
		},
	}
}

func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return &cfg, nil
}

// LoadOrDefault returns the built-in defaults when no config file exists yet,
// so first-run commands like login work without a `config init` step.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(err) {
			def := DefaultConfig()
			return &def, nil
		}
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.Version == "" {
		cfg.Version = VersionV1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	content, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, content, 0o600)
}

func (c *Config) Validate() error {
	if c.Version == "" {
		return errors.New("config version missing")
	}
	if strings.TrimSpace(c.APIURL) == "" {
		return errors.New("api-url is required")
	}
	parsed, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid api-url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api-url must be http or https, got %q", parsed.Scheme)
	}
	if c.Settings.TokenStorage != "" &&
		c.Settings.TokenStorage != "keychain" && c.Settings.TokenStorage != "file" {
		return fmt.Errorf("token-storage must be keychain or file, got %q", c.Settings.TokenStorage)
	}
	return nil
}
