package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const ConfigFileName = "unilife.json"

// Portal represents a campus portal backend the CLI can talk to
type Portal struct {
	URL   string `json:"url"`
	Alias string `json:"alias"`
}

// Key returns the portal's identity used to scope stored credentials.
// Two portals with the same host share a session.
func (p *Portal) Key() string {
	u, err := url.Parse(p.URL)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(p.URL, "/")
	}
	return u.Host
}

// Config represents the CLI configuration file
type Config struct {
	Portals []Portal `json:"portals"`

	// Logging configuration, overridable via UNILIFE_LOG_LEVEL / UNILIFE_LOG_FORMAT
	LogLevel  string `json:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty"`
}

// DefaultConfig returns a default configuration with an example portal
func DefaultConfig() *Config {
	return &Config{
		Portals: []Portal{
			{
				URL:   "",
				Alias: "e.g. main campus",
			},
		},
	}
}

// FindConfigFile searches for unilife.json in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find unilife.json or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%s not found in %s or any parent directory", ConfigFileName, currentDir)
}

// Load reads the configuration file and applies environment overrides.
// .env files are loaded first so UNILIFE_* variables can live there too.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories.
// When no config file exists but UNILIFE_PORTAL_URL is set, a config is
// synthesized from the environment so CI usage does not require a file.
func LoadFromCurrentDir() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	configPath, err := FindConfigFile()
	if err != nil {
		if envURL := os.Getenv("UNILIFE_PORTAL_URL"); envURL != "" {
			cfg := &Config{Portals: []Portal{{URL: envURL, Alias: "env"}}}
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetPortalByAlias returns a portal by its alias
func (c *Config) GetPortalByAlias(alias string) (*Portal, error) {
	for i := range c.Portals {
		if c.Portals[i].Alias == alias {
			return &c.Portals[i], nil
		}
	}
	return nil, fmt.Errorf("portal with alias '%s' not found", alias)
}

// GetDefaultPortal returns the first portal in the list
func (c *Config) GetDefaultPortal() (*Portal, error) {
	if len(c.Portals) == 0 {
		return nil, fmt.Errorf("no portals configured in %s", ConfigFileName)
	}
	return &c.Portals[0], nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("UNILIFE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("UNILIFE_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}
