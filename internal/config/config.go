package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"skillmcp/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const AppName = "skillmcp" // application name used for config and data directories

// Config holds user configuration for skillmcp.
type Config struct {
	// SkillsDir is the directory tree of skill markdown files the server
	// scans and serves. Directory and file names carry routing syntax:
	// "(group)" directories are dropped from resource URIs, "[param]"
	// names become URI parameters.
	SkillsDir string `yaml:"skills_dir"`

	// RemoteURL optionally points the sync command at a git repository
	// holding the skill corpus. Empty means a purely local corpus.
	RemoteURL string `yaml:"remote_url,omitempty"`

	// Branch selects the branch to sync; empty uses the remote's default.
	Branch string `yaml:"branch,omitempty"`

	// ServerName is the name the MCP server announces to clients.
	ServerName string `yaml:"server_name"`

	Version  string `yaml:"version"`   // config schema version
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform.
func ConfigPath() (string, error) {
	configPath := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// DefaultSkillsDir returns the default skills directory under the user's
// data directory.
func DefaultSkillsDir() string {
	return filepath.Join(xdg.DataHome, AppName, "skills")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SkillsDir:  DefaultSkillsDir(),
		ServerName: AppName,
		Version:    "1.0",
		InitTime:   0, // set during first save
	}
}

// FindConfigFile returns the path to the config file and whether it exists.
func FindConfigFile() (string, bool) {
	path, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}
	if _, err := os.Stat(path); err == nil {
		return path, true
	}
	return path, false
}

// IsFirstRun reports whether no configuration exists yet.
func IsFirstRun() bool {
	_, exists := FindConfigFile()
	return !exists
}

// Load reads the config from the standard location.
func Load() (*Config, error) {
	path, exists := FindConfigFile()
	logging.Debug("Loading config", "path", path)
	if !exists {
		return nil, fmt.Errorf("no configuration found, run 'skillmcp init' first")
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.SkillsDir == "" {
		return nil, fmt.Errorf("config is missing skills_dir")
	}
	if cfg.ServerName == "" {
		cfg.ServerName = AppName
	}
	return &cfg, nil
}

// Save writes the config to the standard location.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return fmt.Errorf("cannot determine config path: %w", err)
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Restrictive permissions: the config may reference private repos.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Init creates a fresh configuration with the given skills directory,
// creating the directory when needed.
func Init(skillsDir string) (*Config, error) {
	cfg := DefaultConfig()
	if skillsDir != "" {
		cfg.SkillsDir = skillsDir
	}

	if err := os.MkdirAll(cfg.SkillsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create skills directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	logging.Info("Configuration created", "skills_dir", cfg.SkillsDir)
	return &cfg, nil
}
