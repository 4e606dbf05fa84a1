package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"

	"github.com/gerunddev/mdrecipe/internal/recipe"
)

// Config represents the mdrecipe configuration
type Config struct {
	RecipeDir       string   `json:"recipe_dir"`
	LogFile         string   `json:"log_file"`
	LogLevel        string   `json:"log_level,omitempty"`
	Dialect         string   `json:"dialect,omitempty"`
	StrictSizes     bool     `json:"strict_sizes,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
	Workers         int      `json:"workers,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		RecipeDir:       filepath.Join(home, "recipes"),
		LogFile:         filepath.Join(os.TempDir(), "mdrecipe.log"),
		LogLevel:        "info",
		Dialect:         recipe.DialectInstructions.String(),
		ExcludePatterns: []string{}, // No exclusions by default
		Workers:         runtime.NumCPU(),
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "mdrecipe", "config.json")
	}
	return filepath.Join(home, ".config", "mdrecipe", "config.json")
}

// StateFilePath returns the path to the catalog state file
// Uses platform-specific XDG data directory
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "mdrecipe", "catalog.json")
}

// Load reads configuration from the config directory. Fields missing from
// the file keep their defaults.
func Load() (*Config, error) {
	configPath := ConfigPath()
	data, err := os.ReadFile(configPath)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return cfg, cfg.ExpandPaths()
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RecipeDir == "" {
		return fmt.Errorf("recipe_dir cannot be empty")
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if _, err := recipe.ParseDialect(c.Dialect); err != nil {
		return err
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	return nil
}

// ParseOptions returns the parser options selected by the configuration
func (c *Config) ParseOptions() (recipe.Options, error) {
	dialect, err := recipe.ParseDialect(c.Dialect)
	if err != nil {
		return recipe.Options{}, err
	}
	return recipe.Options{
		Dialect:     dialect,
		StrictSizes: c.StrictSizes,
	}, nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.RecipeDir, err = expandPath(c.RecipeDir)
	if err != nil {
		return fmt.Errorf("failed to expand recipe_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
