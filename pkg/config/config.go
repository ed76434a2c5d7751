// Package config loads the importer configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kataras/figma-importer/pkg/fonts"
	"github.com/kataras/figma-importer/pkg/logging"
	"github.com/kataras/figma-importer/pkg/options"
)

// FileNames are the configuration file names searched for, in order.
var FileNames = []string{".figma-importer.yml", ".figma-importer.yaml", "figma-importer.yml", "figma-importer.yaml"}

// Config represents the complete configuration of the importer.
type Config struct {
	Conversion options.Conversion `yaml:"conversion"`
	Fonts      FontsConfig        `yaml:"fonts"`
	Logging    LoggingConfig      `yaml:"logging"`
	Figma      FigmaConfig        `yaml:"figma"`
	Watch      WatchConfig        `yaml:"watch"`
}

// FontsConfig controls which fonts the font registry can load.
type FontsConfig struct {
	Families  []string `yaml:"families"`
	AllowAny  bool     `yaml:"allow_any"`
	CacheSize int      `yaml:"cache_size"`
}

// LoggingConfig controls the structured logger of long-running commands.
type LoggingConfig struct {
	Level  logging.Level  `yaml:"level"`
	Format logging.Format `yaml:"format"`
}

// FigmaConfig holds Figma REST API settings.
type FigmaConfig struct {
	Token string `yaml:"token"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Conversion: options.Default(),
		Fonts: FontsConfig{
			Families:  []string{},
			AllowAny:  false,
			CacheSize: 256,
		},
		Logging: LoggingConfig{
			Level:  logging.LevelInfo,
			Format: logging.FormatText,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from a YAML file. Settings missing from
// the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Load reads the file at path, or the nearest config file found from the
// working directory when path is empty. Without any file the defaults are
// returned. The second value is the path that was loaded, if any.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigFile("")
	}
	if path == "" {
		return NewConfig(), "", nil
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// FindConfigFile searches for a config file in dir and its parents. An
// empty dir starts from the working directory. It returns "" when no file
// is found.
func FindConfigFile(dir string) string {
	currentDir := dir
	if currentDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return ""
		}
		currentDir = wd
	}

	// Search up the directory tree
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(currentDir, name)
			if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Fonts.CacheSize < 0 {
		return fmt.Errorf("fonts.cache_size must not be negative, got %d", c.Fonts.CacheSize)
	}
	if !c.Logging.Level.Valid() {
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	if !c.Logging.Format.Valid() {
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}

// Registry returns the font registry configuration.
func (c *Config) Registry() fonts.RegistryConfig {
	return fonts.RegistryConfig{
		Families:  c.Fonts.Families,
		AllowAny:  c.Fonts.AllowAny,
		CacheSize: c.Fonts.CacheSize,
	}
}

// Token returns the Figma token from the file or, when unset, from the
// FIGMA_TOKEN environment variable.
func (c *Config) Token() string {
	if c.Figma.Token != "" {
		return c.Figma.Token
	}
	return os.Getenv("FIGMA_TOKEN")
}
