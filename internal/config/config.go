package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Search  SearchConfig  `mapstructure:"search"`
	Index   IndexConfig   `mapstructure:"index"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SearchConfig contains query-side configuration
type SearchConfig struct {
	// MaxResults bounds the length of any result list, clamped to >= 1.
	MaxResults int `mapstructure:"max_results"`
	// InitialSort orders the empty-query view: "alphabetical" or "random".
	InitialSort string `mapstructure:"initial_sort"`
	// SearchIconSize and ProgramIconSize are UI pixel sizes, passed through
	// untouched for the presentation layer.
	SearchIconSize  int `mapstructure:"search_icon_size"`
	ProgramIconSize int `mapstructure:"program_icon_size"`
}

// IndexConfig contains discovery and cache configuration
type IndexConfig struct {
	ExtraIndexPaths []string `mapstructure:"extra_index_paths"`
	ExcludePaths    []string `mapstructure:"exclude_paths"`
	EnableCache     bool     `mapstructure:"enable_cache"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	DataDir string `mapstructure:"data_dir"`
	CacheDB string `mapstructure:"cache_db"`
	LogFile string `mapstructure:"log_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	homeDir, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(homeDir, ".config", "appdex"))
	}
	viper.AddConfigPath(".")

	setDefaults()

	// Environment variable overrides
	viper.SetEnvPrefix("APPDEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.DataDir = expandPath(cfg.Paths.DataDir)
	cfg.Paths.CacheDB = expandPath(cfg.Paths.CacheDB)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)
	for i, p := range cfg.Index.ExtraIndexPaths {
		cfg.Index.ExtraIndexPaths[i] = expandPath(p)
	}
	for i, p := range cfg.Index.ExcludePaths {
		cfg.Index.ExcludePaths[i] = expandPath(p)
	}

	cfg.normalize()

	return &cfg, nil
}

// normalize clamps values that would otherwise break the engine's contracts.
// A bad setting degrades to its default, never to an error.
func (c *Config) normalize() {
	if c.Search.MaxResults < 1 {
		c.Search.MaxResults = defaultMaxResults
	}
	switch c.Search.InitialSort {
	case "alphabetical", "random":
	default:
		c.Search.InitialSort = "alphabetical"
	}
	if c.Search.SearchIconSize < 1 {
		c.Search.SearchIconSize = defaultSearchIconSize
	}
	if c.Search.ProgramIconSize < 1 {
		c.Search.ProgramIconSize = defaultProgramIconSize
	}
}

const (
	defaultMaxResults      = 10
	defaultSearchIconSize  = 18
	defaultProgramIconSize = 42
)

// setDefaults sets default configuration values
func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		homeDir = "."
	}

	dataDir := filepath.Join(homeDir, ".local", "share", "appdex")

	viper.SetDefault("search.max_results", defaultMaxResults)
	viper.SetDefault("search.initial_sort", "alphabetical")
	viper.SetDefault("search.search_icon_size", defaultSearchIconSize)
	viper.SetDefault("search.program_icon_size", defaultProgramIconSize)

	viper.SetDefault("index.extra_index_paths", []string{})
	viper.SetDefault("index.exclude_paths", []string{})
	viper.SetDefault("index.enable_cache", true)

	viper.SetDefault("paths.data_dir", dataDir)
	viper.SetDefault("paths.cache_db", filepath.Join(dataDir, "index.db"))
	viper.SetDefault("paths.log_file", filepath.Join(dataDir, "appdex.log"))

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.color", "auto")
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	return os.ExpandEnv(path)
}

// Default returns a configuration with all defaults applied, bypassing file
// and environment lookup. Used by tests and as a fallback.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	if homeDir == "" {
		homeDir = "."
	}
	dataDir := filepath.Join(homeDir, ".local", "share", "appdex")

	cfg := &Config{
		Search: SearchConfig{
			MaxResults:      defaultMaxResults,
			InitialSort:     "alphabetical",
			SearchIconSize:  defaultSearchIconSize,
			ProgramIconSize: defaultProgramIconSize,
		},
		Index: IndexConfig{
			EnableCache: true,
		},
		Paths: PathsConfig{
			DataDir: dataDir,
			CacheDB: filepath.Join(dataDir, "index.db"),
			LogFile: filepath.Join(dataDir, "appdex.log"),
		},
		Logging: LoggingConfig{
			Level: "info",
			Color: "auto",
		},
	}
	return cfg
}
