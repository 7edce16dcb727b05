package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for a matn run.
// Values are populated from .matn.yaml, MATN_* env vars, and CLI flags.
type Config struct {
	OutputDir       string        `mapstructure:"output_dir"`
	CatalogFile     string        `mapstructure:"catalog_file"` // empty means the embedded table
	IndicesFile     string        `mapstructure:"indices_file"`
	ResolvedFile    string        `mapstructure:"resolved_file"`
	BooksFile       string        `mapstructure:"books_file"`
	MapFile         string        `mapstructure:"map_file"`
	IndexDB         string        `mapstructure:"index_db"` // empty disables the index in export
	IncludeNavTitle bool          `mapstructure:"include_nav_title"`
	AllowDangling   bool          `mapstructure:"allow_dangling"`
	Verbose         bool          `mapstructure:"verbose"`
	WatchDebounce   time.Duration `mapstructure:"watch_debounce"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("output_dir", "output")
	viper.SetDefault("catalog_file", "")
	viper.SetDefault("indices_file", "temp1_indices.json")
	viper.SetDefault("resolved_file", "temp2_filename.json")
	viper.SetDefault("books_file", "books.json")
	viper.SetDefault("map_file", "tpo_map.json")
	viper.SetDefault("index_db", "")
	viper.SetDefault("include_nav_title", true)
	viper.SetDefault("allow_dangling", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch_debounce", 200*time.Millisecond)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.WatchDebounce <= 0 {
		return Config{}, fmt.Errorf("config: watch_debounce must be positive, got %s", cfg.WatchDebounce)
	}
	return cfg, nil
}

// Path resolves an artifact file name against OutputDir. Absolute names are
// returned unchanged.
func (c Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

// IndicesPath is the location of the index-form catalog.
func (c Config) IndicesPath() string { return c.Path(c.IndicesFile) }

// ResolvedPath is the location of the filename-form catalog.
func (c Config) ResolvedPath() string { return c.Path(c.ResolvedFile) }

// BooksPath is the location of the romanized book list.
func (c Config) BooksPath() string { return c.Path(c.BooksFile) }

// MapPath is the location of the jump map.
func (c Config) MapPath() string { return c.Path(c.MapFile) }

// IndexPath is the location of the SQLite index, or "" when disabled.
func (c Config) IndexPath() string { return c.Path(c.IndexDB) }
