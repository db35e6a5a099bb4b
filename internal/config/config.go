// Package config assembles the runtime configuration of the annotation
// store CLI. Sources are layered: defaults, then .env/environment, then an
// optional JSON file, then command-line flags. Later sources take precedence.
package config

import "github.com/annoti/annoti/internal/filex"

// Config holds runtime settings for the annotation store.
//
// Fields:
//   - DataDir: directory holding the database and sibling settings files.
//   - DBPath: SQLite database file; empty means <DataDir>/data.db.
//   - UserName: name used when the primary user row is first created.
//   - LogLevel: slog level (debug, info, warn, error).
type Config struct {
	DataDir  string
	DBPath   string
	UserName string
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = filex.AppDataDir()
	c.DBPath = ""
	c.UserName = "admin"
	c.LogLevel = "info"
}

// Load constructs a Config, applies defaults, then overlays values from the
// environment (including a .env file if present), a JSON file (if given via
// -c/-config) and command-line flags, in that order.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)

	if cfg.DBPath == "" {
		cfg.DBPath = filex.DBPath(cfg.DataDir)
	}
	return cfg
}
