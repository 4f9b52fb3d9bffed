// Package config loads the replay tool's HCL configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete tool configuration. Blocks are pointers so that a
// file may carry any subset of them; Load fills the rest with defaults.
type Config struct {
	Parser   *ParserSettings   `hcl:"parser,block"`
	Database *DatabaseSettings `hcl:"database,block"`
	Watch    *WatchSettings    `hcl:"watch,block"`
	Display  *DisplaySettings  `hcl:"display,block"`
	Log      *LogSettings      `hcl:"log,block"`
}

// ParserSettings controls how session files are parsed.
type ParserSettings struct {
	// Strict fails the whole file on the first malformed hand instead of
	// skipping it with a diagnostic.
	Strict bool `hcl:"strict,optional"`
	// HeroOverride forces the hero name when the file has no Dealt to line.
	HeroOverride string `hcl:"hero,optional"`
}

// DatabaseSettings locates the sqlite database used by import.
type DatabaseSettings struct {
	Path string `hcl:"path,optional"`
}

// WatchSettings configures live session following.
type WatchSettings struct {
	// Dir is searched for the newest session file when watch is given no
	// explicit path.
	Dir string `hcl:"dir,optional"`
	// Pattern matches session files inside Dir.
	Pattern string `hcl:"pattern,optional"`
}

// DisplaySettings controls textual output.
type DisplaySettings struct {
	// Hands caps the per-file hand listing in parse output; 0 lists all.
	Hands int `hcl:"hands,optional"`
}

// LogSettings configures logging output.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Parser:   &ParserSettings{},
		Database: &DatabaseSettings{Path: defaultDatabasePath()},
		Watch:    &WatchSettings{Pattern: "FT*.txt"},
		Display:  &DisplaySettings{},
		Log:      &LogSettings{Level: "info"},
	}
}

// Load reads configuration from an HCL file, falling back to defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Parser == nil {
		cfg.Parser = &ParserSettings{}
	}
	if cfg.Database == nil {
		cfg.Database = &DatabaseSettings{}
	}
	if cfg.Watch == nil {
		cfg.Watch = &WatchSettings{}
	}
	if cfg.Display == nil {
		cfg.Display = &DisplaySettings{}
	}
	if cfg.Log == nil {
		cfg.Log = &LogSettings{}
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDatabasePath()
	}
	if cfg.Watch.Pattern == "" {
		cfg.Watch.Pattern = "FT*.txt"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return &cfg, nil
}

func defaultDatabasePath() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, ".ftreplay", "hands.db")
}
