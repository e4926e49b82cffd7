// Package config reads the isomap YAML configuration file.
package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MobRulesGames/isomap/tilemap"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("isomap.schema.json", schemaJSON)

type Config struct {
	Map      MapConfig      `yaml:"map"`
	LogLevel string         `yaml:"log_level"`
	LogDir   string         `yaml:"log_dir"`
	Walls    WallsConfig    `yaml:"walls"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	View     ViewConfig     `yaml:"view"`
}

type MapConfig struct {
	// Map file in the original game's format. Width and height are only
	// used for files that are not the standard 128x128.
	Path   string `yaml:"path"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type WallsConfig struct {
	Transparent bool `yaml:"transparent"`
}

type SnapshotConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
	// SQLite index of saved snapshots; empty disables it.
	Index string `yaml:"index"`
}

type ViewConfig struct {
	Enabled bool `yaml:"enabled"`
}

func Defaults() Config {
	return Config{
		Map: MapConfig{
			Width:  tilemap.THFileWidth,
			Height: tilemap.THFileHeight,
		},
		LogLevel: "info",
		Snapshot: SnapshotConfig{
			Dir:   "saves",
			Level: "default",
			Index: filepath.Join("saves", "index.db"),
		},
	}
}

// Load reads the config at path on top of Defaults. An empty path gives the
// defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := Parse(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates a YAML document against the config schema and decodes it
// into cfg. Fields missing from the document keep their value in cfg.
func Parse(data []byte, cfg *Config) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc != nil {
		// The validator wants values as encoding/json produces them.
		js, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		var v any
		if err := json.Unmarshal(js, &v); err != nil {
			return err
		}
		if err := schema.Validate(v); err != nil {
			return err
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks what the schema can't.
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 || c.Map.Width > tilemap.MaxNodes/c.Map.Height {
		return fmt.Errorf("map size %dx%d: %w", c.Map.Width, c.Map.Height, tilemap.ErrInvalidDimensions)
	}
	return nil
}

// SnapshotPath is where the snapshot of the configured map goes.
func (c *Config) SnapshotPath() string {
	name := "map"
	if c.Map.Path != "" {
		name = strings.TrimSuffix(filepath.Base(c.Map.Path), filepath.Ext(c.Map.Path))
	}
	return filepath.Join(c.Snapshot.Dir, name+".thmp")
}
