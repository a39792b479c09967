// Package config loads antcolor settings from TOML or YAML files.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]:
//
//	# antcolor.toml
//	seed = 42
//
//	[colony]
//	num_ants = 20
//	rho = 0.3
//
//	[cache.redis]
//	addr = "localhost:6379"
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/antcolor/pkg/colony"
	"github.com/matzehuels/antcolor/pkg/errors"
)

// Config is the full set of file-configurable settings.
type Config struct {
	Colony colony.Params `toml:"colony" yaml:"colony"`

	// Seed fixes the random source; nil draws a fresh seed per run.
	Seed *uint64 `toml:"seed" yaml:"seed"`

	// Symmetrize accepts adjacency lists that list an edge from one side.
	// It defaults to true since generated lists are one-sided.
	Symmetrize bool `toml:"symmetrize" yaml:"symmetrize"`

	Output Output `toml:"output" yaml:"output"`
	Cache  Cache  `toml:"cache" yaml:"cache"`
	Server Server `toml:"server" yaml:"server"`
}

// Output controls rendering.
type Output struct {
	Detailed bool    `toml:"detailed" yaml:"detailed"`
	Scale    float64 `toml:"scale" yaml:"scale"`
}

// Cache selects the cache backend.
type Cache struct {
	Disabled bool   `toml:"disabled" yaml:"disabled"`
	Dir      string `toml:"dir" yaml:"dir"`
	Redis    Redis  `toml:"redis" yaml:"redis"`
}

// Redis configures the shared cache. An empty Addr disables it.
type Redis struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr" yaml:"addr"`

	// MaxVertices caps uploaded graphs; zero uses errors.MaxVertices.
	MaxVertices int `toml:"max_vertices" yaml:"max_vertices"`
}

// DefaultServerAddr is the listen address of `antcolor serve`.
const DefaultServerAddr = ":8080"

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Colony:     colony.DefaultParams(),
		Symmetrize: true,
		Output:     Output{Scale: 2},
		Server:     Server{Addr: DefaultServerAddr},
	}
}

// Load reads path on top of [Default]. The format follows the extension:
// .toml, or .yaml/.yml. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if err := errors.ValidatePath(path); err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	switch ext := errors.FormatFromPath(path); ext {
	case "toml":
		err = decodeTOML(data, &cfg)
	case "yaml", "yml":
		err = decodeYAML(data, &cfg)
	default:
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Validate checks values that cannot be checked per field.
func (c Config) Validate() error {
	if err := c.Colony.Validate(); err != nil {
		return err
	}
	if c.Output.Scale < 0 {
		return fmt.Errorf("output.scale must not be negative, got %v", c.Output.Scale)
	}
	if c.Server.MaxVertices < 0 {
		return fmt.Errorf("server.max_vertices must not be negative, got %d", c.Server.MaxVertices)
	}
	return nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}
