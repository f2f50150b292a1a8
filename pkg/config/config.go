// Package config loads optional project configuration from a
// spriteforge.toml file.
//
// Every setting has a working default, so the file is entirely optional:
// a missing file yields the default configuration without error. Explicit
// CLI flags always take precedence over file values.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/spriteforge/pkg/errors"
	"github.com/matzehuels/spriteforge/pkg/sprite"
)

// DefaultFilename is the config file looked up in the working directory
// when no explicit path is given.
const DefaultFilename = "spriteforge.toml"

// Config is the full file schema.
type Config struct {
	Diagonal sprite.Params `toml:"diagonal"`
	Batch    BatchConfig   `toml:"batch"`
	Server   ServerConfig  `toml:"server"`
}

// BatchConfig controls batch processing.
type BatchConfig struct {
	// Workers is the number of concurrent workers. Zero means one worker
	// per CPU.
	Workers int `toml:"workers"`
}

// ServerConfig controls the preview server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Diagonal: sprite.DefaultParams(),
		Server:   ServerConfig{Addr: ":8080"},
	}
}

// Load reads the config file at path. An empty path means the default
// filename in the working directory. A missing file is not an error; the
// defaults are returned.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if err := c.Diagonal.Validate(); err != nil {
		return err
	}
	if c.Batch.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidParams,
			"batch workers must be non-negative, got %d", c.Batch.Workers)
	}
	return nil
}
