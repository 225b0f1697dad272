// Package config loads run configuration for sigmap. Configuration is an
// explicit value passed into the extraction entry point; there is no ambient
// process-wide state.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// DefaultFileName is looked up in the scan root when no -config flag is given.
const DefaultFileName = "sigmap.toml"

// DefaultMaxFileSize is the size cutoff for parsed files, in bytes.
const DefaultMaxFileSize = 1_000_000 // 1 MB

// Config holds one run's settings. Flags override file values.
type Config struct {
	MaxFileSize   int      `toml:"max-file-size"`
	Format        string   `toml:"format"`
	IncludeSource bool     `toml:"include-source"`
	IncludeDocs   bool     `toml:"include-docs"`
	Languages     []string `toml:"languages"`
}

// Default returns the configuration used when no file and no flags are set.
func Default() Config {
	return Config{
		MaxFileSize: DefaultMaxFileSize,
		Format:      "json",
		IncludeDocs: true,
	}
}

// Load reads a TOML config file into a Config on top of the defaults. A
// missing file is not an error; it yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "reading %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks field values that have a closed domain.
func (c Config) Validate() error {
	if c.Format != "json" && c.Format != "text" {
		return errors.Newf("unsupported format %q (want json or text)", c.Format)
	}
	if c.MaxFileSize <= 0 {
		return errors.Newf("max-file-size must be positive, got %d", c.MaxFileSize)
	}
	return nil
}
