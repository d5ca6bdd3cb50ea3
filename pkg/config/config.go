// Package config loads optional run defaults from a TOML file.
//
// A crosslink.toml next to the working directory (or a file named via
// --config) can pre-set the data path, preview output, and mode switches.
// Precedence is: command-line flag, then config file, then built-in default.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fortuna-events/crosslink/pkg/errors"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "crosslink.toml"

// Config holds the optional defaults a config file may set.
// Zero values mean "not set" and leave the built-in default in place.
type Config struct {
	Data      string `toml:"data"`       // data file path
	Preview   string `toml:"preview"`    // preview output path
	WithDebug bool   `toml:"with_debug"` // synthesize the debug entity
	Fast      bool   `toml:"fast"`       // ordered scheduling
}

// Load reads and decodes the config file at path.
// Returns an INVALID_CONFIG error when the file cannot be decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read config %s", path)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse config %s", path)
	}
	return &cfg, nil
}

// LoadDefault loads DefaultPath if it exists, or returns an empty config.
// A present but malformed default file is still an error; silently ignoring
// it would hide typos in a file the user wrote on purpose.
func LoadDefault() (*Config, error) {
	if _, err := os.Stat(DefaultPath); err != nil {
		return &Config{}, nil
	}
	return Load(DefaultPath)
}
