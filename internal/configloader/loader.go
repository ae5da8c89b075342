// Package configloader loads an explicit configuration file for the CLI.
// There is no directory discovery or config merging here; the linting
// core consumes a single sealed configuration per run.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/yaklabco/gojslint/pkg/config"
)

// ErrNotFound indicates the named config file does not exist.
var ErrNotFound = errors.New("config file not found")

// Load reads and validates a YAML configuration file. An empty path
// returns the default configuration.
func Load(path string) (*config.Config, error) {
	if path == "" {
		return config.New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
