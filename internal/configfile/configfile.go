// Package configfile loads pipeline configuration from YAML files. It
// wraps the YAML dependency so callers never import it directly, and it
// overlays file contents on the default configuration so a partial file
// only overrides the parameters it names.
package configfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/tsawler/scriba"
)

// MaxFileSize limits config input to prevent memory exhaustion.
const MaxFileSize = 1 << 20

var (
	// ErrNotFound is returned when the config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrEmpty is returned for zero-byte config files.
	ErrEmpty = errors.New("config file is empty")

	// ErrTooLarge is returned when the file exceeds MaxFileSize.
	ErrTooLarge = errors.New("config file exceeds maximum size")

	// ErrParse wraps YAML syntax errors and unknown fields.
	ErrParse = errors.New("failed to parse config")
)

// Load reads a YAML config file over the default configuration. Unknown
// fields are rejected rather than silently ignored, and the merged result
// is validated before it is returned.
func Load(path string) (scriba.Config, error) {
	config := scriba.DefaultConfig()

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return config, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return config, fmt.Errorf("reading config file: %w", err)
	}
	if len(data) == 0 {
		return config, fmt.Errorf("%w: %s", ErrEmpty, path)
	}
	if len(data) > MaxFileSize {
		return config, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(data), MaxFileSize)
	}

	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return config, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}
