package scriba

import (
	"errors"
	"fmt"

	"github.com/tsawler/scriba/layout"
	"github.com/tsawler/scriba/tables"
)

// ErrInvalidWorkers is returned when a negative worker count is configured.
var ErrInvalidWorkers = errors.New("worker count must not be negative")

// Config collects the tunable parameters of the whole conversion
// pipeline. The zero value is not usable; start from DefaultConfig.
type Config struct {
	// Tables configures both table detectors.
	Tables tables.Config `yaml:"tables"`

	// Layout configures text block classification.
	Layout layout.Config `yaml:"layout"`

	// Workers bounds page-level parallelism during document conversion.
	// Zero selects one worker per available CPU.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the parameters used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		Tables: tables.DefaultConfig(),
		Layout: layout.DefaultConfig(),
	}
}

// Validate checks the configuration for values that would make the
// pipeline misbehave.
func (c Config) Validate() error {
	if err := c.Tables.Validate(); err != nil {
		return fmt.Errorf("tables: %w", err)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if c.Workers < 0 {
		return ErrInvalidWorkers
	}
	return nil
}
