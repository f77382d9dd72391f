package tables

import (
	"errors"

	"github.com/tsawler/scriba/model"
)

// Sentinel errors for detector configuration.
var (
	ErrInvalidTolerance = errors.New("tolerance must be positive")
	ErrInvalidMinimum   = errors.New("table minimums must be at least 1")
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect finds tables among a page's primitives
	Detect(page model.Page) ([]*model.Table, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds table detection configuration
type Config struct {
	// LineTolerance is the cross-axis distance within which drawn segments
	// collapse into one canonical boundary (points). The effective tolerance
	// per segment is the larger of this and the stroke width.
	// Default: 1.0
	LineTolerance float64 `yaml:"line_tolerance"`

	// MinSegmentLength discards shorter drawn segments as noise (points).
	// Default: 8.0
	MinSegmentLength float64 `yaml:"min_segment_length"`

	// AspectRatioThreshold classifies a primitive as horizontal or vertical:
	// the major axis must be at least this many times the minor axis.
	// Default: 3.0
	AspectRatioThreshold float64 `yaml:"aspect_ratio_threshold"`

	// MinRows is the minimum number of rows for a valid table.
	// Default: 2
	MinRows int `yaml:"min_table_rows"`

	// MinCols is the minimum number of columns for a valid table.
	// Default: 2
	MinCols int `yaml:"min_table_cols"`

	// RowGapTolerance groups spans into the same text row when their
	// baselines differ by at most this much (points). Default: 2.0
	RowGapTolerance float64 `yaml:"row_gap_tolerance"`

	// ColumnAlignTolerance is the left-edge agreement distance that forms
	// a column in alignment-based detection (points). Default: 3.0
	ColumnAlignTolerance float64 `yaml:"column_align_tolerance"`

	// MaxRowGap bounds the baseline distance between consecutive text rows
	// of one alignment-detection region (points). Default: 18.0
	MaxRowGap float64 `yaml:"max_row_gap"`

	// DetectMergedCells extends cells over missing interior borders,
	// recording row/column spans. Default: true
	DetectMergedCells bool `yaml:"detect_merged_cells"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		LineTolerance:        1.0,
		MinSegmentLength:     8.0,
		AspectRatioThreshold: 3.0,
		MinRows:              2,
		MinCols:              2,
		RowGapTolerance:      2.0,
		ColumnAlignTolerance: 3.0,
		MaxRowGap:            18.0,
		DetectMergedCells:    true,
	}
}

// Validate checks the configuration for usable values
func (c Config) Validate() error {
	if c.LineTolerance <= 0 || c.RowGapTolerance <= 0 || c.ColumnAlignTolerance <= 0 || c.MaxRowGap <= 0 {
		return ErrInvalidTolerance
	}
	if c.AspectRatioThreshold <= 1 {
		return ErrInvalidTolerance
	}
	if c.MinRows < 1 || c.MinCols < 1 {
		return ErrInvalidMinimum
	}
	return nil
}

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector
func (r *DetectorRegistry) Register(detector Detector) {
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	return r.detectors[name]
}

// List returns all registered detector names
func (r *DetectorRegistry) List() []string {
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

func init() {
	// Register default detectors
	RegisterDetector(NewBorderDetector())
	RegisterDetector(NewAlignmentDetector())
}
