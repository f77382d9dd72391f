package configfile_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tsawler/scriba"
	"github.com/tsawler/scriba/internal/configfile"
	"github.com/tsawler/scriba/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scriba.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_PartialOverlay(t *testing.T) {
	path := writeConfig(t, "workers: 4\ntables:\n  min_table_rows: 3\n")

	config, err := configfile.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if config.Workers != 4 {
		t.Errorf("Workers = %d, want 4", config.Workers)
	}
	if config.Tables.MinRows != 3 {
		t.Errorf("Tables.MinRows = %d, want 3", config.Tables.MinRows)
	}

	// Parameters the file does not name keep their defaults
	defaults := scriba.DefaultConfig()
	if config.Tables.MinCols != defaults.Tables.MinCols {
		t.Errorf("Tables.MinCols = %d, want default %d", config.Tables.MinCols, defaults.Tables.MinCols)
	}
	if config.Layout.GapMultiplier != defaults.Layout.GapMultiplier {
		t.Errorf("Layout.GapMultiplier = %v, want default %v",
			config.Layout.GapMultiplier, defaults.Layout.GapMultiplier)
	}
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	path := writeConfig(t, "bogus_knob: 1\n")

	_, err := configfile.Load(path)
	if !errors.Is(err, configfile.ErrParse) {
		t.Errorf("got %v, want ErrParse", err)
	}
}

func TestLoad_InvalidValueRejected(t *testing.T) {
	path := writeConfig(t, "layout:\n  gap_multiplier: -1\n")

	_, err := configfile.Load(path)
	if !errors.Is(err, layout.ErrInvalidMultiplier) {
		t.Errorf("got %v, want ErrInvalidMultiplier", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := configfile.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, configfile.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeConfig(t, "")

	_, err := configfile.Load(path)
	if !errors.Is(err, configfile.ErrEmpty) {
		t.Errorf("got %v, want ErrEmpty", err)
	}
}

func TestLoad_OversizeFile(t *testing.T) {
	content := append(bytes.Repeat([]byte("# pad\n"), configfile.MaxFileSize/6), []byte("workers: 1\n")...)
	path := filepath.Join(t.TempDir(), "big.yaml")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := configfile.Load(path)
	if !errors.Is(err, configfile.ErrTooLarge) {
		t.Errorf("got %v, want ErrTooLarge", err)
	}
}
