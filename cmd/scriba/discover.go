package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// fileToConvert pairs one input PDF with its resolved output path.
type fileToConvert struct {
	input  string
	output string
}

// discoverInputs expands command line arguments into input/output pairs.
// Directories are walked recursively with their structure mirrored under
// the output directory; files named explicitly are taken as given so
// unusual extensions still work.
func discoverInputs(args []string, outDir, ext string) ([]fileToConvert, error) {
	var files []fileToConvert
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, fileToConvert{
				input:  arg,
				output: outputPath(arg, outDir, "", ext),
			})
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isPDF(path) {
				files = append(files, fileToConvert{
					input:  path,
					output: outputPath(path, outDir, arg, ext),
				})
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}
	return files, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// outputPath derives where a converted file lands: next to the input when
// no output directory is set; otherwise under the output directory, with
// the input's position relative to the walked root mirrored beneath it.
func outputPath(input, outDir, walkRoot, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	if walkRoot != "" {
		if rel, err := filepath.Rel(walkRoot, input); err == nil {
			return filepath.Join(outDir, filepath.Dir(rel), base)
		}
	}
	return filepath.Join(outDir, base)
}
