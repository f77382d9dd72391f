package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/tsawler/scriba"
	"github.com/tsawler/scriba/internal/configfile"
)

// result is the outcome of one file conversion
type result struct {
	input  string
	output string
	err    error
}

// run converts every discovered input and reports the batch outcome.
// Exit codes: 0 all converted, 1 some files failed, 2 bad setup or
// nothing to do.
func run(flags *cliFlags, args []string) int {
	config := scriba.DefaultConfig()
	if flags.config != "" {
		loaded, err := configfile.Load(flags.config)
		if err != nil {
			log.Error(err)
			return 2
		}
		config = loaded
	}
	if flags.workers > 0 {
		config.Workers = flags.workers
	}

	ext := ".md"
	if flags.text {
		ext = ".txt"
	}

	files, err := discoverInputs(args, flags.out, ext)
	if err != nil {
		log.Error(err)
		return 2
	}
	if len(files) == 0 {
		log.Error("no PDF files found")
		return 2
	}

	results := convertAll(files, flags, config)

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n", color.RedString("FAILED"), r.input, r.err)
		}
	}

	if failed > 0 {
		log.WithFields(logrus.Fields{
			"converted": len(results) - failed,
			"failed":    failed,
		}).Warn("batch finished with failures")
		return 1
	}
	log.WithField("converted", len(results)).Info("batch finished")
	return 0
}

// convertAll fans the files out to a bounded worker pool, one file per
// worker. Page-level parallelism inside a document is governed by the
// config instead.
func convertAll(files []fileToConvert, flags *cliFlags, config scriba.Config) []result {
	results := make([]result, len(files))
	bar := newProgressBar(len(files), flags.quiet)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = convertOne(files[i], flags, config)
				_ = bar.Add(1)
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	_ = bar.Finish()

	return results
}

// convertOne converts a single file and writes the result to its output
// path. Per-page warnings are logged, not fatal.
func convertOne(file fileToConvert, flags *cliFlags, config scriba.Config) result {
	r := result{input: file.input, output: file.output}

	var content string
	var warnings []scriba.Warning
	var err error
	if flags.text {
		content, err = scriba.Open(file.input).WithConfig(config).Text()
	} else {
		content, warnings, err = scriba.Open(file.input).WithConfig(config).Markdown()
	}
	if err != nil {
		r.err = err
		return r
	}

	for _, w := range warnings {
		log.WithFields(logrus.Fields{"file": file.input, "page": w.Page}).Warn(w.Message)
	}

	if err := os.MkdirAll(filepath.Dir(r.output), 0o755); err != nil {
		r.err = err
		return r
	}
	if err := os.WriteFile(r.output, []byte(content), 0o644); err != nil {
		r.err = err
		return r
	}
	log.WithFields(logrus.Fields{"file": file.input, "output": r.output}).Debug("converted")
	return r
}

// newProgressBar builds the batch progress bar. A single file or --quiet
// silences it.
func newProgressBar(total int, quiet bool) *progressbar.ProgressBar {
	if quiet || total < 2 {
		return progressbar.NewOptions(total, progressbar.OptionSetWriter(io.Discard))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString("converting")),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}
