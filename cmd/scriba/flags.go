package main

import (
	flag "github.com/spf13/pflag"
)

// cliFlags holds the command line options.
type cliFlags struct {
	out      string
	markdown bool
	text     bool
	config   string
	workers  int
	quiet    bool
	debug    bool
	version  bool
}

// parseFlags parses the command line and returns the options and the
// positional input paths.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("scriba", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.out, "out", "o", "", "output directory (default: next to each input)")
	fs.BoolVarP(&f.markdown, "markdown", "m", false, "emit Markdown (the default)")
	fs.BoolVarP(&f.text, "text", "t", false, "emit the raw text layer instead of Markdown")
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file path")
	fs.IntVarP(&f.workers, "workers", "w", 0, "pages converted in parallel per document (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&f.debug, "debug", "d", false, "log per-file detail")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
