// Command scriba converts PDF files to GitHub Flavored Markdown,
// reconstructing tables, headings, lists, and hyperlinks from page
// geometry.
//
// Usage:
//
//	scriba [flags] <file-or-directory>...
//
// Directories are walked recursively for .pdf files. Each input produces
// a sibling .md file unless --out redirects the output.
package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

var log = logrus.New()

func main() {
	flags, inputs, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if flags.version {
		fmt.Println("scriba", Version)
		return
	}

	if flags.markdown && flags.text {
		fmt.Fprintln(os.Stderr, "choose one of --markdown or --text")
		os.Exit(2)
	}

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case flags.debug:
		log.SetLevel(logrus.DebugLevel)
	case flags.quiet:
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	// Respect container CPU quotas; the default maxprocs logger is too
	// chatty for a CLI
	_, _ = maxprocs.Set(maxprocs.Logger(log.Debugf))

	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: scriba [flags] <file-or-directory>...")
		os.Exit(2)
	}

	os.Exit(run(flags, inputs))
}
