package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all flags for the org2anki command.
type cliFlags struct {
	config      string
	deckID      int64
	createIDs   bool
	rewrite     bool
	excludeTags []string
	quiet       bool
	verbose     bool
	version     bool
}

// deckIDSet reports whether --deck-id was passed explicitly. Zero is not a
// valid deck id, so the value doubles as its own sentinel.
func (f *cliFlags) deckIDSet() bool {
	return f.deckID != 0
}

// parseFlags parses command-line flags and returns positional args.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("org2anki", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.Int64Var(&f.deckID, "deck-id", 0, "Anki deck id (required)")
	fs.BoolVar(&f.createIDs, "create-ids", false, "assign stable identifiers to nodes lacking one")
	fs.BoolVar(&f.rewrite, "rewrite", false, "write assigned identifiers back to the org file")
	fs.StringSliceVar(&f.excludeTags, "exclude-tag", nil, "tag excluding nodes from export (repeatable)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-stage details")
	fs.BoolVar(&f.version, "version", false, "show version information")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
