package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	org2anki "github.com/ACHinrichs/org-to-anki"
	"github.com/ACHinrichs/org-to-anki/internal/config"
	"github.com/ACHinrichs/org-to-anki/internal/fileutil"
	"github.com/ACHinrichs/org-to-anki/internal/orgdoc"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidArgs      = errors.New("usage: org2anki <orgfile> <deckname> <output.apkg> --deck-id <id>")
	ErrInvalidExtension = errors.New("input file must have .org extension")
	ErrMissingDeckID    = errors.New("--deck-id is required (pass it or set deck.id in the config)")
	ErrReadOrgFile      = errors.New("failed to read org file")
	ErrWritePackage     = errors.New("failed to write deck package")
	ErrRewriteOrgFile   = errors.New("failed to rewrite org file")
)

// Positional argument positions.
const (
	requiredArgs       = 3
	orgFileArgIndex    = 0
	deckNameArgIndex   = 1
	outputFileArgIndex = 2
)

// filePermissions for generated artifacts: owner read+write, others read.
const filePermissions = 0o644

// run parses arguments, loads configuration, and drives the build.
func run(args []string, flags *cliFlags, deps *Dependencies) error {
	if len(args) < requiredArgs {
		return ErrInvalidArgs
	}

	start := deps.Now()
	orgPath := args[orgFileArgIndex]
	deckName := args[deckNameArgIndex]
	outputPath := args[outputFileArgIndex]

	if !fileutil.HasExtension(orgPath, ".org") {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, orgPath)
	}

	cfg := config.DefaultConfig()
	if flags.config != "" {
		loaded, err := config.LoadConfig(flags.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	mergeFlags(flags, cfg)

	if cfg.Deck.ID == 0 {
		return ErrMissingDeckID
	}

	src, err := os.ReadFile(orgPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadOrgFile, err)
	}

	doc := orgdoc.Parse(string(src))
	if flags.verbose {
		fmt.Fprintf(deps.Stderr, "Parsed %d nodes from %s\n", len(doc.Nodes), orgPath)
	}

	svc := org2anki.New(org2anki.WithExcludeTags(cfg.Export.ExcludeTags...))
	res, err := svc.Build(context.Background(), org2anki.Input{
		Document:  doc,
		DeckName:  deckName,
		DeckID:    cfg.Deck.ID,
		CreateIDs: cfg.Export.CreateIDs,
	})
	if err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintf(deps.Stderr, "Exported %d notes, skipped %d, generated %d identifiers\n",
			res.Notes, res.Skipped, res.GeneratedIDs)
	}

	if err := os.WriteFile(outputPath, res.Package, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePackage, err)
	}

	if cfg.Export.Rewrite {
		if err := os.WriteFile(orgPath, []byte(doc.String()), filePermissions); err != nil {
			return fmt.Errorf("%w: %v", ErrRewriteOrgFile, err)
		}
		if flags.verbose {
			fmt.Fprintf(deps.Stderr, "Rewrote %s with assigned identifiers\n", orgPath)
		}
	}

	if flags.verbose {
		fmt.Fprintf(deps.Stderr, "Done in %s\n", deps.Now().Sub(start).Round(time.Millisecond))
	}
	if !flags.quiet {
		fmt.Fprintf(deps.Stdout, "Created %s (%d notes)\n", outputPath, res.Notes)
	}
	return nil
}

// mergeFlags merges CLI flags into config (CLI wins).
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.deckIDSet() {
		cfg.Deck.ID = flags.deckID
	}
	if flags.createIDs {
		cfg.Export.CreateIDs = true
	}
	if flags.rewrite {
		cfg.Export.Rewrite = true
	}
	if len(flags.excludeTags) > 0 {
		cfg.Export.ExcludeTags = flags.excludeTags
	}
}
