package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: org2anki <orgfile> <deckname> <output.apkg> --deck-id <id> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an org-mode outline into an Anki deck. Each node becomes one")
	fmt.Fprintln(w, "flashcard: heading as question, body as answer.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  orgfile      Org file to read (.org)")
	fmt.Fprintln(w, "  deckname     Name of the deck to create")
	fmt.Fprintln(w, "  output.apkg  Deck package to write")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --deck-id <id>       Anki deck id (required)")
	fmt.Fprintln(w, "      --create-ids         Assign stable identifiers to nodes lacking one")
	fmt.Fprintln(w, "      --rewrite            Write assigned identifiers back to the org file")
	fmt.Fprintln(w, "      --exclude-tag <tag>  Tag excluding nodes from export (repeatable)")
	fmt.Fprintln(w, "  -c, --config <name>      Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet              Only show errors")
	fmt.Fprintln(w, "  -v, --verbose            Show per-stage details")
	fmt.Fprintln(w, "      --version            Show version information")
}
