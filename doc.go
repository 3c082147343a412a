// Package org2anki converts org-mode outline documents into Anki
// flashcard decks (.apkg).
//
// # Quick Start
//
// Parse an org file, build the deck, and write the archive:
//
//	doc := orgdoc.Parse(string(src))
//	svc := org2anki.New()
//	res, err := svc.Build(ctx, org2anki.Input{
//	    Document: doc,
//	    DeckName: "Biology",
//	    DeckID:   1234567890,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("biology.apkg", res.Package, 0644)
//
// Each outline node becomes one note: the heading renders as the question
// side and the body as the answer side.
//
// # Conversion Pipeline
//
// The build process follows these stages per node:
//
//  1. Exclusion filtering (no-export tag, inherited from ancestors)
//  2. Identifier assignment (optional, deterministic UUIDv5 of the heading)
//  3. Markup transformation (heading and body to HTML fragments)
//  4. Deck packaging (SQLite collection zipped as .apkg)
//
// # Markup
//
// The transformer handles the subset of org markup flashcards need:
// /emphasis/, *strong*, whitespace-bounded =code=, and hyphen lists nested
// by indentation. Everything is HTML-escaped before substitution, so
// document text cannot inject markup into the cards.
//
// # Stable Identifiers
//
// With Input.CreateIDs, nodes without an ID property get one derived from
// their heading text alone: the same heading always maps to the same
// identifier, so re-exported decks update cards in place instead of
// duplicating them. Reordering nodes or editing bodies preserves
// identifiers; renaming a heading changes it.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := org2anki.New(
//	    org2anki.WithNamespace(customNamespace),
//	    org2anki.WithExcludeTags("no-export", "draft"),
//	)
package org2anki
