package org2anki

import (
	"github.com/google/uuid"

	"github.com/ACHinrichs/org-to-anki/internal/orgdoc"
)

// DefaultExcludeTag marks nodes that must never be exported.
const DefaultExcludeTag = "no-export"

// Input contains deck-build parameters.
type Input struct {
	Document  *orgdoc.Document // parsed org document (required)
	DeckName  string           // Anki deck name (required)
	DeckID    int64            // Anki deck id (required, non-zero)
	CreateIDs bool             // assign identifiers to nodes lacking one
}

// Result holds the outcome of a deck build.
type Result struct {
	Package      []byte // the .apkg archive
	Notes        int    // notes exported
	Skipped      int    // nodes dropped (excluded tag or empty body)
	GeneratedIDs int    // identifiers newly assigned to the document
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	namespace   uuid.UUID
	excludeTags []string
}

// WithNamespace sets the namespace under which note identifiers are
// derived. Changing it changes every generated identifier; decks that
// must stay stable across runs have to keep using the same namespace.
func WithNamespace(namespace uuid.UUID) Option {
	return func(s *Service) {
		s.cfg.namespace = namespace
	}
}

// WithExcludeTags replaces the tag set that excludes nodes from export.
func WithExcludeTags(tags ...string) Option {
	return func(s *Service) {
		s.cfg.excludeTags = tags
	}
}
