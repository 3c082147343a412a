package org2anki

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ACHinrichs/org-to-anki/internal/anki"
	"github.com/ACHinrichs/org-to-anki/internal/orgdoc"
)

// deckPackager abstracts .apkg serialization.
type deckPackager interface {
	WriteDeck(ctx context.Context, w io.Writer, deck *anki.Deck) error
}

// Service orchestrates the org-to-deck pipeline.
type Service struct {
	cfg         serviceConfig
	transformer blockTransformer
	ids         identifierGenerator
	packager    deckPackager
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithNamespace).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			namespace:   DefaultNamespace,
			excludeTags: []string{DefaultExcludeTag},
		},
		transformer: orgTransformer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create collaborators if not injected (e.g., by tests)
	if s.ids == nil {
		s.ids = uuidGenerator{namespace: s.cfg.namespace}
	}
	if s.packager == nil {
		s.packager = anki.NewPackager()
	}

	return s
}

// Build converts the document's nodes into flashcard notes and packages
// them as a .apkg archive.
//
// Nodes carrying an excluded tag (own or inherited) are skipped. When
// input.CreateIDs is set, nodes without an ID property receive a freshly
// derived identifier before anything else happens to them; that includes
// nodes later dropped for having an empty body, so re-running with
// identical input never generates new identifiers. The document is
// mutated in place; callers wanting the assignments persisted serialize
// it back themselves.
func (s *Service) Build(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	model := anki.SimpleModel()
	deck := anki.NewDeck(input.DeckID, input.DeckName)
	res := &Result{}

	for _, node := range input.Document.Nodes {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if s.excluded(node) {
			res.Skipped++
			continue
		}

		if input.CreateIDs && node.Property(orgdoc.PropertyID) == "" {
			node.SetProperty(orgdoc.PropertyID, s.ids.GenerateID(node.Heading))
			res.GeneratedIDs++
		}

		question := s.transformer.Transform(node.Heading)
		answer := s.transformer.Transform(node.Body)

		if node.Body == "" {
			res.Skipped++
			continue
		}

		deck.AddNote(anki.Note{
			Model:  model,
			Fields: []string{question, answer},
			GUID:   node.Property(orgdoc.PropertyID),
		})
		res.Notes++
	}

	var buf bytes.Buffer
	if err := s.packager.WriteDeck(ctx, &buf, deck); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageWrite, err)
	}
	res.Package = buf.Bytes()

	return res, nil
}

// excluded reports whether any exclusion tag applies to the node.
func (s *Service) excluded(node *orgdoc.Node) bool {
	for _, tag := range s.cfg.excludeTags {
		if node.HasTag(tag) {
			return true
		}
	}
	return false
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if input.Document == nil {
		return ErrNilDocument
	}
	if input.DeckName == "" {
		return ErrEmptyDeckName
	}
	if input.DeckID == 0 {
		return ErrMissingDeckID
	}
	return nil
}
