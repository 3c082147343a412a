package org2anki

import "github.com/google/uuid"

// DefaultNamespace is the namespace under which note identifiers are
// derived when none is injected. It matches the DNS namespace from RFC
// 4122, so identifiers are stable across implementations and runs.
var DefaultNamespace = uuid.NameSpaceDNS

// identifierGenerator abstracts deterministic identifier derivation.
type identifierGenerator interface {
	GenerateID(heading string) string
}

// uuidGenerator derives name-based UUIDs under a fixed namespace.
type uuidGenerator struct {
	namespace uuid.UUID
}

func (g uuidGenerator) GenerateID(heading string) string {
	return GenerateID(g.namespace, heading)
}

// GenerateID derives a deterministic identifier from a node's heading text.
// It is a version-5 (name-based, SHA-1) UUID: the same namespace and
// heading always produce the same identifier, and distinct headings
// collide only with cryptographically negligible probability.
//
// Only the heading participates in the hash. Identifiers therefore survive
// node reordering and body edits, but change when the heading text changes.
func GenerateID(namespace uuid.UUID, heading string) string {
	return uuid.NewSHA1(namespace, []byte(heading)).String()
}
