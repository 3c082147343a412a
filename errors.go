package org2anki

import "errors"

// Sentinel errors for library operations.
var (
	ErrNilDocument   = errors.New("document cannot be nil")
	ErrEmptyDeckName = errors.New("deck name cannot be empty")
	ErrMissingDeckID = errors.New("deck id is required")
	ErrPackageWrite  = errors.New("deck package write failed")
)
