package main

import (
	"errors"
	"os"

	org2anki "github.com/ACHinrichs/org-to-anki"
	"github.com/ACHinrichs/org-to-anki/internal/config"
)

// Exit codes for the org2anki CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 3=I/O.
const (
	ExitSuccess = 0 // Successful export
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadOrgFile) ||
		errors.Is(err, ErrWritePackage) ||
		errors.Is(err, ErrRewriteOrgFile) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidArgs) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrMissingDeckID) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, org2anki.ErrNilDocument) ||
		errors.Is(err, org2anki.ErrEmptyDeckName) ||
		errors.Is(err, org2anki.ErrMissingDeckID) {
		return ExitUsage
	}

	return ExitGeneral
}
