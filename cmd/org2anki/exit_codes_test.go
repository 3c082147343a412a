package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	org2anki "github.com/ACHinrichs/org-to-anki"
	"github.com/ACHinrichs/org-to-anki/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"invalid args", ErrInvalidArgs, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"missing deck id", ErrMissingDeckID, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"library validation", org2anki.ErrEmptyDeckName, ExitUsage},
		{"read failure", ErrReadOrgFile, ExitIO},
		{"write failure", ErrWritePackage, ExitIO},
		{"rewrite failure", ErrRewriteOrgFile, ExitIO},
		{"file not found", os.ErrNotExist, ExitIO},
		{"wrapped error", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"deeply wrapped io", fmt.Errorf("outer: %w", fmt.Errorf("%w: inner", ErrReadOrgFile)), ExitIO},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.expected {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}
