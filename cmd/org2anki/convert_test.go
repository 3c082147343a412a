package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ACHinrichs/org-to-anki/internal/config"
)

const testOrg = `* Photosynthesis
Plants turn /light/ into energy.
* Secret :no-export:
Hidden.
* Mitosis
Cell division.
`

func testDeps() (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Dependencies{
		Now:    func() time.Time { return time.UnixMilli(1700000000000) },
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

func writeOrgFile(t *testing.T, content string) (orgPath, outPath string) {
	t.Helper()
	dir := t.TempDir()
	orgPath = filepath.Join(dir, "notes.org")
	outPath = filepath.Join(dir, "deck.apkg")
	if err := os.WriteFile(orgPath, []byte(content), 0o600); err != nil {
		t.Fatalf("writing org file: %v", err)
	}
	return orgPath, outPath
}

func TestRunCreatesPackage(t *testing.T) {
	t.Parallel()

	orgPath, outPath := writeOrgFile(t, testOrg)
	deps, stdout, _ := testDeps()

	err := run(
		[]string{orgPath, "Biology", outPath},
		&cliFlags{deckID: 1234567890},
		deps,
	)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Errorf("output is not a zip archive (starts with %q)", data[:min(4, len(data))])
	}

	if got := stdout.String(); !strings.Contains(got, "Created") || !strings.Contains(got, "2 notes") {
		t.Errorf("stdout = %q, want creation summary with note count", got)
	}
}

func TestRunQuietSuppressesSummary(t *testing.T) {
	t.Parallel()

	orgPath, outPath := writeOrgFile(t, testOrg)
	deps, stdout, _ := testDeps()

	err := run(
		[]string{orgPath, "Biology", outPath},
		&cliFlags{deckID: 1, quiet: true},
		deps,
	)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want nothing in quiet mode", stdout.String())
	}
}

func TestRunVerboseReportsStages(t *testing.T) {
	t.Parallel()

	orgPath, outPath := writeOrgFile(t, testOrg)
	deps, _, stderr := testDeps()

	err := run(
		[]string{orgPath, "Biology", outPath},
		&cliFlags{deckID: 1, verbose: true},
		deps,
	)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, want := range []string{"Parsed 3 nodes", "Exported 2 notes"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr = %q, missing %q", stderr.String(), want)
		}
	}
}

func TestRunRewriteAssignsIDs(t *testing.T) {
	t.Parallel()

	orgPath, outPath := writeOrgFile(t, testOrg)
	deps, _, _ := testDeps()

	err := run(
		[]string{orgPath, "Biology", outPath},
		&cliFlags{deckID: 1, createIDs: true, rewrite: true},
		deps,
	)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}

	rewritten, err := os.ReadFile(orgPath)
	if err != nil {
		t.Fatalf("reading rewritten org file: %v", err)
	}
	got := string(rewritten)
	if !strings.Contains(got, ":PROPERTIES:") || !strings.Contains(got, ":ID: ") {
		t.Errorf("rewritten file = %q, want property drawers with IDs", got)
	}
	// The excluded node must come through untouched.
	if !strings.Contains(got, "* Secret :no-export:") {
		t.Errorf("rewritten file = %q, excluded heading mangled", got)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	orgPath, outPath := writeOrgFile(t, testOrg)

	tests := []struct {
		name    string
		args    []string
		flags   *cliFlags
		wantErr error
	}{
		{
			name:    "too few arguments",
			args:    []string{orgPath},
			flags:   &cliFlags{deckID: 1},
			wantErr: ErrInvalidArgs,
		},
		{
			name:    "wrong extension",
			args:    []string{"notes.txt", "Deck", outPath},
			flags:   &cliFlags{deckID: 1},
			wantErr: ErrInvalidExtension,
		},
		{
			name:    "missing deck id",
			args:    []string{orgPath, "Deck", outPath},
			flags:   &cliFlags{},
			wantErr: ErrMissingDeckID,
		},
		{
			name:    "unreadable input",
			args:    []string{filepath.Join(t.TempDir(), "missing.org"), "Deck", outPath},
			flags:   &cliFlags{deckID: 1},
			wantErr: ErrReadOrgFile,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, _, _ := testDeps()
			err := run(tt.args, tt.flags, deps)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("run() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Deck.ID = 7

	mergeFlags(&cliFlags{deckID: 99, excludeTags: []string{"wip"}}, cfg)
	if cfg.Deck.ID != 99 {
		t.Errorf("Deck.ID = %d, CLI flag should win", cfg.Deck.ID)
	}
	if len(cfg.Export.ExcludeTags) != 1 || cfg.Export.ExcludeTags[0] != "wip" {
		t.Errorf("ExcludeTags = %v, want flag value", cfg.Export.ExcludeTags)
	}

	kept := config.DefaultConfig()
	kept.Deck.ID = 7
	kept.Export.CreateIDs = true
	mergeFlags(&cliFlags{}, kept)
	if kept.Deck.ID != 7 || !kept.Export.CreateIDs {
		t.Errorf("config values lost on merge: %+v", kept)
	}
}
