package anki

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// collectionFileName is the archive member Anki expects the collection
// database under.
const collectionFileName = "collection.anki2"

// PackagerOption configures a Packager.
type PackagerOption func(*Packager)

// WithClock overrides the packager's time source. Tests use it to produce
// stable row ids and timestamps.
func WithClock(now func() time.Time) PackagerOption {
	return func(p *Packager) {
		p.now = now
	}
}

// Packager writes decks as .apkg archives. The SQLite collection is built
// in a scratch directory and zipped together with an empty media manifest.
type Packager struct {
	now func() time.Time
}

// NewPackager creates a Packager with the wall clock.
func NewPackager(opts ...PackagerOption) *Packager {
	p := &Packager{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WriteDeck builds the .apkg archive for deck and streams it to w.
func (p *Packager) WriteDeck(ctx context.Context, w io.Writer, deck *Deck) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "org2anki-*")
	if err != nil {
		return fmt.Errorf("creating scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	dbPath := filepath.Join(dir, collectionFileName)
	if err := writeCollection(ctx, dbPath, deck, p.now().UnixMilli()); err != nil {
		return err
	}

	collection, err := os.ReadFile(dbPath) // #nosec G304 -- path is under our own scratch dir
	if err != nil {
		return fmt.Errorf("reading collection: %w", err)
	}

	zw := zip.NewWriter(w)
	if err := writeZipMember(zw, collectionFileName, collection); err != nil {
		return err
	}
	// No media is exported; Anki still requires the manifest.
	if err := writeZipMember(zw, "media", []byte("{}")); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}

func writeZipMember(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating archive member %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing archive member %s: %w", name, err)
	}
	return nil
}
