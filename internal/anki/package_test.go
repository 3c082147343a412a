package anki

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedClock returns a packager option pinning time for reproducible ids.
func fixedClock() PackagerOption {
	at := time.UnixMilli(1700000000000)
	return WithClock(func() time.Time { return at })
}

func buildTestDeck() *Deck {
	model := SimpleModel()
	deck := NewDeck(42, "Biology")
	deck.AddNote(Note{Model: model, Fields: []string{"Q1", "A1"}, GUID: "guid-1"})
	deck.AddNote(Note{Model: model, Fields: []string{"Q2", "A2"}})
	return deck
}

func TestWriteDeckArchiveLayout(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPackager(fixedClock())
	if err := p.WriteDeck(context.Background(), &buf, buildTestDeck()); err != nil {
		t.Fatalf("WriteDeck() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	if !names["collection.anki2"] {
		t.Error("archive missing collection.anki2")
	}
	if !names["media"] {
		t.Error("archive missing media manifest")
	}

	media, err := zr.Open("media")
	if err != nil {
		t.Fatalf("opening media: %v", err)
	}
	defer media.Close()
	data, err := io.ReadAll(media)
	if err != nil {
		t.Fatalf("reading media: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("media = %q, want empty manifest", data)
	}
}

func TestWriteDeckCollectionRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewPackager(fixedClock())
	if err := p.WriteDeck(context.Background(), &buf, buildTestDeck()); err != nil {
		t.Fatalf("WriteDeck() error = %v", err)
	}

	db := extractCollection(t, buf.Bytes())
	defer db.Close()

	var notes, cards int
	if err := db.QueryRow(`SELECT count(*) FROM notes`).Scan(&notes); err != nil {
		t.Fatalf("counting notes: %v", err)
	}
	if err := db.QueryRow(`SELECT count(*) FROM cards`).Scan(&cards); err != nil {
		t.Fatalf("counting cards: %v", err)
	}
	if notes != 2 {
		t.Errorf("notes = %d, want 2", notes)
	}
	if cards != 2 {
		t.Errorf("cards = %d, want one card per note", cards)
	}

	var guid, flds string
	var csum int64
	if err := db.QueryRow(
		`SELECT guid, flds, csum FROM notes ORDER BY id LIMIT 1`,
	).Scan(&guid, &flds, &csum); err != nil {
		t.Fatalf("reading first note: %v", err)
	}
	if guid != "guid-1" {
		t.Errorf("guid = %q, want explicit guid", guid)
	}
	if want := "Q1\x1fA1"; flds != want {
		t.Errorf("flds = %q, want %q", flds, want)
	}
	if want := fieldChecksum("Q1"); csum != want {
		t.Errorf("csum = %d, want %d", csum, want)
	}

	var second string
	if err := db.QueryRow(
		`SELECT guid FROM notes ORDER BY id LIMIT 1 OFFSET 1`,
	).Scan(&second); err != nil {
		t.Fatalf("reading second note: %v", err)
	}
	if want := FieldsGUID("Q2", "A2"); second != want {
		t.Errorf("guid = %q, want derived %q", second, want)
	}

	var ver, usn int
	var decks string
	if err := db.QueryRow(`SELECT ver, usn, decks FROM col`).Scan(&ver, &usn, &decks); err != nil {
		t.Fatalf("reading col row: %v", err)
	}
	if ver != 11 {
		t.Errorf("schema ver = %d, want 11", ver)
	}
	if !bytes.Contains([]byte(decks), []byte(`"Biology"`)) {
		t.Errorf("decks column %q missing deck name", decks)
	}
}

func TestWriteDeckIsReproducible(t *testing.T) {
	t.Parallel()

	var first, second bytes.Buffer
	if err := NewPackager(fixedClock()).WriteDeck(context.Background(), &first, buildTestDeck()); err != nil {
		t.Fatalf("WriteDeck() error = %v", err)
	}
	if err := NewPackager(fixedClock()).WriteDeck(context.Background(), &second, buildTestDeck()); err != nil {
		t.Fatalf("WriteDeck() error = %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("identical input under a fixed clock produced different archives")
	}
}

func TestWriteDeckCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewPackager(fixedClock()).WriteDeck(ctx, &buf, buildTestDeck())
	if err == nil {
		t.Fatal("WriteDeck() with cancelled context succeeded, want error")
	}
}

// extractCollection unpacks collection.anki2 from apkg bytes into a temp
// file and opens it read-only.
func extractCollection(t *testing.T, apkg []byte) *sql.DB {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(apkg), int64(len(apkg)))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	member, err := zr.Open("collection.anki2")
	if err != nil {
		t.Fatalf("opening collection member: %v", err)
	}
	defer member.Close()

	data, err := io.ReadAll(member)
	if err != nil {
		t.Fatalf("reading collection member: %v", err)
	}

	path := filepath.Join(t.TempDir(), "collection.anki2")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing collection file: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening collection db: %v", err)
	}
	return db
}
