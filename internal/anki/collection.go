package anki

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

// collectionSchema is Anki's schema version 11 for collection.anki2.
const collectionSchema = `
CREATE TABLE col (
    id integer primary key,
    crt integer not null,
    mod integer not null,
    scm integer not null,
    ver integer not null,
    dty integer not null,
    usn integer not null,
    ls integer not null,
    conf text not null,
    models text not null,
    decks text not null,
    dconf text not null,
    tags text not null
);
CREATE TABLE notes (
    id integer primary key,
    guid text not null,
    mid integer not null,
    mod integer not null,
    usn integer not null,
    tags text not null,
    flds text not null,
    sfld integer not null,
    csum integer not null,
    flags integer not null,
    data text not null
);
CREATE TABLE cards (
    id integer primary key,
    nid integer not null,
    did integer not null,
    ord integer not null,
    mod integer not null,
    usn integer not null,
    type integer not null,
    queue integer not null,
    due integer not null,
    ivl integer not null,
    factor integer not null,
    reps integer not null,
    lapses integer not null,
    left integer not null,
    odue integer not null,
    odid integer not null,
    flags integer not null,
    data text not null
);
CREATE TABLE revlog (
    id integer primary key,
    cid integer not null,
    usn integer not null,
    ease integer not null,
    ivl integer not null,
    lastIvl integer not null,
    factor integer not null,
    time integer not null,
    type integer not null
);
CREATE TABLE graves (
    usn integer not null,
    oid integer not null,
    type integer not null
);
CREATE INDEX ix_notes_usn ON notes (usn);
CREATE INDEX ix_cards_usn ON cards (usn);
CREATE INDEX ix_revlog_usn ON revlog (usn);
CREATE INDEX ix_cards_nid ON cards (nid);
CREATE INDEX ix_cards_sched ON cards (did, queue, due);
CREATE INDEX ix_revlog_cid ON revlog (cid);
CREATE INDEX ix_notes_csum ON notes (csum);
`

// writeCollection creates collection.anki2 at path and fills it with the
// deck's notes and cards. All timestamps derive from nowMillis so output
// is reproducible under an injected clock.
func writeCollection(ctx context.Context, path string, deck *Deck, nowMillis int64) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening collection: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, collectionSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	nowSeconds := nowMillis / 1000

	models, err := modelsJSON(collectionModel(deck), deck.ID, nowSeconds)
	if err != nil {
		return err
	}
	decks, err := decksJSON(deck, nowSeconds)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		 VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		nowSeconds, nowMillis, nowMillis, confJSON, models, decks, dconfJSON,
	); err != nil {
		return fmt.Errorf("writing collection row: %w", err)
	}

	return writeNotes(ctx, db, deck, nowMillis)
}

// collectionModel returns the model shared by the deck's notes, falling
// back to the default model for an empty deck.
func collectionModel(deck *Deck) *Model {
	if notes := deck.Notes(); len(notes) > 0 && notes[0].Model != nil {
		return notes[0].Model
	}
	return SimpleModel()
}

// writeNotes inserts one notes row and one cards row per template for
// every note. Row ids are allocated from a shared millisecond counter,
// matching how Anki itself assigns ids at creation time.
func writeNotes(ctx context.Context, db *sql.DB, deck *Deck, nowMillis int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	nextID := nowMillis
	nowSeconds := nowMillis / 1000

	for _, note := range deck.Notes() {
		noteID := nextID
		nextID++

		fields := joinFields(note.Fields)
		sfld := sortField(note.Fields)

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notes (id, guid, mid, mod, usn, tags, flds, sfld, csum, flags, data)
			 VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`,
			noteID, note.EffectiveGUID(), note.Model.ID, nowSeconds,
			formatTags(note.Tags), fields, sfld, fieldChecksum(sfld),
		); err != nil {
			return fmt.Errorf("writing note: %w", err)
		}

		for ord := range note.Model.Templates {
			cardID := nextID
			nextID++
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cards (id, nid, did, ord, mod, usn, type, queue, due, ivl,
				                    factor, reps, lapses, left, odue, odid, flags, data)
				 VALUES (?, ?, ?, ?, ?, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
				cardID, noteID, deck.ID, ord, nowSeconds,
			); err != nil {
				return fmt.Errorf("writing card: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing notes: %w", err)
	}
	return nil
}
