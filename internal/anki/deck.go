package anki

import (
	"crypto/sha1" // #nosec G505 -- Anki's checksum column is defined over SHA-1
	"encoding/binary"
	"strings"
)

// Note is one flashcard note: an ordered list of field values rendered
// through a model's templates.
type Note struct {
	Model  *Model
	Fields []string
	Tags   []string

	// GUID is the note's stable identity used by Anki for deduplication
	// on re-import. Empty means derive it from the field contents.
	GUID string
}

// EffectiveGUID returns the note's explicit GUID, or the field-content
// hash when none was assigned.
func (n Note) EffectiveGUID() string {
	if n.GUID != "" {
		return n.GUID
	}
	return FieldsGUID(n.Fields...)
}

// Deck is an ordered collection of notes destined for one .apkg file.
type Deck struct {
	ID          int64
	Name        string
	Description string

	notes []Note
}

// NewDeck creates an empty deck.
func NewDeck(id int64, name string) *Deck {
	return &Deck{ID: id, Name: name}
}

// AddNote appends a note to the deck.
func (d *Deck) AddNote(n Note) {
	d.notes = append(d.notes, n)
}

// Notes returns the deck's notes in insertion order.
func (d *Deck) Notes() []Note {
	return d.notes
}

// joinFields packs field values into Anki's field-separator format.
func joinFields(fields []string) string {
	return strings.Join(fields, "\x1f")
}

// formatTags renders a tag list for the notes table. Anki pads the list
// with spaces so tags can be matched with simple substring search.
func formatTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

// sortField returns the note's sort field (the first field by this
// project's models).
func sortField(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// fieldChecksum computes the notes.csum column: the first four bytes of
// the SHA-1 of the sort field, as an integer. Anki uses it to find
// duplicates without comparing full field contents.
func fieldChecksum(sfld string) int64 {
	sum := sha1.Sum([]byte(sfld)) // #nosec G401 -- format-mandated, not security-sensitive
	return int64(binary.BigEndian.Uint32(sum[:4]))
}
