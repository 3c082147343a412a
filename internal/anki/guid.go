package anki

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
)

// base91Table is the alphabet Anki-compatible tooling uses for compact
// note GUIDs. Order matters: changing it changes every derived GUID.
const base91Table = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789!#$%&()*+,-./:;<=>?@[]^_`{|}~"

// FieldsGUID derives a deterministic GUID from a note's field values.
// The fields are joined, hashed with SHA-256, truncated to 64 bits, and
// encoded in base 91. Notes with identical fields therefore share a GUID
// and collapse into one on import.
func FieldsGUID(fields ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(fields, "__")))
	n := binary.BigEndian.Uint64(sum[:8])

	var buf [16]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = base91Table[n%91]
		n /= 91
	}
	return string(buf[i:])
}
