// Package anki assembles Anki deck packages (.apkg). A package is a zip
// archive holding a schema-version-11 SQLite collection (collection.anki2)
// and a media manifest. The package produces byte-compatible collections
// for the fixed two-field question/answer model this project exports.
package anki
