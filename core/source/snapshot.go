package source

import (
	"context"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/core/sqlite"
)

// SnapshotSchema is the table layout read by LoadSnapshot.
const SnapshotSchema = `CREATE TABLE words (
	slot       INTEGER PRIMARY KEY,
	book_code  TEXT NOT NULL,
	chapter    INTEGER NOT NULL,
	verse      INTEGER NOT NULL,
	text       TEXT NOT NULL,
	after      TEXT,
	normalized TEXT,
	lemma      TEXT,
	morph      TEXT,
	strongs    TEXT,
	gloss      TEXT
)`

const snapshotQuery = `SELECT book_code, chapter, verse, text,
	COALESCE(after, ''), COALESCE(normalized, ''), COALESCE(lemma, ''),
	COALESCE(morph, ''), COALESCE(strongs, ''), COALESCE(gloss, '')
	FROM words ORDER BY slot`

// LoadSnapshot reads the words table of a SQLite snapshot in slot order.
// The database is opened read-only.
func LoadSnapshot(ctx context.Context, path string, b *corpus.Builder) error {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return errors.NewIO("open snapshot", path, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, snapshotQuery)
	if err != nil {
		return errors.NewIO("query snapshot", path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec corpus.WordRecord
		if err := rows.Scan(&rec.BookCode, &rec.Chapter, &rec.Verse, &rec.Text,
			&rec.After, &rec.Normalized, &rec.Lemma, &rec.Morph, &rec.Strongs, &rec.Gloss); err != nil {
			return errors.NewIO("scan snapshot", path, err)
		}
		b.Add(rec)
	}
	if err := rows.Err(); err != nil {
		return errors.NewIO("read snapshot", path, err)
	}
	return nil
}
