// Package source reads Greek New Testament word lists from the formats the
// corpus is published in and builds corpora from them.
//
// Supported inputs:
//   - wordline: Tischendorf word-per-line text
//   - morphgnt: MorphGNT space or tab separated columns
//   - osis: OSIS XML with <w> elements inside container <verse> elements
//   - sqlite: a read-only snapshot with one row per word
//
// Text inputs may be xz compressed; the ".xz" suffix is detected and
// stripped before the format is chosen.
package source

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/internal/validation"
)

// Format names a source format.
type Format string

// Source formats.
const (
	FormatAuto     Format = ""
	FormatWordline Format = "wordline"
	FormatMorphGNT Format = "morphgnt"
	FormatOSIS     Format = "osis"
	FormatSQLite   Format = "sqlite"
)

// Formats lists the supported formats.
var Formats = []Format{FormatWordline, FormatMorphGNT, FormatOSIS, FormatSQLite}

// ParseFormat validates a format name. The empty name selects detection.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == FormatAuto {
		return f, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.NewValidation("format", s, "expected wordline, morphgnt, osis or sqlite")
}

// DetectFormat chooses a format from the file extension, ignoring ".xz".
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(strings.TrimSuffix(path, ".xz"))
	switch filepath.Ext(name) {
	case ".txt":
		return FormatWordline, nil
	case ".tsv", ".morphgnt":
		return FormatMorphGNT, nil
	case ".xml", ".osis":
		return FormatOSIS, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", errors.NewUnsupported("source format", filepath.Base(path))
}

// IsCompressed reports whether path names an xz compressed file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".xz")
}

// ReadFile returns the contents of path, decompressed when it ends in ".xz".
func ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if err := checkContent(path, raw); err != nil {
		return nil, err
	}
	if !IsCompressed(path) {
		return raw, nil
	}
	xzr, err := xz.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.NewIO("xz reader", path, err)
	}
	data, err := io.ReadAll(xzr)
	if err != nil {
		return nil, errors.NewIO("xz decompress", path, err)
	}
	return data, nil
}

// checkContent rejects files whose header contradicts their extension,
// such as a ".db" file that is not a SQLite database.
func checkContent(path string, raw []byte) error {
	if _, err := validation.CheckContent(bytes.NewReader(raw), path); err != nil {
		return errors.NewValidation("content", path, err.Error())
	}
	return nil
}

// Parser reads one text source and adds its words to b.
type Parser func(r io.Reader, path string, b *corpus.Builder) error

// ParserFor returns the parser of a text format.
func ParserFor(f Format) (Parser, error) {
	switch f {
	case FormatWordline:
		return ParseWordline, nil
	case FormatMorphGNT:
		return ParseMorphGNT, nil
	case FormatOSIS:
		return ParseOSIS, nil
	}
	return nil, errors.NewUnsupported("text parser", fmt.Sprintf("%q", string(f)))
}

// trailingPunct splits punctuation printed after a word from the word
// itself: "Ἰσαάκ," becomes "Ἰσαάκ" and ", ".
func trailingPunct(surface string) (text, after string) {
	text = strings.TrimRight(surface, ",.;:\u00b7\u0387\u037e")
	return text, surface[len(text):] + " "
}
