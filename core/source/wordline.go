package source

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
)

// ParseWordline reads Tischendorf word-per-line text. Each line holds
//
//	BOOK C:V.W BREAK SURFACE MORPH STRONGS LEMMA [! NORMALIZED ...]
//
// e.g. "MT 1:1.1 P Βίβλος N-NSF 976 βίβλος ! βίβλος". Blank lines and
// lines starting with '#' are skipped.
func ParseWordline(r io.Reader, path string, b *corpus.Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 7 {
			return errors.NewParse("wordline", path, lineNo, fmt.Sprintf("expected at least 7 fields, got %d", len(fields)))
		}
		chapter, verse, err := parseWordRef(fields[1])
		if err != nil {
			return errors.NewParse("wordline", path, lineNo, err.Error())
		}

		text, after := trailingPunct(fields[3])
		rec := corpus.WordRecord{
			BookCode: fields[0],
			Chapter:  chapter,
			Verse:    verse,
			Text:     text,
			After:    after,
			Morph:    fields[4],
			Strongs:  fields[5],
			Lemma:    fields[6],
		}
		if len(fields) > 8 && fields[7] == "!" {
			rec.Normalized = fields[8]
		}
		b.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIO("scan", path, err)
	}
	return nil
}

// parseWordRef parses "C:V" or "C:V.W"; the word index is ignored because
// words are numbered by their order in the file.
func parseWordRef(ref string) (chapter, verse int, err error) {
	cv, _, _ := strings.Cut(ref, ".")
	c, v, ok := strings.Cut(cv, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed reference %q", ref)
	}
	if chapter, err = strconv.Atoi(c); err != nil {
		return 0, 0, fmt.Errorf("malformed chapter in %q", ref)
	}
	if verse, err = strconv.Atoi(v); err != nil {
		return 0, 0, fmt.Errorf("malformed verse in %q", ref)
	}
	return chapter, verse, nil
}
