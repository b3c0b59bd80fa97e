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

// ParseMorphGNT reads MorphGNT columns:
//
//	BBCCVV POS PARSE TEXT WORD NORMALIZED LEMMA
//
// BB is the canonical book number (01 Matthew .. 27 Revelation). TEXT
// carries the punctuation, WORD the bare word.
func ParseMorphGNT(r io.Reader, path string, b *corpus.Builder) error {
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 7 {
			return errors.NewParse("morphgnt", path, lineNo, fmt.Sprintf("expected 7 columns, got %d", len(fields)))
		}
		book, chapter, verse, err := parseBCV(fields[0])
		if err != nil {
			return errors.NewParse("morphgnt", path, lineNo, err.Error())
		}

		printed, word := fields[3], fields[4]
		after := " "
		if rest, ok := strings.CutPrefix(printed, word); ok {
			after = rest + " "
		}
		b.Add(corpus.WordRecord{
			BookCode:   book.Code,
			Chapter:    chapter,
			Verse:      verse,
			Text:       word,
			After:      after,
			Normalized: fields[5],
			Lemma:      fields[6],
			Morph:      fields[1] + " " + fields[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return errors.NewIO("scan", path, err)
	}
	return nil
}

func parseBCV(ref string) (corpus.BookInfo, int, int, error) {
	if len(ref) != 6 {
		return corpus.BookInfo{}, 0, 0, fmt.Errorf("malformed reference %q", ref)
	}
	n, err1 := strconv.Atoi(ref[0:2])
	chapter, err2 := strconv.Atoi(ref[2:4])
	verse, err3 := strconv.Atoi(ref[4:6])
	if err1 != nil || err2 != nil || err3 != nil {
		return corpus.BookInfo{}, 0, 0, fmt.Errorf("malformed reference %q", ref)
	}
	book, ok := corpus.BookByNumber(n)
	if !ok {
		return corpus.BookInfo{}, 0, 0, fmt.Errorf("unknown book number %d", n)
	}
	return book, chapter, verse, nil
}
