package source

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/internal/logging"
)

var (
	osisVerseExpr = xpath.MustCompile(`//verse[@osisID]`)
	osisWordExpr  = xpath.MustCompile(`.//w`)
)

// ParseOSIS reads OSIS XML. Words are <w> elements inside container
// <verse osisID="Matt.1.1"> elements; the lemma attribute may carry
// "strong:G0976 lemma.Strong:βίβλος" and morph "robinson:N-NSF". Text
// between words becomes the preceding word's trailing material.
// Milestone verses and verses of unknown books are skipped with a warning.
func ParseOSIS(r io.Reader, path string, b *corpus.Builder) error {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return errors.NewParse("osis", path, 0, err.Error())
	}

	for _, v := range xmlquery.QuerySelectorAll(doc, osisVerseExpr) {
		id := strings.Fields(v.SelectAttr("osisID"))
		if len(id) == 0 {
			continue
		}
		book, chapter, verse, err := parseOSISRef(id[0])
		if err != nil {
			logging.SourceError(path, 0, err, "osis_id", id[0])
			continue
		}

		for _, w := range xmlquery.QuerySelectorAll(v, osisWordExpr) {
			lemma, strongs := parseOSISLemma(w.SelectAttr("lemma"))
			b.Add(corpus.WordRecord{
				BookCode: book.Code,
				Chapter:  chapter,
				Verse:    verse,
				Text:     strings.TrimSpace(w.InnerText()),
				After:    osisAfter(w),
				Lemma:    lemma,
				Strongs:  strongs,
				Morph:    stripScheme(w.SelectAttr("morph")),
			})
		}
	}
	return nil
}

func parseOSISRef(id string) (corpus.BookInfo, int, int, error) {
	parts := strings.Split(id, ".")
	if len(parts) != 3 {
		return corpus.BookInfo{}, 0, 0, fmt.Errorf("osisID %q is not Book.Chapter.Verse", id)
	}
	book, ok := corpus.LookupBook(parts[0])
	if !ok {
		return corpus.BookInfo{}, 0, 0, errors.NewNotFound("book", parts[0])
	}
	chapter, err1 := strconv.Atoi(parts[1])
	verse, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return corpus.BookInfo{}, 0, 0, fmt.Errorf("osisID %q has a non-numeric chapter or verse", id)
	}
	return book, chapter, verse, nil
}

// parseOSISLemma splits a lemma attribute into the lemma and the Strong's
// number without its "G" prefix and leading zeros.
func parseOSISLemma(attr string) (lemma, strongs string) {
	for _, tok := range strings.Fields(attr) {
		scheme, value, ok := strings.Cut(tok, ":")
		if !ok {
			if lemma == "" {
				lemma = tok
			}
			continue
		}
		switch {
		case strings.EqualFold(scheme, "strong"):
			strongs = strings.TrimLeft(strings.TrimPrefix(value, "G"), "0")
		case strings.HasPrefix(strings.ToLower(scheme), "lemma"):
			lemma = value
		}
	}
	return lemma, strongs
}

func stripScheme(attr string) string {
	if _, value, ok := strings.Cut(attr, ":"); ok {
		return value
	}
	return attr
}

// osisAfter returns the text following w up to the next element, with
// surrounding whitespace folded to one trailing space.
func osisAfter(w *xmlquery.Node) string {
	if next := w.NextSibling; next != nil && next.Type == xmlquery.TextNode {
		return strings.TrimSpace(next.Data) + " "
	}
	return " "
}
