package corpus

import (
	"fmt"

	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
)

// WordRecord is one word of a source file, in text order.
type WordRecord struct {
	BookCode   string // Tischendorf book code, e.g. "MT"
	Chapter    int
	Verse      int
	Text       string // surface form as printed
	After      string // trailing material (space, punctuation)
	Normalized string
	Lemma      string
	Morph      string
	Strongs    string
	Gloss      string
}

// Builder accumulates words and produces an immutable Corpus.
type Builder struct {
	name    string
	version string
	words   []WordRecord
	glosses map[string]string
}

// NewBuilder starts a corpus with the given name and data version.
func NewBuilder(name, version string) *Builder {
	return &Builder{name: name, version: version}
}

// Add appends a word. Words must arrive in text order.
func (b *Builder) Add(w WordRecord) {
	b.words = append(b.words, w)
}

// Len returns the number of words added so far.
func (b *Builder) Len() int {
	return len(b.words)
}

// SetGlosses supplies lemma glosses for words and lexemes that carry none.
func (b *Builder) SetGlosses(glosses map[string]string) {
	b.glosses = glosses
}

type run struct {
	first, last Node
	section     Section
	code        string
}

// Build validates the words and lays out the node space: slots first, then
// books, chapters, verses and lexemes.
func (b *Builder) Build() (*Corpus, error) {
	if len(b.words) == 0 {
		return nil, errors.NewValidation("corpus", b.name, "no words")
	}

	var books, chapters, verses []run
	for i, w := range b.words {
		info, ok := LookupBook(w.BookCode)
		if !ok {
			return nil, errors.NewNotFound("book", w.BookCode)
		}
		if w.Chapter < 1 || w.Verse < 1 {
			return nil, errors.NewValidation("reference", fmt.Sprintf("%s %d:%d", w.BookCode, w.Chapter, w.Verse), "chapter and verse must be positive")
		}
		slot := Node(i + 1)
		books = extend(books, slot, Section{Book: info.Name}, info.Code)
		chapters = extend(chapters, slot, Section{Book: info.Name, Chapter: w.Chapter}, info.Code)
		verses = extend(verses, slot, Section{Book: info.Name, Chapter: w.Chapter, Verse: w.Verse}, info.Code)
	}

	c := &Corpus{
		Name:      b.name,
		Version:   b.version,
		slotCount: len(b.words),
		byType:    make(map[OType][]Node),
		features:  make(map[string][]string),
		sections:  make(map[Section]Node),
	}
	c.nodes = make([]nodeInfo, 1, len(b.words)+len(books)+len(chapters)+len(verses)+1)

	verseOf := make([]Section, len(b.words)+1)
	for _, v := range verses {
		for s := v.first; s <= v.last; s++ {
			verseOf[s] = v.section
		}
	}
	for i := range b.words {
		slot := Node(i + 1)
		c.nodes = append(c.nodes, nodeInfo{otype: Word, first: slot, last: slot, section: verseOf[slot]})
		c.byType[Word] = append(c.byType[Word], slot)
	}

	addRuns := func(t OType, runs []run) {
		for _, r := range runs {
			n := Node(len(c.nodes))
			c.nodes = append(c.nodes, nodeInfo{otype: t, first: r.first, last: r.last, section: r.section})
			c.byType[t] = append(c.byType[t], n)
			if _, dup := c.sections[r.section]; dup {
				continue
			}
			c.sections[r.section] = n
		}
	}
	addRuns(Book, books)
	addRuns(Chapter, chapters)
	addRuns(Verse, verses)

	lexemes := b.collectLexemes()
	for _, lx := range lexemes {
		n := Node(len(c.nodes))
		c.nodes = append(c.nodes, nodeInfo{
			otype:   Lexeme,
			first:   lx.slots[0],
			last:    lx.slots[len(lx.slots)-1],
			slots:   lx.slots,
			section: verseOf[lx.slots[0]],
		})
		c.byType[Lexeme] = append(c.byType[Lexeme], n)
	}

	b.fillFeatures(c, books, chapters, verses, lexemes)
	return c, nil
}

// extend grows the last run when the section repeats, or opens a new one.
func extend(runs []run, slot Node, s Section, code string) []run {
	if len(runs) > 0 && runs[len(runs)-1].section == s && runs[len(runs)-1].last == slot-1 {
		runs[len(runs)-1].last = slot
		return runs
	}
	return append(runs, run{first: slot, last: slot, section: s, code: code})
}

type lexeme struct {
	lemma string
	gloss string
	slots []Node
}

func (b *Builder) collectLexemes() []*lexeme {
	index := make(map[string]*lexeme)
	var order []*lexeme
	for i, w := range b.words {
		if w.Lemma == "" {
			continue
		}
		lx, ok := index[w.Lemma]
		if !ok {
			lx = &lexeme{lemma: w.Lemma}
			index[w.Lemma] = lx
			order = append(order, lx)
		}
		if lx.gloss == "" {
			lx.gloss = b.gloss(w)
		}
		lx.slots = append(lx.slots, Node(i+1))
	}
	return order
}

func (b *Builder) gloss(w WordRecord) string {
	if w.Gloss != "" {
		return w.Gloss
	}
	return b.glosses[w.Lemma]
}

func (b *Builder) fillFeatures(c *Corpus, books, chapters, verses []run, lexemes []*lexeme) {
	size := len(c.nodes)
	set := func(name string, n Node, value string) {
		if value == "" {
			return
		}
		values, ok := c.features[name]
		if !ok {
			values = make([]string, size)
			c.features[name] = values
		}
		values[n] = value
	}

	for i, w := range b.words {
		slot := Node(i + 1)
		normalized := w.Normalized
		if normalized == "" {
			normalized = w.Text
		}
		set("text", slot, w.Text)
		set("after", slot, w.After)
		set("normalized", slot, normalized)
		set("plain", slot, StripAccents(normalized))
		set("trans", slot, Transliterate(w.Text))
		set("lemma", slot, w.Lemma)
		set("morph", slot, w.Morph)
		set("strongs", slot, w.Strongs)
		set("gloss", slot, b.gloss(w))
	}

	for _, t := range []struct {
		otype OType
		runs  []run
	}{{Book, books}, {Chapter, chapters}, {Verse, verses}} {
		for i, r := range t.runs {
			n := c.byType[t.otype][i]
			set("book", n, r.section.Book)
			set("book_code", n, r.code)
			if r.section.Chapter > 0 {
				set("chapter", n, fmt.Sprint(r.section.Chapter))
			}
			if r.section.Verse > 0 {
				set("verse", n, fmt.Sprint(r.section.Verse))
			}
		}
	}

	for i, lx := range lexemes {
		n := c.byType[Lexeme][i]
		set("lemma", n, lx.lemma)
		set("gloss", n, lx.gloss)
	}
}
