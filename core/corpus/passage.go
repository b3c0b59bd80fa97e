package corpus

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
)

// Passage is a parsed passage reference. Zero Chapter or Verse means the
// reference addresses a whole book or chapter.
type Passage struct {
	Book     BookInfo
	Chapter  int
	Verse    int
	VerseEnd int
}

// Section returns the section addressed by the start of the passage.
func (p Passage) Section() Section {
	return Section{Book: p.Book.Name, Chapter: p.Chapter, Verse: p.Verse}
}

// String renders the passage as "Book C:V" or "Book C:V-W".
func (p Passage) String() string {
	s := p.Section().String()
	if p.VerseEnd > p.Verse && p.Verse > 0 {
		s += "-" + strconv.Itoa(p.VerseEnd)
	}
	return s
}

// Passage grammar. Accepted forms include "Matthew 1:1", "Matt 1",
// "1 Cor 2:3-5", "MT 1:1" and the OSIS style "Matt.1.1".
//
//nolint:govet // participle grammar tags are not standard struct tags
type passageGrammar struct {
	Prefix  *int         `parser:"@Int?"`
	Name    []string     `parser:"@Ident+ \".\"?"`
	Chapter *chapterSpec `parser:"@@?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterSpec struct {
	Number int        `parser:"@Int"`
	Verse  *verseSpec `parser:"( (\":\" | \".\") @@ )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type verseSpec struct {
	Number int  `parser:"@Int"`
	End    *int `parser:"( \"-\" @Int )?"`
}

var passageLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[\p{L}_]+`},
	{Name: "Punct", Pattern: `[.:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var passageParser = participle.MustBuild[passageGrammar](
	participle.Lexer(passageLexer),
	participle.Elide("Whitespace"),
)

// ParsePassage parses a passage reference and resolves its book.
func ParsePassage(s string) (Passage, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Passage{}, errors.NewParse("passage", "", 0, "empty reference")
	}

	parsed, err := passageParser.ParseString("", s)
	if err != nil {
		return Passage{}, errors.NewParse("passage", "", 0, fmt.Sprintf("%q: %v", s, err))
	}

	name := strings.Join(parsed.Name, " ")
	if parsed.Prefix != nil {
		name = strconv.Itoa(*parsed.Prefix) + name
	}
	book, ok := LookupBook(name)
	if !ok {
		return Passage{}, errors.NewNotFound("book", name)
	}

	p := Passage{Book: book}
	if parsed.Chapter != nil {
		p.Chapter = parsed.Chapter.Number
		if v := parsed.Chapter.Verse; v != nil {
			p.Verse = v.Number
			if v.End != nil {
				p.VerseEnd = *v.End
			}
		}
	}
	return p, nil
}

// Lookup resolves a passage reference to its section node: a book, chapter
// or verse. For verse ranges the first verse is returned.
func (c *Corpus) Lookup(ref string) (Node, error) {
	p, err := ParsePassage(ref)
	if err != nil {
		return 0, err
	}
	n, ok := c.NodeFromSection(p.Section())
	if !ok {
		return 0, errors.NewNotFound("passage", p.String())
	}
	return n, nil
}

// LookupRange resolves a passage to the list of section nodes it covers.
// Verse ranges expand to every verse present in the corpus; other
// references yield a single node.
func (c *Corpus) LookupRange(ref string) ([]Node, error) {
	p, err := ParsePassage(ref)
	if err != nil {
		return nil, err
	}
	if p.Verse == 0 || p.VerseEnd <= p.Verse {
		n, ok := c.NodeFromSection(p.Section())
		if !ok {
			return nil, errors.NewNotFound("passage", p.String())
		}
		return []Node{n}, nil
	}

	var nodes []Node
	for v := p.Verse; v <= p.VerseEnd; v++ {
		if n, ok := c.NodeFromSection(Section{Book: p.Book.Name, Chapter: p.Chapter, Verse: v}); ok {
			nodes = append(nodes, n)
		}
	}
	if len(nodes) == 0 {
		return nil, errors.NewNotFound("passage", p.String())
	}
	return nodes, nil
}

// ResolveNode accepts either a node number or a passage reference.
func (c *Corpus) ResolveNode(arg string) (Node, error) {
	if id, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		if !c.valid(Node(id)) {
			return 0, errors.NewNotFound("node", arg)
		}
		return Node(id), nil
	}
	return c.Lookup(arg)
}
