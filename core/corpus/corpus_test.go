package corpus_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/corpus/corpustest"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
)

func TestOTypes(t *testing.T) {
	c := corpustest.New()

	tests := []struct {
		node corpus.Node
		want corpus.OType
	}{
		{1, corpus.Word},
		{14, corpus.Word},
		{corpustest.Matthew, corpus.Book},
		{corpustest.Mark1, corpus.Chapter},
		{corpustest.Matthew1v2, corpus.Verse},
		{corpustest.LexBiblos, corpus.Lexeme},
		{0, corpus.Unknown},
		{999, corpus.Unknown},
	}
	for _, tt := range tests {
		if got := c.OType(tt.node); got != tt.want {
			t.Errorf("OType(%d) = %v, want %v", tt.node, got, tt.want)
		}
	}

	if c.MaxNode() != 34 {
		t.Errorf("Expected 34 nodes, got %d", c.MaxNode())
	}
	if c.SlotCount() != 14 {
		t.Errorf("Expected 14 slots, got %d", c.SlotCount())
	}
}

func TestRanks(t *testing.T) {
	order := []corpus.OType{corpus.Unknown, corpus.Word, corpus.Lexeme, corpus.Verse, corpus.Chapter, corpus.Book}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Errorf("Expected rank(%v) < rank(%v)", order[i-1], order[i])
		}
	}
	if !corpus.Verse.IsSection() || corpus.Word.IsSection() || corpus.Lexeme.IsSection() {
		t.Error("IsSection misclassifies types")
	}
	if corpus.ParseOType("lexeme") != corpus.Lexeme || corpus.ParseOType("LEX") != corpus.Lexeme {
		t.Error("ParseOType should accept lex and lexeme")
	}
	if corpus.ParseOType("paragraph") != corpus.Unknown {
		t.Error("ParseOType should map unknown names to Unknown")
	}
}

func TestDescendants(t *testing.T) {
	c := corpustest.New()

	tests := []struct {
		name  string
		node  corpus.Node
		otype corpus.OType
		want  []corpus.Node
	}{
		{"verse words", corpustest.Matthew1v1, corpus.Word, []corpus.Node{1, 2, 3, 4}},
		{"chapter verses", corpustest.Matthew1, corpus.Verse, []corpus.Node{corpustest.Matthew1v1, corpustest.Matthew1v2}},
		{"book chapters", corpustest.Matthew, corpus.Chapter, []corpus.Node{corpustest.Matthew1, corpustest.Matthew2}},
		{"lexeme occurrences", corpustest.LexHo, corpus.Word, []corpus.Node{7, 9, 13}},
		{"word has none", 3, corpus.Word, nil},
		{"no upward descent", corpustest.Matthew1v1, corpus.Chapter, nil},
		{"invalid node", 999, corpus.Word, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Descendants(tt.node, tt.otype)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Descendants(%d, %v) = %v, want %v", tt.node, tt.otype, got, tt.want)
			}
		})
	}
}

func TestSections(t *testing.T) {
	c := corpustest.New()

	tests := []struct {
		node  corpus.Node
		want  corpus.Section
		label string
	}{
		{3, corpus.Section{Book: "Matthew", Chapter: 1, Verse: 1}, "Matthew 1:1"},
		{corpustest.Matthew2v1, corpus.Section{Book: "Matthew", Chapter: 2, Verse: 1}, "Matthew 2:1"},
		{corpustest.Mark1, corpus.Section{Book: "Mark", Chapter: 1}, "Mark 1"},
		{corpustest.Matthew, corpus.Section{Book: "Matthew"}, "Matthew"},
		{corpustest.LexIesous, corpus.Section{Book: "Matthew", Chapter: 1, Verse: 1}, "Matthew 1:1"},
	}
	for _, tt := range tests {
		got := c.SectionFromNode(tt.node)
		if got != tt.want {
			t.Errorf("SectionFromNode(%d) = %+v, want %+v", tt.node, got, tt.want)
		}
		if got.String() != tt.label {
			t.Errorf("label of %d = %q, want %q", tt.node, got.String(), tt.label)
		}
		if tt.node > 14 && c.OType(tt.node).IsSection() {
			if back, ok := c.NodeFromSection(got); !ok || back != tt.node {
				t.Errorf("NodeFromSection(%+v) = %d, want %d", got, back, tt.node)
			}
		}
	}

	if got := (corpus.Section{Book: "Mark", Chapter: 1, Verse: 1}).Label(" ", "."); got != "Mark 1.1" {
		t.Errorf("Label with custom separators = %q", got)
	}
}

func TestFeatures(t *testing.T) {
	c := corpustest.New()

	if got := c.Feature("book_code", corpustest.Mark); got != "MR" {
		t.Errorf("Expected book_code MR, got %q", got)
	}
	if got := c.Feature("lemma", 1); got != "βίβλος" {
		t.Errorf("Expected lemma βίβλος, got %q", got)
	}
	if got := c.Feature("gloss", corpustest.LexIesous); got != "Jesus" {
		t.Errorf("Expected lexeme gloss Jesus, got %q", got)
	}
	if got := c.Feature("verse", corpustest.Matthew1v2); got != "2" {
		t.Errorf("Expected verse feature 2, got %q", got)
	}
	if got := c.Feature("no_such_feature", 1); got != "" {
		t.Errorf("Expected empty value for missing feature, got %q", got)
	}
	names := c.FeatureNames()
	for _, want := range []string{"book", "book_code", "gloss", "lemma", "morph", "text", "trans"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected feature %q in %v", want, names)
		}
	}
}

func TestText(t *testing.T) {
	c := corpustest.New()

	tests := []struct {
		name   string
		nodes  []corpus.Node
		format string
		want   string
	}{
		{"single word", []corpus.Node{1}, "", "Βίβλος "},
		{"verse expands to words", []corpus.Node{corpustest.Matthew1v1}, corpus.FormatOrigFull, "Βίβλος γενέσεως Ἰησοῦ Χριστοῦ "},
		{"plain strips accents", []corpus.Node{1, 2}, corpus.FormatOrigPlain, "Βιβλος γενεσεως "},
		{"transliteration", []corpus.Node{1}, corpus.FormatTransPlain, "Biblos "},
		{"unknown format falls back", []corpus.Node{4}, "text-bogus", "Χριστοῦ "},
		{"invalid nodes skipped", []corpus.Node{0, 999}, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Text(tt.nodes, tt.format); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}

	if !reflect.DeepEqual(c.Formats(), []string{corpus.FormatOrigFull, corpus.FormatOrigPlain, corpus.FormatTransPlain}) {
		t.Errorf("unexpected formats %v", c.Formats())
	}
}

func TestBuilderErrors(t *testing.T) {
	if _, err := corpus.NewBuilder("empty", "1").Build(); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Expected invalid input for empty corpus, got %v", err)
	}

	b := corpus.NewBuilder("bad", "1")
	b.Add(corpus.WordRecord{BookCode: "GEN", Chapter: 1, Verse: 1, Text: "x"})
	if _, err := b.Build(); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Expected unknown book error, got %v", err)
	}

	b = corpus.NewBuilder("bad", "1")
	b.Add(corpus.WordRecord{BookCode: "MT", Chapter: 0, Verse: 1, Text: "x"})
	if _, err := b.Build(); err == nil {
		t.Error("Expected error for chapter 0")
	}
}

func TestBuilderGlosses(t *testing.T) {
	b := corpus.NewBuilder("glossed", "1")
	b.Add(corpus.WordRecord{BookCode: "JOH", Chapter: 1, Verse: 1, Text: "Ἐν", After: " ", Lemma: "ἐν"})
	b.SetGlosses(map[string]string{"ἐν": "in"})
	c, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Feature("gloss", 1); got != "in" {
		t.Errorf("Expected gloss from table, got %q", got)
	}
	if !strings.Contains(c.String(), "1 words") {
		t.Errorf("unexpected summary %q", c.String())
	}
}
