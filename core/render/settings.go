package render

import (
	"slices"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
)

// Settings are the application-wide rendering constants. They do not vary
// per call; per-call choices live in Options.
type Settings struct {
	// SourceOrg, SourceRepo and SourceVersion fill the source URL template.
	SourceOrg     string
	SourceRepo    string
	SourceVersion string
	// URLTemplate is the link target for a book. It may reference {org},
	// {repo}, {version} and {bookcode}.
	URLTemplate string
	// LinkHint is the title of a link whose text is the passage label.
	LinkHint string

	// CondenseType is the default depth limit of pretty rendering.
	CondenseType corpus.OType

	// ClassNames gives the CSS class of each object type's pretty block.
	ClassNames map[corpus.OType]string
	// FormatCSS maps a format kind ("orig", "trans") to a text class.
	FormatCSS map[string]string
	// DefaultClass styles non-text fragments and text in the default format.
	DefaultClass string
	// WordClass styles the word text block of pretty rendering.
	WordClass string

	SectionSep1 string
	SectionSep2 string

	// NoneValues are feature values that feature panels skip.
	NoneValues []string
	// Features lists the features shown by default for each object type.
	Features map[corpus.OType][]string
}

// DefaultSettings returns the settings of the Tischendorf corpus app.
func DefaultSettings() Settings {
	return Settings{
		SourceOrg:     "morphgnt",
		SourceRepo:    "tischendorf-data",
		SourceVersion: "2.8",
		URLTemplate:   "https://github.com/{org}/{repo}/tree/master/word-per-line/{version}/Unicode/{bookcode}.txt",
		LinkHint:      "see this passage in its source document",
		CondenseType:  corpus.Verse,
		ClassNames: map[corpus.OType]string{
			corpus.Word:    "word",
			corpus.Lexeme:  "lex",
			corpus.Verse:   "verse",
			corpus.Chapter: "chapter",
			corpus.Book:    "book",
		},
		FormatCSS: map[string]string{
			"orig":  "grk",
			"trans": "trb",
		},
		DefaultClass: "trb",
		WordClass:    "grk",
		SectionSep1:  " ",
		SectionSep2:  ":",
		NoneValues:   []string{"", "NA", "none", "unknown"},
		Features: map[corpus.OType][]string{
			corpus.Word:   {"lemma", "morph", "gloss"},
			corpus.Lexeme: {"lemma", "gloss"},
			corpus.Book:   {"book_code"},
		},
	}
}

// SourceURL builds the source document URL of a book.
func (s Settings) SourceURL(bookCode string) string {
	return strings.NewReplacer(
		"{org}", s.SourceOrg,
		"{repo}", s.SourceRepo,
		"{version}", s.SourceVersion,
		"{bookcode}", bookCode,
	).Replace(s.URLTemplate)
}

// FormatClass returns the CSS class for text in the given format. The
// unset format gets DefaultClass.
func (s Settings) FormatClass(format string) string {
	for kind, class := range s.FormatCSS {
		if containsKind(format, kind) {
			return class
		}
	}
	return s.DefaultClass
}

// ClassName returns the pretty block class of an object type.
func (s Settings) ClassName(t corpus.OType) string {
	if c, ok := s.ClassNames[t]; ok {
		return c
	}
	return t.String()
}

// containsKind reports whether a format name such as "text-orig-full" is of
// the given kind.
func containsKind(format, kind string) bool {
	return strings.Contains(format, "-"+kind+"-")
}

func (s Settings) isNone(v string) bool {
	return slices.Contains(s.NoneValues, v)
}
