package corpus

import "strings"

// OType is the structural type of a node.
type OType int

// Object types, listed from the finest to the coarsest. Unknown is the
// explicit default arm for anything the corpus does not declare.
const (
	Unknown OType = iota
	Word
	Lexeme
	Verse
	Chapter
	Book
)

var otypeNames = map[OType]string{
	Word:    "word",
	Lexeme:  "lex",
	Verse:   "verse",
	Chapter: "chapter",
	Book:    "book",
}

// otypeRanks orders the types by granularity; a higher rank is a bigger object.
var otypeRanks = map[OType]int{
	Word:    0,
	Lexeme:  1,
	Verse:   2,
	Chapter: 3,
	Book:    4,
}

// AllOTypes lists the declared object types from coarse to fine.
var AllOTypes = []OType{Book, Chapter, Verse, Lexeme, Word}

// String returns the type name used in feature files and CSS classes.
func (t OType) String() string {
	if name, ok := otypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Rank returns the structural rank of t. Unknown ranks below every declared type.
func (t OType) Rank() int {
	if r, ok := otypeRanks[t]; ok {
		return r
	}
	return -1
}

// IsSection reports whether t is one of the book/chapter/verse section levels.
func (t OType) IsSection() bool {
	return t == Book || t == Chapter || t == Verse
}

// ParseOType maps a type name to an OType. Unrecognized names yield Unknown.
func ParseOType(s string) OType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "w":
		return Word
	case "lex", "lexeme":
		return Lexeme
	case "verse":
		return Verse
	case "chapter":
		return Chapter
	case "book":
		return Book
	default:
		return Unknown
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t OType) MarshalText() ([]byte, error) {
	if t == Unknown {
		return []byte(""), nil
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// to Unknown rather than failing; callers that need strictness check the result.
func (t *OType) UnmarshalText(b []byte) error {
	*t = ParseOType(string(b))
	return nil
}
