// Package render turns corpus nodes into HTML.
//
// Two styles are offered. Plain rendering produces one inline fragment per
// node: a word, a verse with its label, or a linked section heading. Pretty
// rendering produces nested blocks, recursing from sections into their
// content down to the condense type, with feature panels and highlight
// boxes. Both are pure functions of the node, the options and the corpus;
// a Renderer holds no per-call state and is safe for concurrent use.
package render

import (
	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
)

// ChildFunc lists the children of n that pretty rendering descends into.
type ChildFunc func(api corpus.API, n corpus.Node) []corpus.Node

// ChildTable maps an object type to its child enumeration. Types without an
// entry have no children.
type ChildTable map[corpus.OType]ChildFunc

// DescendantsOf returns a ChildFunc listing the descendants of type t.
func DescendantsOf(t corpus.OType) ChildFunc {
	return func(api corpus.API, n corpus.Node) []corpus.Node {
		return api.Descendants(n, t)
	}
}

// DefaultChildren descends from verses into words only. Books and chapters
// render as a heading line.
func DefaultChildren() ChildTable {
	return ChildTable{
		corpus.Verse: DescendantsOf(corpus.Word),
	}
}

// HierarchyChildren also descends from books into chapters and from
// chapters into verses.
func HierarchyChildren() ChildTable {
	return ChildTable{
		corpus.Book:    DescendantsOf(corpus.Chapter),
		corpus.Chapter: DescendantsOf(corpus.Verse),
		corpus.Verse:   DescendantsOf(corpus.Word),
	}
}

// Renderer renders nodes of one corpus with fixed settings.
type Renderer struct {
	api      corpus.API
	settings Settings
	children ChildTable
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithChildTable replaces the pretty child enumeration.
func WithChildTable(t ChildTable) Option {
	return func(r *Renderer) {
		r.children = t
	}
}

// New creates a Renderer over api.
func New(api corpus.API, settings Settings, opts ...Option) *Renderer {
	r := &Renderer{
		api:      api,
		settings: settings,
		children: DefaultChildren(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Settings returns the renderer's settings.
func (r *Renderer) Settings() Settings {
	return r.settings
}

// sectionLabel renders the section of n with the configured separators.
func (r *Renderer) sectionLabel(n corpus.Node) string {
	return r.api.SectionFromNode(n).Label(r.settings.SectionSep1, r.settings.SectionSep2)
}
