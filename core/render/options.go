package render

import (
	"slices"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
)

// Options are the per-call display choices. The zero value is valid and
// means: default format, no node numbers, passage labels shown, nothing
// highlighted, condensed at the configured type.
type Options struct {
	// Format is a text format name; empty or unknown means the corpus default.
	Format string
	// WithNodes appends node numbers to rendered nodes.
	WithNodes bool
	// WithPassage controls section labels in plain rendering. Nil means true.
	WithPassage *bool
	// Highlights maps nodes to a highlight color; "" is the default color.
	Highlights map[corpus.Node]string
	// CondenseType overrides the configured depth limit when not Unknown.
	CondenseType corpus.OType
	// NoCondense disables the depth limit altogether.
	NoCondense bool
	// ExtraFeatures are shown in feature panels besides the standard ones.
	ExtraFeatures []string
	// Embedded selects clickable node badges for an interactive host page.
	Embedded bool
}

// Bool returns a pointer to b, for Options.WithPassage.
func Bool(b bool) *bool {
	return &b
}

// Display is the normalized form of Options.
type Display struct {
	Format        string
	WithNodes     bool
	WithPassage   bool
	Highlights    map[corpus.Node]string
	CondenseType  corpus.OType
	ExtraFeatures []string
	Embedded      bool
}

// Normalize resolves defaults. It never fails: an unknown format becomes
// the unset format and a missing highlight map becomes empty.
func (o Options) Normalize(api corpus.API, s Settings) Display {
	d := Display{
		WithNodes:    o.WithNodes,
		WithPassage:  o.WithPassage == nil || *o.WithPassage,
		Highlights:   o.Highlights,
		CondenseType: o.CondenseType,
		Embedded:     o.Embedded,
	}
	if o.Format != "" && slices.Contains(api.Formats(), o.Format) {
		d.Format = o.Format
	}
	if d.Highlights == nil {
		d.Highlights = map[corpus.Node]string{}
	}
	switch {
	case o.NoCondense:
		d.CondenseType = corpus.Unknown
	case d.CondenseType == corpus.Unknown:
		d.CondenseType = s.CondenseType
	}
	for _, f := range o.ExtraFeatures {
		if f != "" && !slices.Contains(d.ExtraFeatures, f) {
			d.ExtraFeatures = append(d.ExtraFeatures, f)
		}
	}
	return d
}

func (d Display) isText() bool {
	return d.Format == "" || containsKind(d.Format, "orig")
}
