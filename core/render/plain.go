package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/internal/logging"
)

// PlainCall carries the call-site arguments of plain rendering.
type PlainCall struct {
	// Prefix is prepended verbatim to the output.
	Prefix string
	// Linked wraps the fragment in a source link. For verses only the
	// label is linked.
	Linked bool
	// SectionLabel shows section labels when the options allow passages.
	SectionLabel bool
}

// Plain renders n as a single inline fragment. Unknown nodes render as an
// empty span; Plain never fails.
func (r *Renderer) Plain(n corpus.Node, call PlainCall, opts Options) string {
	d := opts.Normalize(r.api, r.settings)
	otype := r.api.OType(n)
	isText := d.isText()

	var label, rep string
	switch {
	case otype == r.api.SlotType():
		rep = r.highlightText([]corpus.Node{n}, d)
	case otype == corpus.Verse:
		text := ""
		if call.SectionLabel && d.WithPassage {
			text = html.EscapeString(r.sectionLabel(n))
		}
		if call.Linked {
			text = r.Link(n, WithText(text))
		}
		label = `<span class="vn">` + text + `</span>`
		rep = r.highlightText(r.api.Descendants(n, corpus.Word), d)
		isText = true
	case otype.IsSection():
		if call.SectionLabel && d.WithPassage {
			rep = html.EscapeString(r.sectionLabel(n))
		}
		isText = false
	case otype == corpus.Unknown:
	default:
		rep = r.highlightText(r.api.Descendants(n, corpus.Word), d)
	}

	if call.Linked && otype != corpus.Verse && otype != corpus.Unknown {
		rep = r.Link(n, WithText(rep))
	}

	class := r.settings.DefaultClass
	if isText {
		class = r.settings.FormatClass(d.Format)
	}

	var sb strings.Builder
	sb.WriteString(call.Prefix)
	sb.WriteString(label)
	fmt.Fprintf(&sb, `<span class="%s">%s</span>`, class, rep)
	sb.WriteString(r.nodeMarker(n, d))

	logging.RenderEvent("plain", int(n), otype.String(), 1)
	return sb.String()
}

// nodeMarker renders the node number appended to plain output.
func (r *Renderer) nodeMarker(n corpus.Node, d Display) string {
	if !d.WithNodes {
		return ""
	}
	if d.Embedded {
		return fmt.Sprintf(` <a href="#" class="nd">%d</a> `, n)
	}
	return fmt.Sprintf(` <i>%d</i> `, n)
}
