package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/internal/logging"
)

// Window restricts pretty rendering to a slot range. Zero bounds are open.
type Window struct {
	First corpus.Node
	Last  corpus.Node
}

func (w Window) outside(first, last corpus.Node) bool {
	return (w.First > 0 && last < w.First) || (w.Last > 0 && first > w.Last)
}

var sectionTemplate = template.Must(template.New("section").Parse(
	`<div class="ll"><div class="line">{{.Link}}</div>{{.Badge}}{{.Features}}</div>`))

type sectionData struct {
	Link     template.HTML
	Badge    template.HTML
	Features template.HTML
}

// prepared holds what pretty rendering computes about a node before
// emitting anything.
type prepared struct {
	otype    corpus.OType
	class    string
	boundary string
	hlClass  string
	hlStyle  string
	badge    string
	first    corpus.Node
	last     corpus.Node
}

// Pretty renders n as nested blocks and returns the HTML fragments in
// output order. Nodes outside the window, and nodes the corpus does not
// know, produce no fragments.
func (r *Renderer) Pretty(n corpus.Node, w Window, opts Options) []string {
	d := opts.Normalize(r.api, r.settings)
	out := r.pretty(n, true, w, d)
	logging.RenderEvent("pretty", int(n), r.api.OType(n).String(), len(out))
	return out
}

// PrettyHTML is Pretty joined into one string.
func (r *Renderer) PrettyHTML(n corpus.Node, w Window, opts Options) string {
	return strings.Join(r.Pretty(n, w, opts), "")
}

func (r *Renderer) prepare(n corpus.Node, w Window, d Display) (prepared, bool) {
	otype := r.api.OType(n)
	if otype == corpus.Unknown {
		return prepared{}, false
	}
	first, last := r.api.SlotRange(n)
	if w.outside(first, last) {
		return prepared{}, false
	}

	var boundary []string
	if w.First > 0 && first < w.First {
		boundary = append(boundary, "lno")
	}
	if w.Last > 0 && last > w.Last {
		boundary = append(boundary, "rno")
	}

	p := prepared{
		otype:    otype,
		class:    r.settings.ClassName(otype),
		boundary: strings.Join(boundary, " "),
		first:    first,
		last:     last,
	}
	p.hlClass, p.hlStyle = highlightAttrs(n, d.Highlights, otype == r.api.SlotType())
	if d.WithNodes {
		p.badge = fmt.Sprintf(`<a href="#" class="nd">%d</a>`, n)
	}
	return p, true
}

// isBig reports whether nodes of type t are above the condense type and
// so render without their content.
func isBig(t corpus.OType, d Display) bool {
	return d.CondenseType != corpus.Unknown && t.Rank() > d.CondenseType.Rank()
}

func (r *Renderer) pretty(n corpus.Node, outer bool, w Window, d Display) []string {
	p, ok := r.prepare(n, w, d)
	if !ok {
		return nil
	}

	var children []corpus.Node
	if !isBig(p.otype, d) && p.otype != r.api.SlotType() && p.otype != corpus.Lexeme {
		if childrenOf, ok := r.children[p.otype]; ok {
			children = childrenOf(r.api, n)
		}
	}

	var out []string
	if outer {
		out = append(out, `<div class="outeritem">`)
	}
	out = append(out, p.openTag())

	switch {
	case p.otype.IsSection():
		out = append(out, r.sectionBlock(n, p, d))
	case p.otype == r.api.SlotType():
		out = append(out, fmt.Sprintf(`<div class="%s">%s</div>%s%s`,
			r.settings.WordClass,
			html.EscapeString(r.api.Text([]corpus.Node{n}, d.Format)),
			p.badge, r.Features(n, d.ExtraFeatures)))
	}

	for _, c := range children {
		out = append(out, r.pretty(c, false, w, d)...)
	}

	out = append(out, "</div>")
	if outer {
		out = append(out, "</div>")
	}
	return out
}

func (p prepared) openTag() string {
	classes := []string{p.class}
	for _, c := range []string{p.boundary, p.hlClass} {
		if c != "" {
			classes = append(classes, c)
		}
	}
	return fmt.Sprintf(`<div class="%s"%s>`, strings.Join(classes, " "), p.hlStyle)
}

func (r *Renderer) sectionBlock(n corpus.Node, p prepared, d Display) string {
	var sb strings.Builder
	err := sectionTemplate.Execute(&sb, sectionData{
		Link:     template.HTML(r.Link(n)),
		Badge:    template.HTML(p.badge),
		Features: template.HTML(r.Features(n, d.ExtraFeatures)),
	})
	if err != nil {
		logging.Warn("section template failed", "node", int(n), "error", err)
		return ""
	}
	return sb.String()
}
