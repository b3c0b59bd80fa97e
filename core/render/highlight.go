package render

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
)

// highlightAttrs returns the class and style attribute for a highlighted
// node. Slots get a background; bigger nodes get a colored box.
func highlightAttrs(n corpus.Node, highlights map[corpus.Node]string, isSlot bool) (class, style string) {
	color, ok := highlights[n]
	if !ok {
		return "", ""
	}
	if isSlot {
		class = "hl"
		if color != "" {
			style = fmt.Sprintf(` style="background-color: %s;"`, html.EscapeString(color))
		}
		return class, style
	}
	class = "hlbx"
	if color != "" {
		style = fmt.Sprintf(` style="border-color: %s;"`, html.EscapeString(color))
	}
	return class, style
}

// highlightText renders the escaped text of nodes, wrapping each
// highlighted node in a highlight span.
func (r *Renderer) highlightText(nodes []corpus.Node, d Display) string {
	if len(d.Highlights) == 0 {
		return html.EscapeString(r.api.Text(nodes, d.Format))
	}
	slot := r.api.SlotType()
	var sb strings.Builder
	for _, n := range nodes {
		text := html.EscapeString(r.api.Text([]corpus.Node{n}, d.Format))
		class, style := highlightAttrs(n, d.Highlights, r.api.OType(n) == slot)
		if class == "" {
			sb.WriteString(text)
			continue
		}
		fmt.Fprintf(&sb, `<span class="%s"%s>%s</span>`, class, style, text)
	}
	return sb.String()
}

// Features renders the feature panel of n: the standard features of its
// type plus extra, skipping none-like values. A node without any value
// yields "".
func (r *Renderer) Features(n corpus.Node, extra []string) string {
	names := append([]string(nil), r.settings.Features[r.api.OType(n)]...)
	for _, f := range extra {
		if !slices.Contains(names, f) {
			names = append(names, f)
		}
	}

	var sb strings.Builder
	for _, name := range names {
		value := r.api.Feature(name, n)
		if r.settings.isNone(value) {
			continue
		}
		fmt.Fprintf(&sb, `<span class="%s"><span class="f">%s=</span>%s</span>`,
			html.EscapeString(strings.ReplaceAll(name, "@", "__")),
			html.EscapeString(name), html.EscapeString(value))
	}
	if sb.Len() == 0 {
		return ""
	}
	return `<div class="features">` + sb.String() + `</div>`
}
