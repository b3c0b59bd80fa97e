package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
)

type linkSpec struct {
	text    string
	hasText bool
	class   string
	noURL   bool
}

// LinkOption adjusts a link built by Renderer.Link.
type LinkOption func(*linkSpec)

// WithText sets the link text. The text is HTML and is not escaped, so a
// rendered fragment can be wrapped. The passage label becomes the title.
func WithText(text string) LinkOption {
	return func(l *linkSpec) {
		l.text = text
		l.hasText = true
	}
}

// WithClass sets the class attribute of the link.
func WithClass(class string) LinkOption {
	return func(l *linkSpec) {
		l.class = class
	}
}

// NoURL makes the link point to "#" and open in place.
func NoURL() LinkOption {
	return func(l *linkSpec) {
		l.noURL = true
	}
}

// Link builds an anchor from n to the source document of its book. Without
// WithText the passage label is the text and the title is a fixed hint.
func (r *Renderer) Link(n corpus.Node, opts ...LinkOption) string {
	var spec linkSpec
	for _, opt := range opts {
		opt(&spec)
	}

	passage := r.sectionLabel(n)
	href := "#"
	if !spec.noURL {
		href = r.settings.SourceURL(r.bookCode(n))
	}

	text, title := html.EscapeString(passage), r.settings.LinkHint
	if spec.hasText {
		text, title = spec.text, passage
	}
	return outLink(text, href, title, spec.class, !spec.noURL, passage)
}

// bookCode finds the book node of n and reads its book_code feature.
func (r *Renderer) bookCode(n corpus.Node) string {
	sec := r.api.SectionFromNode(n)
	book, ok := r.api.NodeFromSection(corpus.Section{Book: sec.Book})
	if !ok {
		return ""
	}
	return r.api.Feature("book_code", book)
}

func outLink(text, href, title, class string, newTab bool, passage string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<a href="%s" title="%s"`, html.EscapeString(href), html.EscapeString(title))
	if class != "" {
		fmt.Fprintf(&sb, ` class="%s"`, html.EscapeString(class))
	}
	if newTab {
		sb.WriteString(` target="_blank"`)
	}
	fmt.Fprintf(&sb, ` sec="%s">%s</a>`, html.EscapeString(passage), text)
	return sb.String()
}
