package render

import (
	"io"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
)

// Surface writes rendered nodes to a display, one rendering per line.
type Surface struct {
	w io.Writer
	r *Renderer
}

// NewSurface creates a Surface writing to w.
func NewSurface(w io.Writer, r *Renderer) *Surface {
	return &Surface{w: w, r: r}
}

// ShowPlain displays the plain rendering of n.
func (s *Surface) ShowPlain(n corpus.Node, call PlainCall, opts Options) error {
	return s.writeLine(s.r.Plain(n, call, opts))
}

// ShowPretty displays the pretty rendering of n.
func (s *Surface) ShowPretty(n corpus.Node, w Window, opts Options) error {
	for _, frag := range s.r.Pretty(n, w, opts) {
		if _, err := io.WriteString(s.w, frag); err != nil {
			return err
		}
	}
	_, err := io.WriteString(s.w, "\n")
	return err
}

// ShowLink displays the source link of n.
func (s *Surface) ShowLink(n corpus.Node, opts ...LinkOption) error {
	return s.writeLine(s.r.Link(n, opts...))
}

func (s *Surface) writeLine(html string) error {
	_, err := io.WriteString(s.w, html+"\n")
	return err
}
