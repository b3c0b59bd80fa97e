package export

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/core/render"
	"github.com/FocuswithJustin/tischendorf-tf/internal/validation"
)

const stylesheet = `
body { margin: 2em; }
.grk { font-family: "{{FONT}}", "Gentium Plus", serif; font-size: large; }
.trb { font-family: sans-serif; font-size: medium; }
.vn { font-weight: bold; margin-right: 0.5em; }
.vn a, .line a { text-decoration: none; }
.nd { font-size: x-small; color: #888888; }
.outeritem { display: flex; flex-flow: row wrap; margin: 0.5em 0; }
.book, .chapter, .verse, .lex { display: flex; flex-flow: row wrap; border: 1px solid #cccccc; border-radius: 4px; margin: 0.2em; padding: 0.2em; }
.word { display: flex; flex-flow: column nowrap; margin: 0.2em; padding: 0.1em; }
.ll { flex-basis: 100%; }
.features { font-size: small; color: #555555; display: flex; flex-flow: column nowrap; }
.features .f { color: #999999; }
.lno { border-left-style: dotted; }
.rno { border-right-style: dotted; }
.hl { background-color: #ffee66; }
.hlbx { border-color: #ffcc00; border-width: 3px; }
`

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="about">{{.About}}</div>
{{range .Passages}}<section class="passage">
<h2>{{.Label}}</h2>
{{range .Blocks}}<div class="rendering">{{.}}</div>
{{end}}</section>
{{end}}</body>
</html>
`))

type pageData struct {
	Title    string
	Style    template.CSS
	About    template.HTML
	Passages []passageData
}

type passageData struct {
	Label  string
	Blocks []template.HTML
}

// Render builds the page of job without writing it. It returns the page
// and the labels of the rendered passages.
func (e *Exporter) Render(ctx context.Context, job Job) ([]byte, []string, error) {
	if len(job.Passages) == 0 {
		return nil, nil, errors.NewValidation("passages", "", "nothing to export")
	}
	style := job.style()
	switch style {
	case StylePlain, StylePretty, StyleBoth:
	default:
		return nil, nil, errors.NewValidation("style", string(style), "expected plain, pretty or both")
	}
	opts, err := e.options(job)
	if err != nil {
		return nil, nil, err
	}

	data := pageData{
		Title: job.Title,
		Style: template.CSS(strings.ReplaceAll(stylesheet, "{{FONT}}", e.page.Font)),
	}
	if data.Title == "" {
		data.Title = e.page.Title
	}
	if e.page.About != "" {
		var about bytes.Buffer
		if err := e.md.Convert([]byte(e.page.About), &about); err != nil {
			return nil, nil, fmt.Errorf("rendering about text: %w", err)
		}
		data.About = template.HTML(about.String())
	}

	settings := e.renderer.Settings()
	var labels []string
	for _, ref := range job.Passages {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		nodes, err := e.corpus.LookupRange(ref)
		if err != nil {
			return nil, nil, err
		}
		for _, n := range nodes {
			label := e.corpus.SectionFromNode(n).Label(settings.SectionSep1, settings.SectionSep2)
			data.Passages = append(data.Passages, passageData{
				Label:  label,
				Blocks: e.blocks(n, style, opts),
			})
			labels = append(labels, label)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, nil, fmt.Errorf("executing page template: %w", err)
	}
	return buf.Bytes(), labels, nil
}

func (e *Exporter) blocks(n corpus.Node, style Style, opts render.Options) []template.HTML {
	var out []template.HTML
	if style == StylePlain || style == StyleBoth {
		out = append(out, template.HTML(e.renderer.Plain(n, render.PlainCall{Linked: true, SectionLabel: true}, opts)))
	}
	if style == StylePretty || style == StyleBoth {
		out = append(out, template.HTML(e.renderer.PrettyHTML(n, render.Window{}, opts)))
	}
	return out
}

func (e *Exporter) options(job Job) (render.Options, error) {
	opts := render.Options{
		Format:        job.Format,
		WithNodes:     job.WithNodes,
		ExtraFeatures: job.Features,
	}
	if job.CondenseType != "" {
		opts.CondenseType = corpus.ParseOType(job.CondenseType)
		if opts.CondenseType == corpus.Unknown {
			return opts, errors.NewValidation("condense_type", job.CondenseType, "unknown object type")
		}
	}
	if len(job.Highlights) > 0 {
		opts.Highlights = make(map[corpus.Node]string, len(job.Highlights))
		for ref, color := range job.Highlights {
			if err := validation.ValidateColor(color); err != nil {
				return opts, &errors.ValidationError{Field: "highlight", Value: ref, Message: err.Error()}
			}
			n, err := e.corpus.ResolveNode(ref)
			if err != nil {
				return opts, err
			}
			opts.Highlights[n] = color
		}
	}
	return opts, nil
}
