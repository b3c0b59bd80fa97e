package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/core/render"
	"github.com/FocuswithJustin/tischendorf-tf/core/sqlite"
	"github.com/FocuswithJustin/tischendorf-tf/internal/config"
	"github.com/FocuswithJustin/tischendorf-tf/internal/export"
	"github.com/FocuswithJustin/tischendorf-tf/internal/validation"
)

// PlainCmd prints plain renderings.
type PlainCmd struct {
	Refs    []string `arg:"" help:"Node numbers or passages, e.g. 20 or \"Matthew 1:1-2\""`
	Linked  bool     `help:"Wrap renderings in source links"`
	NoLabel bool     `name:"no-label" help:"Omit the labels of books and chapters"`
	Prefix  string   `help:"Text prepended to each rendering"`

	DisplayFlags `embed:""`
}

func (c *PlainCmd) Run(ctx context.Context, g *Globals, k *kong.Context) error {
	s, err := g.open(ctx, k.Stderr)
	if err != nil {
		return err
	}
	nodes, err := resolveRefs(s.corpus, c.Refs)
	if err != nil {
		return err
	}
	opts, err := c.options(s)
	if err != nil {
		return err
	}

	surface := render.NewSurface(k.Stdout, s.renderer)
	call := render.PlainCall{Prefix: c.Prefix, Linked: c.Linked, SectionLabel: !c.NoLabel}
	for _, n := range nodes {
		if err := surface.ShowPlain(n, call, opts); err != nil {
			return err
		}
	}
	return nil
}

// PrettyCmd prints pretty renderings.
type PrettyCmd struct {
	Refs         []string `arg:"" help:"Node numbers or passages"`
	CondenseType string   `name:"condense-type" help:"Object type above which nodes are not expanded (word, lex, verse, chapter, book)"`
	NoCondense   bool     `name:"no-condense" help:"Expand nodes of every type"`
	Features     []string `name:"features" help:"Extra features to show in feature panels"`
	Children     string   `name:"children" help:"Child enumeration: verse or hierarchy (default from config)"`
	First        int      `name:"first" help:"First slot of the window (0 for open)"`
	Last         int      `name:"last" help:"Last slot of the window (0 for open)"`

	DisplayFlags `embed:""`
}

func (c *PrettyCmd) Run(ctx context.Context, g *Globals, k *kong.Context) error {
	s, err := g.open(ctx, k.Stderr)
	if err != nil {
		return err
	}
	nodes, err := resolveRefs(s.corpus, c.Refs)
	if err != nil {
		return err
	}
	opts, err := c.options(s)
	if err != nil {
		return err
	}
	opts.NoCondense = c.NoCondense
	opts.ExtraFeatures = c.Features
	if c.CondenseType != "" {
		opts.CondenseType = corpus.ParseOType(c.CondenseType)
		if opts.CondenseType == corpus.Unknown {
			return errors.NewValidation("condense-type", c.CondenseType, "expected word, lex, verse, chapter or book")
		}
	}

	r := s.renderer
	if c.Children != "" {
		s.cfg.Render.Children = c.Children
		if err := s.cfg.Validate(); err != nil {
			return err
		}
		r = render.New(s.corpus, s.cfg.RenderSettings(), render.WithChildTable(s.cfg.ChildTable()))
	}

	surface := render.NewSurface(k.Stdout, r)
	window := render.Window{First: corpus.Node(c.First), Last: corpus.Node(c.Last)}
	for _, n := range nodes {
		if err := surface.ShowPretty(n, window, opts); err != nil {
			return err
		}
	}
	return nil
}

// LinkCmd prints source links.
type LinkCmd struct {
	Refs  []string `arg:"" help:"Node numbers or passages"`
	Text  string   `name:"text" help:"Link text (HTML); defaults to the passage label"`
	Class string   `name:"class" help:"CSS class of the link"`
	NoURL bool     `name:"no-url" help:"Link to # instead of the source document"`
}

func (c *LinkCmd) Run(ctx context.Context, g *Globals, k *kong.Context) error {
	s, err := g.open(ctx, k.Stderr)
	if err != nil {
		return err
	}
	nodes, err := resolveRefs(s.corpus, c.Refs)
	if err != nil {
		return err
	}

	var opts []render.LinkOption
	if c.Text != "" {
		opts = append(opts, render.WithText(c.Text))
	}
	if c.Class != "" {
		opts = append(opts, render.WithClass(c.Class))
	}
	if c.NoURL {
		opts = append(opts, render.NoURL())
	}

	surface := render.NewSurface(k.Stdout, s.renderer)
	for _, n := range nodes {
		if err := surface.ShowLink(n, opts...); err != nil {
			return err
		}
	}
	return nil
}

// ExportCmd writes one HTML page.
type ExportCmd struct {
	Passages     []string          `arg:"" help:"Passages to export"`
	Out          string            `short:"o" required:"" help:"Output file; a .xz suffix compresses it" type:"path"`
	Style        string            `enum:"plain,pretty,both" default:"plain" help:"Renderings to include (plain, pretty, both)"`
	Title        string            `help:"Page title (default from config)"`
	Text         string            `name:"text" help:"Text format"`
	WithNodes    bool              `name:"with-nodes" help:"Show node numbers"`
	CondenseType string            `name:"condense-type" help:"Object type above which nodes are not expanded"`
	Features     []string          `name:"features" help:"Extra features to show in feature panels"`
	Highlight    map[string]string `name:"highlight" help:"Highlight a node or passage as REF=COLOR"`
}

func (c *ExportCmd) Run(ctx context.Context, g *Globals, k *kong.Context) error {
	s, err := g.open(ctx, k.Stderr)
	if err != nil {
		return err
	}
	job := export.Job{
		Target:       c.Out,
		Passages:     c.Passages,
		Style:        export.Style(c.Style),
		Title:        c.Title,
		Format:       c.Text,
		WithNodes:    c.WithNodes,
		CondenseType: c.CondenseType,
		Features:     c.Features,
		Highlights:   c.Highlight,
	}
	if job.Format == "" {
		job.Format = s.cfg.Render.Format
	}

	m, err := s.exporter().Export(ctx, job)
	if err != nil {
		return err
	}
	printManifest(k, m)
	return nil
}

// BatchCmd runs a TOML list of export jobs.
type BatchCmd struct {
	File   string `arg:"" help:"Batch file with [[job]] tables" type:"existingfile"`
	OutDir string `name:"out-dir" help:"Directory that relative job targets are written to" type:"path"`
}

func (c *BatchCmd) Run(ctx context.Context, g *Globals, k *kong.Context) error {
	jobs, err := export.ReadBatch(c.File)
	if err != nil {
		return err
	}
	s, err := g.open(ctx, k.Stderr)
	if err != nil {
		return err
	}
	for i := range jobs {
		if c.OutDir != "" {
			target, err := validation.SanitizePath(c.OutDir, jobs[i].Target)
			if err != nil {
				return &errors.ValidationError{Field: "job.target", Value: jobs[i].Target, Message: err.Error()}
			}
			jobs[i].Target = target
		}
		if jobs[i].Format == "" {
			jobs[i].Format = s.cfg.Render.Format
		}
	}

	manifests, err := s.exporter().Batch(ctx, jobs)
	for _, m := range manifests {
		printManifest(k, m)
	}
	return err
}

func (s *session) exporter() *export.Exporter {
	return export.New(s.corpus, s.renderer, s.digest, export.Page{
		Title: s.cfg.Export.Title,
		About: s.cfg.Export.About,
		Font:  s.cfg.Export.Font,
	})
}

func printManifest(k *kong.Context, m *export.Manifest) {
	fmt.Fprintf(k.Stdout, "wrote %s (%d bytes, %d passages, blake3 %s)\n",
		m.Target, m.OutputBytes, len(m.Passages), m.OutputBLAKE3[:16])
}

// InfoCmd describes the loaded corpus.
type InfoCmd struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

type corpusInfo struct {
	Corpus   string         `json:"corpus"`
	Version  string         `json:"version"`
	DOI      string         `json:"doi"`
	Sources  []string       `json:"sources"`
	Digest   string         `json:"digest"`
	Counts   map[string]int `json:"counts"`
	Formats  []string       `json:"formats"`
	Features []string       `json:"features"`
	Driver   string         `json:"sqlite_driver"`
}

func (c *InfoCmd) Run(ctx context.Context, g *Globals, k *kong.Context) error {
	s, err := g.open(ctx, k.Stderr)
	if err != nil {
		return err
	}

	info := corpusInfo{
		Corpus:   s.corpus.Name,
		Version:  s.corpus.Version,
		DOI:      s.cfg.App.DOI,
		Sources:  s.cfg.Source.Paths,
		Digest:   s.digest,
		Counts:   make(map[string]int),
		Formats:  s.corpus.Formats(),
		Features: s.corpus.FeatureNames(),
		Driver:   sqlite.DriverType(),
	}
	for _, t := range corpus.AllOTypes {
		info.Counts[t.String()] = len(s.corpus.NodesOfType(t))
	}

	if c.JSON {
		enc := json.NewEncoder(k.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Fprintf(k.Stdout, "Corpus:   %s %s\n", info.Corpus, info.Version)
	fmt.Fprintf(k.Stdout, "DOI:      %s\n", info.DOI)
	fmt.Fprintf(k.Stdout, "Sources:  %s\n", strings.Join(info.Sources, ", "))
	fmt.Fprintf(k.Stdout, "Digest:   %s\n", info.Digest)
	for _, t := range corpus.AllOTypes {
		fmt.Fprintf(k.Stdout, "  %-8s %d\n", t.String(), info.Counts[t.String()])
	}
	fmt.Fprintf(k.Stdout, "Formats:  %s\n", strings.Join(info.Formats, ", "))
	fmt.Fprintf(k.Stdout, "Features: %s\n", strings.Join(info.Features, ", "))
	return nil
}

// InitCmd writes the default configuration.
type InitCmd struct {
	Path  string `arg:"" optional:"" default:"tfbrowse.toml" help:"Where to write the configuration" type:"path"`
	Force bool   `help:"Overwrite an existing file"`
}

func (c *InitCmd) Run(k *kong.Context) error {
	if _, err := os.Stat(c.Path); err == nil && !c.Force {
		return errors.NewValidation("path", c.Path, "file exists; use --force to overwrite")
	}
	if err := config.WriteDefault(c.Path); err != nil {
		return err
	}
	fmt.Fprintf(k.Stdout, "wrote %s\n", c.Path)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(k *kong.Context) error {
	info := sqlite.GetInfo()
	fmt.Fprintf(k.Stdout, "tfbrowse %s\n", version)
	fmt.Fprintf(k.Stdout, "sqlite driver: %s (%s)\n", info.DriverName, info.DriverType)
	return nil
}
