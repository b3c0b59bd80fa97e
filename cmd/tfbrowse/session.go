package main

import (
	"context"
	"io"
	"strings"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/core/render"
	"github.com/FocuswithJustin/tischendorf-tf/core/source"
	"github.com/FocuswithJustin/tischendorf-tf/internal/config"
	"github.com/FocuswithJustin/tischendorf-tf/internal/logging"
	"github.com/FocuswithJustin/tischendorf-tf/internal/validation"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config    string   `name:"config" short:"c" help:"TOML configuration file" type:"path"`
	Corpus    []string `name:"corpus" help:"Corpus files, read in order (overrides source.paths)" type:"path"`
	Format    string   `name:"format" help:"Source format: wordline, morphgnt, osis or sqlite (default: by extension)"`
	Glosses   string   `name:"glosses" help:"Lemma gloss file with lemma<TAB>gloss lines" type:"path"`
	LogLevel  string   `name:"log-level" help:"Log level: debug, info, warn or error"`
	LogFormat string   `name:"log-format" help:"Log format: text or json"`
}

// session is a loaded configuration and corpus.
type session struct {
	cfg      *config.Config
	corpus   *corpus.Corpus
	digest   string
	cached   bool
	renderer *render.Renderer
}

// loadConfig reads the configuration, applies the global flags and sets
// up logging on logw.
func (g *Globals) loadConfig(logw io.Writer) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if len(g.Corpus) > 0 {
		cfg.Source.Paths = g.Corpus
	}
	if g.Format != "" {
		cfg.Source.Format = g.Format
	}
	if g.Glosses != "" {
		cfg.Source.Glosses = g.Glosses
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}
	logging.InitLoggerTo(logw, logging.ParseLevel(cfg.Log.Level), logging.ParseFormat(cfg.Log.Format))
	return cfg, nil
}

// open loads the configuration and the corpus it names.
func (g *Globals) open(ctx context.Context, logw io.Writer) (*session, error) {
	cfg, err := g.loadConfig(logw)
	if err != nil {
		return nil, err
	}
	if len(cfg.Source.Paths) == 0 {
		return nil, errors.NewValidation("corpus", "", "no corpus files given; use --corpus or source.paths")
	}
	format, err := source.ParseFormat(cfg.Source.Format)
	if err != nil {
		return nil, err
	}

	loader := source.NewLoader(cfg.App.Corpus, cfg.App.Version, cfg.Source.CacheTTL)
	res, err := loader.Load(ctx, source.Request{
		Paths:   cfg.Source.Paths,
		Format:  format,
		Glosses: cfg.Source.Glosses,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:      cfg,
		corpus:   res.Corpus,
		digest:   res.Digest,
		cached:   res.Cached,
		renderer: render.New(res.Corpus, cfg.RenderSettings(), render.WithChildTable(cfg.ChildTable())),
	}, nil
}

// resolveRefs turns node numbers and passage references into nodes.
// Verse ranges expand to one node per verse.
func resolveRefs(c *corpus.Corpus, refs []string) ([]corpus.Node, error) {
	var nodes []corpus.Node
	for _, ref := range refs {
		if isNodeNumber(ref) {
			n, err := c.ResolveNode(ref)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
			continue
		}
		ns, err := c.LookupRange(ref)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, ns...)
	}
	return nodes, nil
}

func isNodeNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DisplayFlags are the per-call display options of the rendering commands.
type DisplayFlags struct {
	Text      string            `name:"text" help:"Text format: text-orig-full, text-orig-plain or text-trans-plain"`
	WithNodes bool              `name:"with-nodes" help:"Show node numbers"`
	NoPassage bool              `name:"no-passage" help:"Hide section labels"`
	Embedded  bool              `name:"embedded" help:"Render clickable node badges for an interactive host page"`
	Highlight map[string]string `name:"highlight" help:"Highlight a node or passage as REF=COLOR; an empty color uses the default"`
}

func (f DisplayFlags) options(s *session) (render.Options, error) {
	opts := s.cfg.DisplayOptions()
	if f.Text != "" {
		opts.Format = f.Text
	}
	opts.WithNodes = f.WithNodes
	opts.Embedded = f.Embedded
	if f.NoPassage {
		opts.WithPassage = render.Bool(false)
	}
	if len(f.Highlight) > 0 {
		opts.Highlights = make(map[corpus.Node]string, len(f.Highlight))
		for ref, color := range f.Highlight {
			if err := validation.ValidateColor(color); err != nil {
				return opts, &errors.ValidationError{Field: "highlight", Value: ref, Message: err.Error()}
			}
			n, err := s.corpus.ResolveNode(ref)
			if err != nil {
				return opts, err
			}
			opts.Highlights[n] = color
		}
	}
	return opts, nil
}
