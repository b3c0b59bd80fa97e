// Package config holds the application configuration: corpus metadata,
// corpus sources, rendering constants, export and logging settings.
//
// Defaults describe Tischendorf's 8th edition as published by the
// tischendorf_tf project. A TOML file overrides any subset of them.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/natefinch/atomic"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/core/render"
)

// Config is the top-level configuration.
type Config struct {
	App    AppConfig    `toml:"app"`
	Source SourceConfig `toml:"source"`
	Render RenderConfig `toml:"render"`
	Export ExportConfig `toml:"export"`
	Log    LogConfig    `toml:"log"`
}

// AppConfig describes the corpus and where it is documented.
type AppConfig struct {
	Corpus     string `toml:"corpus"`
	Org        string `toml:"org"`
	Repo       string `toml:"repo"`
	Version    string `toml:"version"`
	DOI        string `toml:"doi"`
	DOIURL     string `toml:"doi_url"`
	DocURL     string `toml:"doc_url"`
	FeatureURL string `toml:"feature_url"`
}

// SourceConfig locates the corpus files and the source documents links
// point to.
type SourceConfig struct {
	Paths       []string      `toml:"paths"`
	Format      string        `toml:"format"`
	Glosses     string        `toml:"glosses"`
	CacheTTL    time.Duration `toml:"cache_ttl"`
	Org         string        `toml:"org"`
	Repo        string        `toml:"repo"`
	Version     string        `toml:"version"`
	URLTemplate string        `toml:"url_template"`
}

// RenderConfig holds the rendering constants.
type RenderConfig struct {
	Format       string              `toml:"format"`
	CondenseType string              `toml:"condense_type"`
	Children     string              `toml:"children"`
	SectionSep1  string              `toml:"section_sep1"`
	SectionSep2  string              `toml:"section_sep2"`
	DefaultClass string              `toml:"default_class"`
	WordClass    string              `toml:"word_class"`
	LinkHint     string              `toml:"link_hint"`
	FormatCSS    map[string]string   `toml:"format_css"`
	ClassNames   map[string]string   `toml:"class_names"`
	NoneValues   []string            `toml:"none_values"`
	Features     map[string][]string `toml:"features"`
}

// ExportConfig controls static page export.
type ExportConfig struct {
	Title string `toml:"title"`
	About string `toml:"about"`
	Font  string `toml:"font"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Child table names accepted in RenderConfig.Children.
const (
	ChildrenVerse     = "verse"
	ChildrenHierarchy = "hierarchy"
)

// Default returns the built-in configuration.
func Default() *Config {
	s := render.DefaultSettings()
	org, repo := "codykingham", "tischendorf_tf"
	docURL := fmt.Sprintf("https://github.com/%s/%s/blob/master/docs", org, repo)

	classNames := make(map[string]string, len(s.ClassNames))
	for t, c := range s.ClassNames {
		classNames[t.String()] = c
	}
	features := make(map[string][]string, len(s.Features))
	for t, fs := range s.Features {
		features[t.String()] = append([]string(nil), fs...)
	}
	formatCSS := make(map[string]string, len(s.FormatCSS))
	for k, v := range s.FormatCSS {
		formatCSS[k] = v
	}

	return &Config{
		App: AppConfig{
			Corpus:     "Tischendorf's 8th New Testament",
			Org:        org,
			Repo:       repo,
			Version:    "2.8",
			DOI:        "10.5281/zenodo.3265458",
			DOIURL:     "https://doi.org/10.5281/zenodo.3265458",
			DocURL:     docURL,
			FeatureURL: docURL + "/features.md#{feature}",
		},
		Source: SourceConfig{
			CacheTTL:    10 * time.Minute,
			Org:         s.SourceOrg,
			Repo:        s.SourceRepo,
			Version:     s.SourceVersion,
			URLTemplate: s.URLTemplate,
		},
		Render: RenderConfig{
			CondenseType: s.CondenseType.String(),
			Children:     ChildrenVerse,
			SectionSep1:  s.SectionSep1,
			SectionSep2:  s.SectionSep2,
			DefaultClass: s.DefaultClass,
			WordClass:    s.WordClass,
			LinkHint:     s.LinkHint,
			FormatCSS:    formatCSS,
			ClassNames:   classNames,
			NoneValues:   append([]string(nil), s.NoneValues...),
			Features:     features,
		},
		Export: ExportConfig{
			Title: "Tischendorf's 8th New Testament",
			About: "Text and features of **Tischendorf's 8th edition** of the Greek New Testament, " +
				"converted by the [tischendorf_tf](https://github.com/codykingham/tischendorf_tf) project " +
				"([DOI 10.5281/zenodo.3265458](https://doi.org/10.5281/zenodo.3265458)).",
			Font: "SBL_BLit",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("config file", path)
		}
		return nil, errors.NewIO("read", path, err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, errors.NewParse("toml", path, 0, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg. Keys not present keep their values;
// unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks values that would otherwise silently misrender.
func (c *Config) Validate() error {
	if t := c.Render.CondenseType; t != "" && corpus.ParseOType(t) == corpus.Unknown {
		return errors.NewValidation("render.condense_type", t, "expected word, lex, verse, chapter or book")
	}
	switch c.Render.Children {
	case "", ChildrenVerse, ChildrenHierarchy:
	default:
		return errors.NewValidation("render.children", c.Render.Children, "expected verse or hierarchy")
	}
	if c.Source.CacheTTL < 0 {
		return errors.NewValidation("source.cache_ttl", c.Source.CacheTTL.String(), "must not be negative")
	}
	return nil
}

// WriteDefault writes the default configuration to path atomically.
func WriteDefault(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// RenderSettings converts the configuration to renderer settings.
func (c *Config) RenderSettings() render.Settings {
	s := render.Settings{
		SourceOrg:     c.Source.Org,
		SourceRepo:    c.Source.Repo,
		SourceVersion: c.Source.Version,
		URLTemplate:   c.Source.URLTemplate,
		LinkHint:      c.Render.LinkHint,
		CondenseType:  corpus.ParseOType(c.Render.CondenseType),
		ClassNames:    make(map[corpus.OType]string, len(c.Render.ClassNames)),
		FormatCSS:     c.Render.FormatCSS,
		DefaultClass:  c.Render.DefaultClass,
		WordClass:     c.Render.WordClass,
		SectionSep1:   c.Render.SectionSep1,
		SectionSep2:   c.Render.SectionSep2,
		NoneValues:    c.Render.NoneValues,
		Features:      make(map[corpus.OType][]string, len(c.Render.Features)),
	}
	for name, class := range c.Render.ClassNames {
		if t := corpus.ParseOType(name); t != corpus.Unknown {
			s.ClassNames[t] = class
		}
	}
	for name, fs := range c.Render.Features {
		if t := corpus.ParseOType(name); t != corpus.Unknown {
			s.Features[t] = fs
		}
	}
	return s
}

// ChildTable returns the pretty child enumeration named by the config.
func (c *Config) ChildTable() render.ChildTable {
	if c.Render.Children == ChildrenHierarchy {
		return render.HierarchyChildren()
	}
	return render.DefaultChildren()
}

// DisplayOptions returns the per-call defaults carried in the config.
func (c *Config) DisplayOptions() render.Options {
	return render.Options{Format: c.Render.Format}
}
