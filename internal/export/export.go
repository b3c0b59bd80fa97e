// Package export writes rendered passages as standalone HTML pages.
//
// Each export produces the page itself (optionally xz-compressed) and a
// JSON manifest next to it recording the corpus digest and the BLAKE3 of
// the bytes written.
package export

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	"github.com/ulikunitz/xz"
	"github.com/yuin/goldmark"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/core/render"
	"github.com/FocuswithJustin/tischendorf-tf/internal/logging"
	"github.com/FocuswithJustin/tischendorf-tf/internal/validation"
)

// Style selects which renderings a page contains.
type Style string

const (
	StylePlain  Style = "plain"
	StylePretty Style = "pretty"
	StyleBoth   Style = "both"
)

// Job describes one exported page.
type Job struct {
	Target   string   `toml:"target"`
	Passages []string `toml:"passages"`
	Style    Style    `toml:"style"`
	Title    string   `toml:"title"`

	Format       string   `toml:"format"`
	WithNodes    bool     `toml:"with_nodes"`
	CondenseType string   `toml:"condense_type"`
	Features     []string `toml:"features"`
	// Highlights maps node numbers or passage references to colors.
	// An empty color gives the default highlight.
	Highlights map[string]string `toml:"highlights"`
}

// Page holds the fixed parts of every exported page.
type Page struct {
	Title string
	About string // markdown
	Font  string
}

// Manifest is written next to each exported page.
type Manifest struct {
	ID           string   `json:"id"`
	CreatedAt    string   `json:"created_at"`
	Target       string   `json:"target"`
	Style        Style    `json:"style"`
	Compressed   bool     `json:"compressed"`
	CorpusDigest string   `json:"corpus_digest"`
	OutputBLAKE3 string   `json:"output_blake3"`
	OutputBytes  int64    `json:"output_bytes"`
	Passages     []string `json:"passages"`
}

// ManifestPath returns where the manifest of target is written.
func ManifestPath(target string) string {
	return target + ".manifest.json"
}

// Exporter renders pages from one corpus.
type Exporter struct {
	corpus   *corpus.Corpus
	renderer *render.Renderer
	digest   string
	page     Page
	md       goldmark.Markdown
	now      func() time.Time
}

// New creates an Exporter. digest identifies the corpus in manifests.
func New(c *corpus.Corpus, r *render.Renderer, digest string, page Page) *Exporter {
	return &Exporter{
		corpus:   c,
		renderer: r,
		digest:   digest,
		page:     page,
		md:       goldmark.New(),
		now:      time.Now,
	}
}

// Export renders job and writes the page and its manifest.
func (e *Exporter) Export(ctx context.Context, job Job) (*Manifest, error) {
	if err := validation.ValidatePath(job.Target); err != nil {
		return nil, &errors.ValidationError{Field: "target", Value: job.Target, Message: err.Error()}
	}
	page, labels, err := e.Render(ctx, job)
	if err != nil {
		return nil, err
	}

	compressed := strings.HasSuffix(job.Target, ".xz")
	data := page
	if compressed {
		if data, err = compress(page); err != nil {
			return nil, errors.NewIO("compress", job.Target, err)
		}
	}
	if err := atomic.WriteFile(job.Target, bytes.NewReader(data)); err != nil {
		return nil, errors.NewIO("write", job.Target, err)
	}

	sum := blake3.Sum256(data)
	m := &Manifest{
		ID:           uuid.New().String(),
		CreatedAt:    e.now().UTC().Format(time.RFC3339),
		Target:       job.Target,
		Style:        job.style(),
		Compressed:   compressed,
		CorpusDigest: e.digest,
		OutputBLAKE3: hex.EncodeToString(sum[:]),
		OutputBytes:  int64(len(data)),
		Passages:     labels,
	}
	manifestData, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest: %w", err)
	}
	if err := atomic.WriteFile(ManifestPath(job.Target), bytes.NewReader(manifestData)); err != nil {
		return nil, errors.NewIO("write", ManifestPath(job.Target), err)
	}

	logging.ExportWritten(ctx, job.Target, m.OutputBytes, len(labels), "id", m.ID)
	return m, nil
}

// Batch runs jobs in order and stops at the first failure.
func (e *Exporter) Batch(ctx context.Context, jobs []Job) ([]*Manifest, error) {
	manifests := make([]*Manifest, 0, len(jobs))
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return manifests, err
		}
		jctx := logging.WithJobID(ctx, fmt.Sprintf("%d/%d", i+1, len(jobs)))
		m, err := e.Export(jctx, job)
		if err != nil {
			logging.ErrorContext(jctx, "export_failed", "target", job.Target, "error", err.Error())
			return manifests, fmt.Errorf("job %d (%s): %w", i+1, job.Target, err)
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

func (j Job) style() Style {
	if j.Style == "" {
		return StylePlain
	}
	return j.Style
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
