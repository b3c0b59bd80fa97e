package export

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus/corpustest"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/core/render"
)

func newExporter(t *testing.T) *Exporter {
	t.Helper()
	c := corpustest.New()
	e := New(c, render.New(c, render.DefaultSettings()), "c0ffee", Page{
		Title: "Tischendorf's 8th New Testament",
		About: "Text of **Tischendorf's 8th edition**.",
		Font:  "SBL_BLit",
	})
	e.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestRenderPage(t *testing.T) {
	e := newExporter(t)

	page, labels, err := e.Render(context.Background(), Job{
		Passages: []string{"Matthew 1:1-2", "Mark 1:1"},
		Style:    StyleBoth,
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if want := []string{"Matthew 1:1", "Matthew 1:2", "Mark 1:1"}; !reflect.DeepEqual(labels, want) {
		t.Errorf("labels = %v, want %v", labels, want)
	}

	html := string(page)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Tischendorf&#39;s 8th New Testament</title>",
		"<strong>Tischendorf's 8th edition</strong>",
		`font-family: "SBL_BLit"`,
		`<h2>Matthew 1:2</h2>`,
		`<span class="vn">`,
		`<div class="outeritem">`,
		"Βίβλος",
		"εὐαγγελίου",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
	if strings.Contains(html, `class="nd"`) {
		t.Error("page should not contain node badges unless asked")
	}
}

func TestRenderStyles(t *testing.T) {
	e := newExporter(t)

	tests := []struct {
		style      Style
		wantPlain  bool
		wantPretty bool
	}{
		{"", true, false},
		{StylePlain, true, false},
		{StylePretty, false, true},
		{StyleBoth, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.style), func(t *testing.T) {
			page, _, err := e.Render(context.Background(), Job{Passages: []string{"Mark 1:1"}, Style: tt.style})
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			html := string(page)
			if got := strings.Contains(html, `<span class="vn">`); got != tt.wantPlain {
				t.Errorf("plain rendering present = %v, want %v", got, tt.wantPlain)
			}
			if got := strings.Contains(html, `<div class="outeritem">`); got != tt.wantPretty {
				t.Errorf("pretty rendering present = %v, want %v", got, tt.wantPretty)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	e := newExporter(t)

	page, _, err := e.Render(context.Background(), Job{
		Passages:   []string{"Matthew 1:1"},
		Style:      StylePretty,
		WithNodes:  true,
		Features:   []string{"strongs"},
		Highlights: map[string]string{"1": "red", "Matthew 1:1": ""},
		Title:      "Genealogy",
	})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	html := string(page)
	for _, want := range []string{
		"<title>Genealogy</title>",
		"background-color: red;",
		`hlbx`,
		`<span class="f">strongs=</span>976`,
		`<a href="#" class="nd">1</a>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	e := newExporter(t)

	tests := []struct {
		name   string
		job    Job
		target error
	}{
		{"no passages", Job{}, errors.ErrInvalidInput},
		{"bad style", Job{Passages: []string{"Mark 1:1"}, Style: "fancy"}, errors.ErrInvalidInput},
		{"bad condense type", Job{Passages: []string{"Mark 1:1"}, CondenseType: "paragraph"}, errors.ErrInvalidInput},
		{"passage not in corpus", Job{Passages: []string{"Luke 1:1"}}, errors.ErrNotFound},
		{"bad highlight node", Job{Passages: []string{"Mark 1:1"}, Highlights: map[string]string{"999": "red"}}, errors.ErrNotFound},
		{"bad highlight color", Job{Passages: []string{"Mark 1:1"}, Highlights: map[string]string{"12": "red; display: none"}}, errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := e.Render(context.Background(), tt.job)
			if !errors.Is(err, tt.target) {
				t.Errorf("Render() error = %v, want %v", err, tt.target)
			}
		})
	}

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, _, err := e.Render(ctx, Job{Passages: []string{"Mark 1:1"}}); !errors.Is(err, context.Canceled) {
			t.Errorf("Render() error = %v, want context.Canceled", err)
		}
	})
}

func readManifest(t *testing.T, target string) Manifest {
	t.Helper()
	data, err := os.ReadFile(ManifestPath(target))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return m
}

func TestExport(t *testing.T) {
	e := newExporter(t)
	target := filepath.Join(t.TempDir(), "matthew.html")

	m, err := e.Export(context.Background(), Job{Target: target, Passages: []string{"Matthew 1"}})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	sum := blake3.Sum256(data)
	if m.OutputBLAKE3 != hex.EncodeToString(sum[:]) {
		t.Errorf("OutputBLAKE3 = %s, want digest of the written page", m.OutputBLAKE3)
	}
	if m.OutputBytes != int64(len(data)) {
		t.Errorf("OutputBytes = %d, want %d", m.OutputBytes, len(data))
	}
	if m.CorpusDigest != "c0ffee" || m.Compressed || m.Style != StylePlain {
		t.Errorf("manifest = %+v", m)
	}
	if m.CreatedAt != "2024-05-01T12:00:00Z" {
		t.Errorf("CreatedAt = %q", m.CreatedAt)
	}
	if want := []string{"Matthew 1"}; !reflect.DeepEqual(m.Passages, want) {
		t.Errorf("Passages = %v, want %v", m.Passages, want)
	}

	onDisk := readManifest(t, target)
	if !reflect.DeepEqual(onDisk, *m) {
		t.Errorf("manifest on disk = %+v, want %+v", onDisk, *m)
	}
}

func TestExportCompressed(t *testing.T) {
	e := newExporter(t)
	target := filepath.Join(t.TempDir(), "mark.html.xz")

	m, err := e.Export(context.Background(), Job{Target: target, Passages: []string{"Mark 1:1"}})
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !m.Compressed {
		t.Error("Compressed = false for an .xz target")
	}

	f, err := os.Open(target)
	if err != nil {
		t.Fatalf("open page: %v", err)
	}
	defer f.Close()
	r, err := xz.NewReader(f)
	if err != nil {
		t.Fatalf("xz reader: %v", err)
	}
	page, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !strings.Contains(string(page), "εὐαγγελίου") {
		t.Error("decompressed page does not contain the passage text")
	}
}

func TestExportUniqueIDs(t *testing.T) {
	e := newExporter(t)
	dir := t.TempDir()

	a, err := e.Export(context.Background(), Job{Target: filepath.Join(dir, "a.html"), Passages: []string{"Mark 1:1"}})
	if err != nil {
		t.Fatalf("Export(a) error: %v", err)
	}
	b, err := e.Export(context.Background(), Job{Target: filepath.Join(dir, "b.html"), Passages: []string{"Mark 1:1"}})
	if err != nil {
		t.Fatalf("Export(b) error: %v", err)
	}
	if a.ID == b.ID {
		t.Error("manifests share an id")
	}
	if a.OutputBLAKE3 != b.OutputBLAKE3 {
		t.Error("identical jobs should produce identical pages")
	}
}

func TestExportErrors(t *testing.T) {
	e := newExporter(t)

	if _, err := e.Export(context.Background(), Job{Passages: []string{"Mark 1:1"}}); !errors.Is(err, errors.ErrInvalidInput) {
		t.Errorf("Export(no target) error = %v, want ErrInvalidInput", err)
	}

	target := filepath.Join(t.TempDir(), "missing-dir", "page.html")
	if _, err := e.Export(context.Background(), Job{Target: target, Passages: []string{"Mark 1:1"}}); err == nil {
		t.Error("Export() into a missing directory should fail")
	}
}
