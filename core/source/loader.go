package source

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/hex"
	"os"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/tischendorf-tf/core/corpus"
	"github.com/FocuswithJustin/tischendorf-tf/core/errors"
	"github.com/FocuswithJustin/tischendorf-tf/internal/cache"
	"github.com/FocuswithJustin/tischendorf-tf/internal/logging"
)

// Request names the files that make up one corpus.
type Request struct {
	// Paths are read in order; words are numbered across all of them.
	Paths []string
	// Format forces a format for every path. FormatAuto detects per path.
	Format Format
	// Glosses is an optional "lemma<TAB>gloss" file.
	Glosses string
}

// Result is a loaded corpus and the digest of its inputs.
type Result struct {
	Corpus *corpus.Corpus
	// Digest is the hex BLAKE3 digest over the formats and bytes of all inputs.
	Digest string
	// Cached is true when the corpus came from the loader cache.
	Cached bool
}

// Loader builds corpora from files and caches them by input digest, so
// reloading unchanged files is cheap.
type Loader struct {
	name    string
	version string
	cache   *cache.TTLCache[string, *corpus.Corpus]
}

// NewLoader creates a Loader whose corpora carry the given name and
// version. Cached corpora expire after ttl; zero keeps them.
func NewLoader(name, version string, ttl time.Duration) *Loader {
	return &Loader{
		name:    name,
		version: version,
		cache:   cache.New[string, *corpus.Corpus](ttl),
	}
}

type input struct {
	path   string
	format Format
	data   []byte // nil for snapshots, which are opened by path
}

// Load reads, digests and builds the requested corpus.
func (l *Loader) Load(ctx context.Context, req Request) (*Result, error) {
	if len(req.Paths) == 0 {
		return nil, errors.NewValidation("paths", "", "no corpus files given")
	}
	start := time.Now()

	h := blake3.New()
	inputs := make([]input, 0, len(req.Paths))
	for _, path := range req.Paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		in, raw, err := readInput(path, req.Format)
		if err != nil {
			return nil, err
		}
		digestPart(h, string(in.format), raw)
		inputs = append(inputs, in)
	}

	var glossData []byte
	if req.Glosses != "" {
		data, err := ReadFile(req.Glosses)
		if err != nil {
			return nil, err
		}
		digestPart(h, "glosses", data)
		glossData = data
	}
	digest := hex.EncodeToString(h.Sum(nil))

	c, hit, err := l.cache.GetOrLoad(digest, func() (*corpus.Corpus, error) {
		return l.build(ctx, inputs, req.Glosses, glossData)
	})
	if err != nil {
		return nil, err
	}
	if hit {
		logging.Debug("corpus_cache_hit", "digest", digest[:16])
	} else {
		logging.CorpusLoaded(strings.Join(req.Paths, ","), string(inputs[0].format), c.SlotCount(),
			time.Since(start), "digest", digest[:16])
	}
	return &Result{Corpus: c, Digest: digest, Cached: hit}, nil
}

// Invalidate drops all cached corpora.
func (l *Loader) Invalidate() {
	l.cache.Invalidate()
}

func readInput(path string, forced Format) (input, []byte, error) {
	format := forced
	if format == FormatAuto {
		f, err := DetectFormat(path)
		if err != nil {
			return input{}, nil, err
		}
		format = f
	}

	if format == FormatSQLite {
		if IsCompressed(path) {
			return input{}, nil, errors.NewUnsupported("compressed snapshot", path)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return input{}, nil, errors.NewIO("read", path, err)
		}
		if err := checkContent(path, raw); err != nil {
			return input{}, nil, err
		}
		return input{path: path, format: format}, raw, nil
	}

	data, err := ReadFile(path)
	if err != nil {
		return input{}, nil, err
	}
	return input{path: path, format: format, data: data}, data, nil
}

// digestPart writes a length-prefixed tag and payload so that input
// boundaries are part of the digest.
func digestPart(h *blake3.Hasher, tag string, data []byte) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(tag)))
	h.Write(n[:])
	h.Write([]byte(tag))
	binary.BigEndian.PutUint64(n[:], uint64(len(data)))
	h.Write(n[:])
	h.Write(data)
}

func (l *Loader) build(ctx context.Context, inputs []input, glossPath string, glossData []byte) (*corpus.Corpus, error) {
	b := corpus.NewBuilder(l.name, l.version)
	for _, in := range inputs {
		if in.format == FormatSQLite {
			if err := LoadSnapshot(ctx, in.path, b); err != nil {
				return nil, err
			}
			continue
		}
		parse, err := ParserFor(in.format)
		if err != nil {
			return nil, err
		}
		if err := parse(bytes.NewReader(in.data), in.path, b); err != nil {
			return nil, err
		}
	}

	if glossData != nil {
		glosses, err := ReadGlosses(bytes.NewReader(glossData), glossPath)
		if err != nil {
			return nil, err
		}
		b.SetGlosses(glosses)
	}
	return b.Build()
}
