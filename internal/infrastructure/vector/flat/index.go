// Package flat serves nearest-neighbor queries over a precomputed corpus
// index produced by the offline manual-indexing job. The index is loaded
// once per process and immutable afterwards.
package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/okorolev/manual-assistant/internal/core/domain"
)

type Config struct {
	IndexPath          string
	MetadataPath       string
	EmbeddingsTextPath string
	ChunksTextPath     string
}

// Index is a flat (exact, brute-force) L2 index over float32 vectors plus a
// side table resolving row identity to chunk text.
type Index struct {
	cfg Config

	loadOnce  sync.Once
	loadErr   error
	loadCalls atomic.Int64

	dim     int
	vectors [][]float32
	refs    []domain.ChunkRef
	texts   map[domain.ChunkRef]string
}

func New(cfg Config) *Index {
	return &Index{cfg: cfg}
}

// Load reads the corpus artifacts. It is a one-shot barrier: exactly one
// load attempt runs per process regardless of call concurrency, concurrent
// callers block until it finishes, and the outcome is sticky.
func (ix *Index) Load(_ context.Context) error {
	ix.loadOnce.Do(func() {
		ix.loadCalls.Add(1)
		ix.loadErr = ix.load()
	})
	return ix.loadErr
}

// LoadCalls reports how many load attempts have run. Stays at 1 after the
// first Load returns.
func (ix *Index) LoadCalls() int64 {
	return ix.loadCalls.Load()
}

func (ix *Index) load() error {
	dim, vectors, err := readIndexFile(ix.cfg.IndexPath)
	if err != nil {
		return domain.WrapError(domain.ErrIndexLoad, "read index", err)
	}

	refs, err := readMetadata(ix.cfg.MetadataPath)
	if err != nil {
		return domain.WrapError(domain.ErrIndexLoad, "read metadata", err)
	}
	if len(refs) != len(vectors) {
		return domain.WrapError(domain.ErrIndexLoad, "align metadata",
			fmt.Errorf("metadata has %d entries, index has %d rows", len(refs), len(vectors)))
	}

	// Missing text sources are non-fatal: affected chunks degrade to empty
	// text and stay citable without an excerpt.
	texts := readChunkTexts(ix.cfg.EmbeddingsTextPath, ix.cfg.ChunksTextPath)

	ix.dim = dim
	ix.vectors = vectors
	ix.refs = refs
	ix.texts = texts
	return nil
}

// Search returns up to k nearest rows by L2 distance, ascending, ties stable
// in row order. A query dimension mismatch is a configuration error.
func (ix *Index) Search(ctx context.Context, queryVector []float32, k int) ([]domain.RetrievedChunk, error) {
	if err := ix.Load(ctx); err != nil {
		return nil, err
	}
	if len(queryVector) != ix.dim {
		return nil, domain.WrapError(domain.ErrInvalidInput, "vector search",
			fmt.Errorf("query dimension %d does not match index dimension %d", len(queryVector), ix.dim))
	}
	if k <= 0 {
		k = 4
	}
	if k > len(ix.vectors) {
		k = len(ix.vectors)
	}

	type hit struct {
		row  int
		dist float64
	}
	hits := make([]hit, len(ix.vectors))
	for row, vector := range ix.vectors {
		hits[row] = hit{row: row, dist: l2Squared(queryVector, vector)}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].dist < hits[j].dist })

	out := make([]domain.RetrievedChunk, 0, k)
	for _, h := range hits[:k] {
		ref := ix.refs[h.row]
		out = append(out, domain.RetrievedChunk{
			FileName: ref.FileName,
			ChunkID:  ref.ChunkID,
			Distance: h.dist,
			Text:     ix.texts[ref],
		})
	}
	return out, nil
}

func l2Squared(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
