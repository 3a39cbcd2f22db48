package genome

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Provider resolves a genome identifier (e.g. an assembly name like
// "GRCh38") to its sequence-length universe.  Implementations may block on
// I/O, hence the context; Close releases whatever the provider holds.
// Providers are injected into whatever layer needs universes, so tests can
// substitute a fixture trivially.
type Provider interface {
	Universe(ctx context.Context, genomeID string) (Universe, error)
	Close(ctx context.Context) error
}

// FileProvider resolves genome IDs against a directory of
// "<genomeID>.sizes" chrom-sizes files.
type FileProvider struct {
	// Dir is the directory holding the sizes files.  A ".gz" suffix on a
	// file is handled transparently.
	Dir string
}

// Universe implements Provider.
func (p *FileProvider) Universe(ctx context.Context, genomeID string) (Universe, error) {
	path := filepath.Join(p.Dir, genomeID+".sizes")
	u, err := ReadSizesFromPath(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "genome.FileProvider: genome %s", genomeID)
	}
	return u, nil
}

// Close implements Provider.  FileProvider holds no state.
func (p *FileProvider) Close(ctx context.Context) error { return nil }

// CachingProvider memoizes another Provider's results in memory, keyed by
// genome identifier.  Safe for concurrent use.
type CachingProvider struct {
	Source Provider

	mu    sync.Mutex
	cache map[string]Universe
}

// Universe implements Provider.  Each genome ID hits the source at most
// once; subsequent calls are served from the cache (a copy, so callers
// cannot corrupt it).
func (p *CachingProvider) Universe(ctx context.Context, genomeID string) (Universe, error) {
	p.mu.Lock()
	if u, ok := p.cache[genomeID]; ok {
		p.mu.Unlock()
		return u.Clone(), nil
	}
	p.mu.Unlock()

	// Resolve outside the lock; a racing duplicate fetch is harmless.
	u, err := p.Source.Universe(ctx, genomeID)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	if p.cache == nil {
		p.cache = map[string]Universe{}
	}
	p.cache[genomeID] = u.Clone()
	p.mu.Unlock()
	return u, nil
}

// Close implements Provider: drops the cache and closes the source.
func (p *CachingProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	p.cache = nil
	p.mu.Unlock()
	return p.Source.Close(ctx)
}
