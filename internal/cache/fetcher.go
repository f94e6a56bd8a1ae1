package cache

import (
	"context"

	"github.com/TranSophie/ericbryantphd.com/internal/bibtex"
	"github.com/TranSophie/ericbryantphd.com/internal/library"
)

// Fetcher serves PMID lookups from the cache and delegates misses to the
// wrapped fetcher. Cache write failures are ignored: the cache is an
// optimization, never a reason to fail an add.
type Fetcher struct {
	store *Store
	next  library.Fetcher
}

// NewFetcher wraps a fetcher with the given cache store.
func NewFetcher(store *Store, next library.Fetcher) *Fetcher {
	return &Fetcher{store: store, next: next}
}

// Fetch implements library.Fetcher.
func (f *Fetcher) Fetch(ctx context.Context, pmids []string) (map[string]bibtex.Record, error) {
	records := make(map[string]bibtex.Record, len(pmids))
	var misses []string

	for _, id := range pmids {
		if rec, ok := f.store.Get(id); ok {
			records[id] = rec
		} else {
			misses = append(misses, id)
		}
	}

	if len(misses) == 0 {
		return records, nil
	}

	fetched, err := f.next.Fetch(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, rec := range fetched {
		records[id] = rec
		_ = f.store.Put(id, rec)
	}

	return records, nil
}
