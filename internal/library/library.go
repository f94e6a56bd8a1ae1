// Package library coordinates the PMID-to-bibliography merge pipeline:
// deduplicate requested PMIDs, diff them against the persisted library,
// fetch the missing records, assign citation keys, and merge the results
// back to disk with existing entries winning on key collision.
package library

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/TranSophie/ericbryantphd.com/internal/bibtex"
	"github.com/TranSophie/ericbryantphd.com/internal/citekey"
)

const (
	// DefaultDir is the default bibliography directory.
	DefaultDir = "."
	// DefaultFile is the default bibliography file name.
	DefaultFile = "library.bib"

	// EprintType tags records whose eprint field holds a PMID.
	EprintType = "pubmed"

	// articleBaseURL is the canonical PubMed article URL prefix.
	articleBaseURL = "https://www.ncbi.nlm.nih.gov/pubmed/"
)

// Fetcher resolves PMIDs to bibliographic records. Implementations may
// return fewer records than requested; unresolvable PMIDs are simply
// absent from the result.
type Fetcher interface {
	Fetch(ctx context.Context, pmids []string) (map[string]bibtex.Record, error)
}

// Manager runs merge operations against one bibliography file.
type Manager struct {
	fetcher Fetcher
	dir     string
	file    string
	print   bool
	out     io.Writer
}

// Option configures a Manager.
type Option func(*Manager)

// WithDir sets the bibliography directory.
func WithDir(dir string) Option {
	return func(m *Manager) {
		m.dir = dir
	}
}

// WithFile sets the bibliography file name.
func WithFile(name string) Option {
	return func(m *Manager) {
		m.file = name
	}
}

// WithPrint controls whether newly added entries are echoed as BibTeX.
func WithPrint(print bool) Option {
	return func(m *Manager) {
		m.print = print
	}
}

// WithOutput redirects status messages (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(m *Manager) {
		m.out = w
	}
}

// NewManager creates a Manager around the given fetcher.
func NewManager(fetcher Fetcher, opts ...Option) *Manager {
	m := &Manager{
		fetcher: fetcher,
		dir:     DefaultDir,
		file:    DefaultFile,
		print:   true,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Path returns the bibliography file path.
func (m *Manager) Path() string {
	return filepath.Join(m.dir, m.file)
}

// AddPMIDs merges the records for the given PMIDs into the bibliography.
//
// PMIDs already present in the library (matched by eprint where eprinttype
// is "pubmed") are not fetched again. On citation-key collision with an
// existing entry the existing entry is kept verbatim, so manual edits
// survive refetching. "Nothing new to add" and "nothing could be retrieved"
// are reported outcomes, not errors; in both cases the file is left
// untouched and the returned library is nil.
func (m *Manager) AddPMIDs(ctx context.Context, pmids []string) (bibtex.Library, error) {
	pmids = dedupe(pmids)

	lib, err := bibtex.Load(m.Path())
	if err != nil {
		return nil, fmt.Errorf("loading library: %w", err)
	}

	newIDs := pmids
	if len(lib) > 0 {
		known := make(map[string]bool, len(lib))
		for _, rec := range lib {
			if rec.Get("eprinttype") == EprintType {
				known[rec.Get("eprint")] = true
			}
		}
		newIDs = nil
		for _, id := range pmids {
			if !known[id] {
				newIDs = append(newIDs, id)
			}
		}
	}
	if len(newIDs) == 0 {
		fmt.Fprintln(m.out, "No new PMIDs to add.")
		return nil, nil
	}

	resolved, err := m.fetcher.Fetch(ctx, newIDs)
	if err != nil {
		return nil, fmt.Errorf("fetching PubMed records: %w", err)
	}
	if len(resolved) == 0 {
		fmt.Fprintln(m.out, "No new PMIDs could be retrieved.")
		return nil, nil
	}

	// Key the batch. Within-batch key collisions resolve last-wins; the
	// merge below then lets any pre-existing library entry win instead.
	byKey := make(bibtex.Library, len(resolved))
	for _, id := range newIDs {
		rec, ok := resolved[id]
		if !ok {
			continue // Withdrawn or invalid PMID, dropped by the lookup
		}
		rec.Set("eprint", id)
		rec.Set("eprinttype", EprintType)
		rec.Set("url", articleBaseURL+id)
		byKey[citekey.Build(rec)] = rec
	}

	var added []string
	for key, rec := range byKey {
		if _, exists := lib[key]; exists {
			continue
		}
		lib[key] = rec
		added = append(added, key)
	}
	sort.Strings(added)

	if m.print {
		for _, key := range added {
			fmt.Fprintln(m.out, bibtex.FormatEntry(key, lib[key]))
		}
	}
	if len(added) > 0 {
		fmt.Fprintf(m.out, "Adding entries for: %s\n", strings.Join(added, ", "))
	}

	if err := bibtex.Save(lib, m.Path()); err != nil {
		return nil, fmt.Errorf("saving library: %w", err)
	}

	return lib, nil
}

// dedupe collapses duplicate PMIDs, keeping first-seen order.
func dedupe(pmids []string) []string {
	seen := make(map[string]bool, len(pmids))
	var out []string
	for _, id := range pmids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
