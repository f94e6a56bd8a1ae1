// Package bibtex defines the bibliography data model and its persisted
// BibTeX representation.
package bibtex

// Record is a single bibliographic entry: a BibTeX entry type plus a
// mapping of lowercased field names to values.
type Record struct {
	Type   string
	Fields map[string]string
}

// DefaultEntryType is the entry type assigned to newly fetched records.
const DefaultEntryType = "article"

// NewRecord creates an empty record of the given entry type.
func NewRecord(entryType string) Record {
	return Record{Type: entryType, Fields: make(map[string]string)}
}

// Get returns the value of a field, or "" if the field is absent.
func (r Record) Get(field string) string {
	return r.Fields[field]
}

// Set stores a field value, allocating the field map if needed.
func (r *Record) Set(field, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[field] = value
}

// Has reports whether the field is present, even with an empty value.
// An absent field and a present-but-empty field are distinct states.
func (r Record) Has(field string) bool {
	_, ok := r.Fields[field]
	return ok
}

// Library maps citation keys to records.
type Library map[string]Record
