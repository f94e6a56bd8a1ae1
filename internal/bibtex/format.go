package bibtex

import (
	"fmt"
	"sort"
	"strings"
)

// preferredFieldOrder lists fields written first within an entry, in this
// order. Remaining fields follow alphabetically so output is deterministic.
var preferredFieldOrder = []string{
	"author",
	"title",
	"journal",
	"year",
	"month",
	"volume",
	"number",
	"pages",
	"doi",
	"eprint",
	"eprinttype",
	"url",
}

// FormatEntry renders a single entry under the given citation key.
func FormatEntry(key string, rec Record) string {
	entryType := rec.Type
	if entryType == "" {
		entryType = DefaultEntryType
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, key))

	written := make(map[string]bool, len(rec.Fields))
	for _, field := range preferredFieldOrder {
		if rec.Has(field) {
			b.WriteString(fmt.Sprintf("  %s = {%s},\n", field, rec.Get(field)))
			written[field] = true
		}
	}

	var rest []string
	for field := range rec.Fields {
		if !written[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		b.WriteString(fmt.Sprintf("  %s = {%s},\n", field, rec.Get(field)))
	}

	b.WriteString("}\n")
	return b.String()
}

// Format renders the whole library sorted lexicographically by key.
func Format(lib Library) string {
	keys := make([]string, 0, len(lib))
	for key := range lib {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var entries []string
	for _, key := range keys {
		entries = append(entries, FormatEntry(key, lib[key]))
	}
	return strings.Join(entries, "\n")
}
