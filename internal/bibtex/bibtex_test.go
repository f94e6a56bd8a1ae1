package bibtex

import (
	"strings"
	"testing"
)

func TestRecord_Has(t *testing.T) {
	rec := NewRecord("article")
	rec.Set("month", "")

	if !rec.Has("month") {
		t.Error("Has() = false for present-but-empty field, want true")
	}
	if rec.Has("year") {
		t.Error("Has() = true for absent field, want false")
	}
	if rec.Get("year") != "" {
		t.Errorf("Get() = %q for absent field, want empty", rec.Get("year"))
	}
}

func TestParse_SingleEntry(t *testing.T) {
	input := `@article{2020-03-Smith-Doe,
  author = {Jane Smith and John Doe},
  title = {A Study of Things},
  journal = {Nature},
  year = {2020},
  month = {03},
  eprint = {12345},
  eprinttype = {pubmed},
  url = {https://www.ncbi.nlm.nih.gov/pubmed/12345},
}
`
	lib, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(lib) != 1 {
		t.Fatalf("Parse() returned %d entries, want 1", len(lib))
	}

	rec, ok := lib["2020-03-Smith-Doe"]
	if !ok {
		t.Fatalf("Parse() missing key 2020-03-Smith-Doe, got keys %v", lib)
	}
	if rec.Type != "article" {
		t.Errorf("entry type = %q, want article", rec.Type)
	}
	if got := rec.Get("author"); got != "Jane Smith and John Doe" {
		t.Errorf("author = %q", got)
	}
	if got := rec.Get("eprint"); got != "12345" {
		t.Errorf("eprint = %q, want 12345", got)
	}
}

func TestParse_MultipleEntriesAndNoise(t *testing.T) {
	input := `% personal bibliography

@article{2019-00-uez,
  author = {Ana Nuez},
  year = {2019},
}

@book{2001-01-Knuth,
  author = {Donald Knuth},
  year = {2001},
  month = {01},
}
`
	lib, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(lib) != 2 {
		t.Fatalf("Parse() returned %d entries, want 2", len(lib))
	}
	if lib["2001-01-Knuth"].Type != "book" {
		t.Errorf("entry type = %q, want book", lib["2001-01-Knuth"].Type)
	}
}

func TestParse_QuotedValues(t *testing.T) {
	input := `@article{key1,
  title = "Quoted Title",
}
`
	lib, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := lib["key1"].Get("title"); got != "Quoted Title" {
		t.Errorf("title = %q, want Quoted Title", got)
	}
}

func TestFormatEntry_FieldOrder(t *testing.T) {
	rec := NewRecord("article")
	rec.Set("zzz", "custom")
	rec.Set("year", "2020")
	rec.Set("author", "Jane Smith")
	rec.Set("eprinttype", "pubmed")
	rec.Set("eprint", "")

	got := FormatEntry("2020-00-Smith", rec)

	if !strings.HasPrefix(got, "@article{2020-00-Smith,\n") {
		t.Errorf("FormatEntry() should start with @article line, got:\n%s", got)
	}

	// Preferred fields precede the alphabetical remainder.
	authorIdx := strings.Index(got, "author =")
	yearIdx := strings.Index(got, "year =")
	zzzIdx := strings.Index(got, "zzz =")
	if !(authorIdx < yearIdx && yearIdx < zzzIdx) {
		t.Errorf("FormatEntry() field order wrong:\n%s", got)
	}

	// Empty eprint still written as a column.
	if !strings.Contains(got, "eprint = {},") {
		t.Errorf("FormatEntry() should write empty eprint field, got:\n%s", got)
	}
}

func TestFormat_SortedByKey(t *testing.T) {
	lib := Library{
		"2021-05-B":     NewRecord("article"),
		"1999-01-Adams": NewRecord("article"),
		"2020-03-Smith": NewRecord("article"),
	}

	got := Format(lib)

	aIdx := strings.Index(got, "1999-01-Adams")
	bIdx := strings.Index(got, "2020-03-Smith")
	cIdx := strings.Index(got, "2021-05-B")
	if !(aIdx < bIdx && bIdx < cIdx) {
		t.Errorf("Format() entries not sorted by key:\n%s", got)
	}

	// Deterministic across calls.
	if again := Format(lib); again != got {
		t.Error("Format() output not deterministic")
	}
}
