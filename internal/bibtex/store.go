package bibtex

import (
	"fmt"
	"os"
)

// Load reads the bibliography at path. If the file does not exist it is
// created empty and an empty Library is returned.
//
// Every record in the returned Library exposes eprint and eprinttype
// fields (empty if the source entry lacked them), so identifier-based
// deduplication never trips over a missing column.
func Load(path string) (Library, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if cerr := os.WriteFile(path, nil, 0644); cerr != nil {
				return nil, fmt.Errorf("creating bibliography: %w", cerr)
			}
			return make(Library), nil
		}
		return nil, fmt.Errorf("opening bibliography: %w", err)
	}
	defer f.Close()

	lib, err := Parse(f)
	if err != nil {
		return nil, err
	}

	for key, rec := range lib {
		if !rec.Has("eprint") {
			rec.Set("eprint", "")
		}
		if !rec.Has("eprinttype") {
			rec.Set("eprinttype", "")
		}
		lib[key] = rec
	}

	return lib, nil
}

// Save overwrites the bibliography at path with the library in canonical
// sorted order.
func Save(lib Library, path string) error {
	if err := os.WriteFile(path, []byte(Format(lib)), 0644); err != nil {
		return fmt.Errorf("writing bibliography: %w", err)
	}
	return nil
}
