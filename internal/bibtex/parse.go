package bibtex

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Regex patterns for line-oriented BibTeX parsing.
var (
	// Match entry start: @type{key,
	entryStartRegex = regexp.MustCompile(`^\s*@(\w+)\{([^,]+),\s*$`)
	// Match field line: name = {value}, or name = "value",
	fieldRegex = regexp.MustCompile(`^\s*(\w+)\s*=\s*[{"](.*?)[}"],?\s*$`)
	// Match entry end: a lone closing brace
	entryEndRegex = regexp.MustCompile(`^\s*}\s*$`)
)

// Parse reads BibTeX entries into a Library.
//
// The parser is line-oriented and deliberately shallow: it recognizes the
// one-field-per-line layout this tool writes (and that reference managers
// commonly emit), and ignores anything it does not understand rather than
// failing. It is not a general BibTeX validator.
func Parse(r io.Reader) (Library, error) {
	lib := make(Library)

	scanner := bufio.NewScanner(r)
	var (
		currentKey string
		current    Record
		lineNum    int
	)

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if m := entryStartRegex.FindStringSubmatch(line); m != nil {
			if currentKey != "" {
				// Previous entry never closed; keep what we have.
				lib[currentKey] = current
			}
			currentKey = strings.TrimSpace(m[2])
			current = NewRecord(strings.ToLower(m[1]))
			continue
		}

		if currentKey == "" {
			continue // Preamble, comments, blank lines between entries
		}

		if m := fieldRegex.FindStringSubmatch(line); m != nil {
			current.Set(strings.ToLower(m[1]), m[2])
			continue
		}

		if entryEndRegex.MatchString(line) {
			lib[currentKey] = current
			currentKey = ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading bibliography (line %d): %w", lineNum, err)
	}

	if currentKey != "" {
		lib[currentKey] = current
	}

	return lib, nil
}
