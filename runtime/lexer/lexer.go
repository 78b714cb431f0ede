// Package lexer splits a raw srcsrv stream into its declared sections.
//
// The stream is line oriented. Section headers follow a fixed grammar: the
// literal prefix "SRCSRV: ", a keyword naming the section, then a run of
// dashes padding the line out:
//
//	SRCSRV: ini ------------------------------------------------
//	VERSION=2
//	SRCSRV: variables ------------------------------------------
//	HTTP_ALIAS=https://example.com/
//	SRCSRV: source files ---------------------------------------
//	c:\src\a.cpp*src/a.cpp*rev123
//	SRCSRV: end ------------------------------------------------
//
// The splitter is deliberately dumber than the stream constructor sitting on
// top of it: it records every section it encounters, in order, without
// merging duplicates or rejecting unknown names. Callers pick the first
// occurrence of each section they care about. The one structural demand is
// that at least one header exists and that the "end" marker is reached.
package lexer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/aledsdavies/srcsrv/core/types"
)

// Well-known section names produced by Split. Names are lowercased so
// lookups are case-insensitive.
const (
	SectionIni         = "ini"
	SectionVariables   = "variables"
	SectionSourceFiles = "source files"
	SectionEnd         = "end"
)

// headerPrefix is the literal every section header starts with. The exact
// bytes matter for interoperability with real PDB streams.
const headerPrefix = "SRCSRV: "

// MaxRecordFields caps how many *-delimited fields a source file record may
// carry: the path plus var2..var10. Extra asterisks stay inside the last
// field, matching the documented variable set.
const MaxRecordFields = 10

var (
	// ErrNoSections means the input contains no recognizable section header
	// at all; it is not a srcsrv stream.
	ErrNoSections = errors.New("no SRCSRV section headers found")

	// ErrMissingEnd means headers were found but the stream was truncated
	// before the terminal "SRCSRV: end" marker.
	ErrMissingEnd = errors.New("missing SRCSRV end marker")
)

// Split scans the raw stream text and returns its sections in encounter
// order, up to and including the "end" marker. Blank body lines are dropped;
// everything after the end marker is ignored. Carriage returns are stripped
// so CRLF streams parse the same as LF streams.
func Split(data []byte) ([]types.Section, error) {
	var sections []types.Section
	current := -1 // index into sections, -1 until the first header

	for _, rawLine := range bytes.Split(data, []byte("\n")) {
		line := strings.TrimSuffix(string(rawLine), "\r")

		if name, ok := headerName(line); ok {
			sections = append(sections, types.Section{Name: name})
			current = len(sections) - 1
			if name == SectionEnd {
				return sections, nil
			}
			continue
		}

		if current < 0 || line == "" {
			// Preamble junk before the first header, or padding.
			continue
		}
		sections[current].Body = append(sections[current].Body, line)
	}

	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	return nil, fmt.Errorf("%w (last section %q)", ErrMissingEnd, sections[len(sections)-1].Name)
}

// headerName reports whether line is a section header and returns the
// lowercased section keyword. A header is the fixed prefix, a non-empty
// keyword, and at least one dash of padding.
func headerName(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, headerPrefix)
	if !ok {
		return "", false
	}
	dash := strings.IndexByte(rest, '-')
	if dash < 0 {
		return "", false
	}
	name := strings.TrimSpace(rest[:dash])
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

// SplitRecord splits one source-files body line into its fields: the indexed
// path first, then the positional values bound to var2, var3, ... during
// resolution.
func SplitRecord(line string) []string {
	return strings.SplitN(line, "*", MaxRecordFields)
}
