// Package srcsrv interprets the source-indexing ("srcsrv") stream embedded
// as a named stream in Windows PDB files.
//
// The stream maps source file paths recorded in the debug symbols to
// retrieval instructions. Given the raw stream bytes (obtained from the PDB
// by the caller) and a recorded path, Resolve reports how the source text
// can be materialized: either by downloading it from a URL, or by running a
// command that is expected to produce it at a known location.
//
//	stream, err := srcsrv.Parse(raw)
//	if err != nil {
//		return err
//	}
//	method, err := stream.Resolve(`C:\build\app\main.cpp`, `C:\Debugger\Cached Sources`)
//	if err != nil {
//		return err
//	}
//	switch m := method.(type) {
//	case types.Download:
//		// fetch m.URL
//	case types.ExecuteCommand:
//		// run m.Command, then read m.TargetPath
//	}
//
// This package only describes retrieval; it performs no network, process, or
// filesystem activity. A parsed Stream is immutable and safe for concurrent
// use.
package srcsrv

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aledsdavies/srcsrv/core/types"
	"github.com/aledsdavies/srcsrv/runtime/lexer"
	"github.com/aledsdavies/srcsrv/runtime/parser"
)

// Well-known variable names (stored and looked up lowercased).
const (
	varTarget      = "srcsrvtrg"
	varCommand     = "srcsrvcmd"
	varCommandEnv  = "srcsrvenv"
	varVersionCtrl = "srcsrvverctrl"
	varErrVar      = "srcsrverrvar"
	errDescPrefix  = "srcsrverrdesc"
)

// Stream is a parsed srcsrv stream: the ini fields, the default variable
// table (raw text and parsed templates), and one row per indexed source
// file. Immutable after Parse.
type Stream struct {
	version   int
	ini       map[string]string      // lowercased key -> value
	rawVars   map[string]string      // lowercased name -> raw template text
	templates map[string]parser.Node // lowercased name -> parsed template
	rows      map[string]types.SourceRow
	sections  []types.Section
}

// Parse interprets the raw bytes of the srcsrv stream. The stream must carry
// recognizable section markers through the terminal end marker; within the
// well-known sections, ini and variables lines must be key=value pairs and
// variable values must be syntactically valid templates. When a section
// appears more than once, the first occurrence is used. Later duplicates of
// a variable name or of a normalized path overwrite earlier ones.
func Parse(data []byte) (*Stream, error) {
	sections, err := lexer.Split(data)
	if err != nil {
		if errors.Is(err, lexer.ErrNoSections) || errors.Is(err, lexer.ErrMissingEnd) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedStream, err)
		}
		return nil, err
	}

	s := &Stream{
		ini:       make(map[string]string),
		rawVars:   make(map[string]string),
		templates: make(map[string]parser.Node),
		rows:      make(map[string]types.SourceRow),
		sections:  sections,
	}

	if sec, ok := firstSection(sections, lexer.SectionIni); ok {
		for _, line := range sec.Body {
			key, value, found := strings.Cut(line, "=")
			if !found {
				return nil, fmt.Errorf("srcsrv: ini section: line %q: missing '='", line)
			}
			s.ini[strings.ToLower(key)] = value
		}
	}
	if v, ok := s.ini["version"]; ok {
		switch v {
		case "1":
			s.version = 1
		case "2":
			s.version = 2
		case "3":
			s.version = 3
		default:
			return nil, fmt.Errorf("srcsrv: unrecognized VERSION %q", v)
		}
	}

	if sec, ok := firstSection(sections, lexer.SectionVariables); ok {
		for _, line := range sec.Body {
			name, value, found := strings.Cut(line, "=")
			if !found {
				return nil, fmt.Errorf("srcsrv: variables section: line %q: missing '='", line)
			}
			node, err := parser.Parse(value)
			if err != nil {
				return nil, fmt.Errorf("srcsrv: variable %s: %w", name, err)
			}
			lower := strings.ToLower(name)
			s.rawVars[lower] = value
			s.templates[lower] = node
		}
	}

	if sec, ok := firstSection(sections, lexer.SectionSourceFiles); ok {
		for _, line := range sec.Body {
			fields := lexer.SplitRecord(line)
			row := types.SourceRow{Path: fields[0], Fields: fields[1:]}
			s.rows[normalizePath(row.Path)] = row
		}
	}

	return s, nil
}

// firstSection returns the first section with the given name.
func firstSection(sections []types.Section, name string) (types.Section, bool) {
	for _, sec := range sections {
		if sec.Name == name {
			return sec, true
		}
	}
	return types.Section{}, false
}

// normalizePath folds case and path separators so that rows indexed with
// Windows paths match queries spelled with forward slashes or different
// casing.
func normalizePath(p string) string {
	return strings.ToLower(strings.ReplaceAll(p, "/", `\`))
}

// Version returns the VERSION ini field (1, 2 or 3), or 0 when the stream
// does not declare one.
func (s *Stream) Version() int {
	return s.version
}

// IniField returns the value of the named ini section field. The name is
// case-insensitive.
func (s *Stream) IniField(name string) (string, bool) {
	v, ok := s.ini[strings.ToLower(name)]
	return v, ok
}

// IndexVersion returns the INDEXVERSION ini field, if declared.
func (s *Stream) IndexVersion() (string, bool) {
	return s.IniField("indexversion")
}

// Datetime returns the DATETIME ini field, if declared.
func (s *Stream) Datetime() (string, bool) {
	return s.IniField("datetime")
}

// VersionControlDescription returns the VERCTRL ini field, if declared.
func (s *Stream) VersionControlDescription() (string, bool) {
	return s.IniField("verctrl")
}

// RawVar returns the raw, unexpanded value of the named variable from the
// variables section. The name is case-insensitive.
func (s *Stream) RawVar(name string) (string, bool) {
	v, ok := s.rawVars[strings.ToLower(name)]
	return v, ok
}

// Row returns the source row matching path. The lookup is case-insensitive
// and treats / and \ as equivalent. A missing row is a normal outcome, not
// an error.
func (s *Stream) Row(path string) (types.SourceRow, bool) {
	row, ok := s.rows[normalizePath(path)]
	return row, ok
}

// Rows returns every indexed source row, ordered by normalized path.
func (s *Stream) Rows() []types.SourceRow {
	keys := make([]string, 0, len(s.rows))
	for key := range s.rows {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]types.SourceRow, len(keys))
	for i, key := range keys {
		rows[i] = s.rows[key]
	}
	return rows
}

// Sections returns the raw sections in encounter order, including unknown
// and duplicate sections.
func (s *Stream) Sections() []types.Section {
	return s.sections
}

// ErrorPersistenceCommandOutputStrings returns the values of all
// SRCSRVERRDESC* variables, sorted. When a retrieval command's output
// contains one of these strings, callers should persist the error and skip
// commands for other entries with the same ErrorPersistenceVersionCtrl
// value.
func (s *Stream) ErrorPersistenceCommandOutputStrings() []string {
	var out []string
	for name, value := range s.rawVars {
		if strings.HasPrefix(name, errDescPrefix) {
			out = append(out, value)
		}
	}
	sort.Strings(out)
	return out
}
