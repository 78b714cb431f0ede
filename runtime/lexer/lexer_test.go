package lexer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aledsdavies/srcsrv/core/types"
)

func assertSections(t *testing.T, name, input string, expected []types.Section) {
	t.Helper()

	actual, err := Split([]byte(input))
	if err != nil {
		t.Fatalf("%s: Split returned error: %v", name, err)
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s: section mismatch (-expected +actual):\n%s", name, diff)
	}
}

func TestSplitWellFormedStream(t *testing.T) {
	input := "SRCSRV: ini ------------------------------------------------\n" +
		"VERSION=2\n" +
		"VERCTRL=http\n" +
		"SRCSRV: variables ------------------------------------------\n" +
		"HTTP_ALIAS=https://example.com/\n" +
		"SRCSRVTRG=%HTTP_ALIAS%%var2%\n" +
		"SRCSRV: source files ---------------------------------------\n" +
		"c:\\src\\a.cpp*src/a.cpp\n" +
		"SRCSRV: end ------------------------------------------------\n"

	expected := []types.Section{
		{Name: "ini", Body: []string{"VERSION=2", "VERCTRL=http"}},
		{Name: "variables", Body: []string{"HTTP_ALIAS=https://example.com/", "SRCSRVTRG=%HTTP_ALIAS%%var2%"}},
		{Name: "source files", Body: []string{"c:\\src\\a.cpp*src/a.cpp"}},
		{Name: "end"},
	}

	assertSections(t, "well formed", input, expected)
}

func TestSplitCRLFAndTrailingJunk(t *testing.T) {
	input := "SRCSRV: ini --\r\n" +
		"VERSION=1\r\n" +
		"SRCSRV: end --\r\n" +
		"\r\n" +
		"garbage after end is ignored\r\n"

	expected := []types.Section{
		{Name: "ini", Body: []string{"VERSION=1"}},
		{Name: "end"},
	}

	assertSections(t, "crlf", input, expected)
}

func TestSplitPreservesUnknownAndDuplicateSections(t *testing.T) {
	input := "SRCSRV: ini --\n" +
		"VERSION=2\n" +
		"SRCSRV: custom --\n" +
		"anything goes here\n" +
		"SRCSRV: ini --\n" +
		"VERSION=3\n" +
		"SRCSRV: end --\n"

	expected := []types.Section{
		{Name: "ini", Body: []string{"VERSION=2"}},
		{Name: "custom", Body: []string{"anything goes here"}},
		{Name: "ini", Body: []string{"VERSION=3"}},
		{Name: "end"},
	}

	assertSections(t, "unknown and duplicate", input, expected)
}

func TestSplitHeaderCaseInsensitive(t *testing.T) {
	input := "SRCSRV: INI --\nVERSION=1\nSRCSRV: End --\n"

	expected := []types.Section{
		{Name: "ini", Body: []string{"VERSION=1"}},
		{Name: "end"},
	}

	assertSections(t, "header case", input, expected)
}

func TestSplitBlankBodyLinesDropped(t *testing.T) {
	input := "SRCSRV: variables --\n\nA=1\n\nSRCSRV: end --\n"

	expected := []types.Section{
		{Name: "variables", Body: []string{"A=1"}},
		{Name: "end"},
	}

	assertSections(t, "blank lines", input, expected)
}

func TestSplitNoSections(t *testing.T) {
	for _, input := range []string{
		"",
		"just some text\nno headers anywhere\n",
		"SRCSRV:ini --\n", // missing the space after the colon
		"SRCSRV:  --\n",   // missing the keyword
	} {
		_, err := Split([]byte(input))
		if !errors.Is(err, ErrNoSections) {
			t.Errorf("Split(%q) error = %v, want ErrNoSections", input, err)
		}
	}
}

func TestSplitMissingEndMarker(t *testing.T) {
	input := "SRCSRV: ini --\nVERSION=2\nSRCSRV: variables --\nA=1\n"

	_, err := Split([]byte(input))
	if !errors.Is(err, ErrMissingEnd) {
		t.Fatalf("Split error = %v, want ErrMissingEnd", err)
	}
}

func TestSplitRecord(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "path only",
			line:     `C:\build\a.h`,
			expected: []string{`C:\build\a.h`},
		},
		{
			name:     "path with fields",
			line:     `c:\src\a.cpp*src/a.cpp*rev123`,
			expected: []string{`c:\src\a.cpp`, "src/a.cpp", "rev123"},
		},
		{
			name:     "empty fields preserved",
			line:     `c:\a.c**x`,
			expected: []string{`c:\a.c`, "", "x"},
		},
		{
			name: "caps at ten fields",
			line: "p*1*2*3*4*5*6*7*8*9*10*11",
			expected: []string{
				"p", "1", "2", "3", "4", "5", "6", "7", "8", "9*10*11",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expected, SplitRecord(tt.line)); diff != "" {
				t.Errorf("SplitRecord(%q) mismatch (-expected +actual):\n%s", tt.line, diff)
			}
		})
	}
}
