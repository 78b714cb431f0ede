package parser

import "fmt"

// ErrorKind represents the categories of template syntax errors.
type ErrorKind int

const (
	ErrorUnterminatedToken ErrorKind = iota // % with no closing %
	ErrorMissingOpenParen                   // transform name not followed by (
	ErrorMissingCloseParen                  // transform argument not closed by )
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorUnterminatedToken:
		return "unterminated % token"
	case ErrorMissingOpenParen:
		return "missing opening parenthesis"
	case ErrorMissingCloseParen:
		return "missing closing parenthesis"
	default:
		return "syntax error"
	}
}

// ParseError reports a malformed template. Function is set for transform
// argument errors; Template is the full template being parsed.
type ParseError struct {
	Kind     ErrorKind
	Function string
	Template string
}

func (e *ParseError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("template %q: %s after %%%s%%", e.Template, e.Kind, e.Function)
	}
	return fmt.Sprintf("template %q: %s", e.Template, e.Kind)
}
