package parser

import "strings"

// Parse parses a raw template value into its syntax tree. Transform names
// are matched case-insensitively; any other %name% token is a variable
// reference. Literal text is kept verbatim.
func Parse(template string) (Node, error) {
	if template == "" {
		return Literal(""), nil
	}
	s := &scanner{input: template}
	return s.parseAll(false)
}

// scanner is a cursor over the template text. Parsing is a single left to
// right pass; transform arguments recurse with stopAtCloseParen set so the
// argument stops at the first unconsumed ')'.
type scanner struct {
	input string
	pos   int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	return s.input[s.pos]
}

// parseAll parses nodes until end of input (or an unconsumed ')' when
// stopAtCloseParen is set), collapsing a single node without a Sequence
// wrapper.
func (s *scanner) parseAll(stopAtCloseParen bool) (Node, error) {
	node, err := s.parseOne(stopAtCloseParen)
	if err != nil {
		return Node{}, err
	}
	if s.eof() || (stopAtCloseParen && s.peek() == ')') {
		return node, nil
	}

	nodes := []Node{node}
	for {
		node, err := s.parseOne(stopAtCloseParen)
		if err != nil {
			return Node{}, err
		}
		nodes = append(nodes, node)
		if s.eof() || (stopAtCloseParen && s.peek() == ')') {
			return Sequence(nodes...), nil
		}
	}
}

// parseOne parses a single literal run or one %...% token. Must not be
// called at end of input.
func (s *scanner) parseOne(stopAtCloseParen bool) (Node, error) {
	if s.peek() != '%' {
		rest := s.input[s.pos:]
		var end int
		if stopAtCloseParen {
			end = strings.IndexAny(rest, "%)")
		} else {
			end = strings.IndexByte(rest, '%')
		}
		if end < 0 {
			end = len(rest)
		}
		s.pos += end
		return Literal(rest[:end]), nil
	}

	// Token: everything between this % and the next one.
	rest := s.input[s.pos+1:]
	closing := strings.IndexByte(rest, '%')
	if closing < 0 {
		return Node{}, &ParseError{Kind: ErrorUnterminatedToken, Template: s.input}
	}
	name := rest[:closing]
	s.pos += closing + 2

	switch strings.ToLower(name) {
	case "fnvar":
		return s.parseTransform(NodeFnVar, "fnvar")
	case "fnbksl":
		return s.parseTransform(NodeFnBackslash, "fnbksl")
	case "fnfile":
		return s.parseTransform(NodeFnFile, "fnfile")
	case "fndir":
		return s.parseTransform(NodeFnDir, "fndir")
	default:
		return Var(name), nil
	}
}

// parseTransform parses the parenthesized argument following a transform
// token and wraps it in the transform node.
func (s *scanner) parseTransform(kind NodeKind, function string) (Node, error) {
	if s.eof() || s.peek() != '(' {
		return Node{}, &ParseError{Kind: ErrorMissingOpenParen, Function: function, Template: s.input}
	}
	s.pos++
	if s.eof() {
		return Node{}, &ParseError{Kind: ErrorMissingCloseParen, Function: function, Template: s.input}
	}
	arg, err := s.parseAll(true)
	if err != nil {
		return Node{}, err
	}
	if s.eof() || s.peek() != ')' {
		return Node{}, &ParseError{Kind: ErrorMissingCloseParen, Function: function, Template: s.input}
	}
	s.pos++
	return Transform(kind, arg), nil
}
