// Package parser turns a raw srcsrv template string into a small syntax
// tree. Templates are literal text interleaved with %...% tokens; a token
// body is either a variable name or one of the built-in transform functions
// applied to a nested template:
//
//	%targ%\%var2%\%fnfile%(%var1%)
//
// The transform catalog is fixed by the srcsrv language specification, so
// transforms are modeled as node kinds rather than an open dispatch table.
package parser

// NodeKind represents template syntax node types.
type NodeKind uint8

const (
	NodeLiteral  NodeKind = iota // Literal text, no expansion
	NodeVar                      // %name% variable reference
	NodeSequence                 // Concatenation of child nodes

	// Built-in transforms. Each has exactly one child: its argument template.
	NodeFnVar       // %fnvar%(arg): expanded arg names the variable to look up
	NodeFnBackslash // %fnbksl%(arg): forward slashes become backslashes
	NodeFnFile      // %fnfile%(arg): file name component of a path
	NodeFnDir       // %fndir%(arg): directory component of a path
)

func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "literal"
	case NodeVar:
		return "var"
	case NodeSequence:
		return "sequence"
	case NodeFnVar:
		return "fnvar"
	case NodeFnBackslash:
		return "fnbksl"
	case NodeFnFile:
		return "fnfile"
	case NodeFnDir:
		return "fndir"
	default:
		return "unknown"
	}
}

// Node is one template syntax node. Text is the literal text for NodeLiteral
// and the referenced name for NodeVar; Children holds sequence elements for
// NodeSequence and the single argument template for transform nodes.
type Node struct {
	Kind     NodeKind
	Text     string
	Children []Node
}

// Literal builds a literal text node.
func Literal(text string) Node {
	return Node{Kind: NodeLiteral, Text: text}
}

// Var builds a variable reference node.
func Var(name string) Node {
	return Node{Kind: NodeVar, Text: name}
}

// Sequence builds a concatenation node.
func Sequence(children ...Node) Node {
	return Node{Kind: NodeSequence, Children: children}
}

// Transform builds a transform node of the given kind around arg.
func Transform(kind NodeKind, arg Node) Node {
	return Node{Kind: kind, Children: []Node{arg}}
}
