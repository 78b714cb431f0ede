// Package evaluator expands srcsrv templates against a per-query variable
// environment.
//
// An Env is built once per resolution query: the stream's default templates
// (shared, read-only) overlaid with the query's concrete bindings (var1..varN
// from the matched source row, targ from the caller). Expansion is recursive
// with memoization: once a variable resolves, its value is recorded in the
// environment and reused by later references in the same query. Environments
// are never shared between queries.
//
// Expansion either produces a fully resolved string or fails with a typed
// EvalError; partial results are never returned.
package evaluator

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/srcsrv/runtime/parser"
)

// MaxDepth caps total expansion recursion. Cycles are caught separately by
// the active-expansion set, so this only trips on pathological non-cyclic
// nesting in hostile streams.
const MaxDepth = 256

// Env is the variable environment for one resolution query.
type Env struct {
	templates map[string]parser.Node // lowercased name -> parsed default template
	values    map[string]string      // lowercased name -> resolved value
}

// NewEnv creates an environment over the given default templates. The
// template map is read, never written; it may be shared across concurrent
// queries.
func NewEnv(templates map[string]parser.Node) *Env {
	return &Env{
		templates: templates,
		values:    make(map[string]string),
	}
}

// Bind sets a concrete value for name. Bound values shadow any default
// template of the same name.
func (e *Env) Bind(name, value string) {
	e.values[strings.ToLower(name)] = value
}

// Value returns the already-resolved value for name, without triggering any
// expansion.
func (e *Env) Value(name string) (string, bool) {
	v, ok := e.values[strings.ToLower(name)]
	return v, ok
}

// Eval resolves the variable name to a plain string, expanding its template
// (and transitively everything it references) as needed.
func (e *Env) Eval(name string) (string, error) {
	x := &expansion{env: e, active: make(map[string]bool)}
	return x.evalVar(name)
}

// Expand expands a standalone template node against the environment.
func (e *Env) Expand(node parser.Node) (string, error) {
	x := &expansion{env: e, active: make(map[string]bool)}
	return x.expand(node)
}

// expansion threads the recursion guards through one Eval/Expand call:
// active is the set of variable names currently being expanded on the call
// stack, depth the total nesting.
type expansion struct {
	env    *Env
	active map[string]bool
	depth  int
}

func (x *expansion) evalVar(name string) (string, error) {
	name = strings.ToLower(name)
	if v, ok := x.env.values[name]; ok {
		return v, nil
	}
	if x.active[name] {
		return "", &EvalError{Kind: SubstitutionCycle, Var: name}
	}
	node, ok := x.env.templates[name]
	if !ok {
		return "", &EvalError{Kind: UnknownVariable, Var: name}
	}

	x.active[name] = true
	val, err := x.expand(node)
	delete(x.active, name)
	if err != nil {
		return "", err
	}

	x.env.values[name] = val
	return val, nil
}

func (x *expansion) expand(node parser.Node) (string, error) {
	x.depth++
	defer func() { x.depth-- }()
	if x.depth > MaxDepth {
		return "", &EvalError{Kind: SubstitutionTooDeep}
	}

	switch node.Kind {
	case parser.NodeLiteral:
		return node.Text, nil

	case parser.NodeVar:
		return x.evalVar(node.Text)

	case parser.NodeSequence:
		var sb strings.Builder
		for _, child := range node.Children {
			v, err := x.expand(child)
			if err != nil {
				return "", err
			}
			sb.WriteString(v)
		}
		return sb.String(), nil

	case parser.NodeFnVar:
		name, err := x.expand(node.Children[0])
		if err != nil {
			return "", err
		}
		return x.evalVar(name)

	case parser.NodeFnBackslash:
		v, err := x.expand(node.Children[0])
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(v, "/", `\`), nil

	case parser.NodeFnFile:
		v, err := x.expand(node.Children[0])
		if err != nil {
			return "", err
		}
		if i := strings.LastIndexByte(v, '\\'); i >= 0 {
			return v[i+1:], nil
		}
		return v, nil

	case parser.NodeFnDir:
		v, err := x.expand(node.Children[0])
		if err != nil {
			return "", err
		}
		if i := strings.LastIndexByte(v, '\\'); i >= 0 {
			return v[:i], nil
		}
		return "", nil

	default:
		return "", fmt.Errorf("unknown template node kind %d", node.Kind)
	}
}
