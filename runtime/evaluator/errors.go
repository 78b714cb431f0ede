package evaluator

import "fmt"

// ErrorKind represents the categories of substitution failures.
type ErrorKind int

const (
	UnknownVariable     ErrorKind = iota // referenced name has no binding and no template
	SubstitutionCycle                    // variable expansion re-entered itself
	SubstitutionTooDeep                  // recursion exceeded MaxDepth
)

// EvalError reports a failed expansion. Var names the offending variable for
// UnknownVariable and SubstitutionCycle; it is empty for SubstitutionTooDeep.
type EvalError struct {
	Kind ErrorKind
	Var  string
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case UnknownVariable:
		return fmt.Sprintf("unknown variable %q", e.Var)
	case SubstitutionCycle:
		return fmt.Sprintf("substitution cycle while expanding %q", e.Var)
	case SubstitutionTooDeep:
		return fmt.Sprintf("substitution exceeded depth limit (%d)", MaxDepth)
	default:
		return "substitution failed"
	}
}
