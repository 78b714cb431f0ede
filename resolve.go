package srcsrv

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/srcsrv/core/types"
	"github.com/aledsdavies/srcsrv/runtime/evaluator"
)

// envSeparator delimits k=v pairs in the expanded SRCSRVENV value.
const envSeparator = "\x08"

// Resolve looks up path in the source files table and reports how its source
// text can be obtained. cacheRoot is the caller's local extraction directory,
// bound to the %targ% variable during expansion; it should not end in a
// separator.
//
// The expanded SRCSRVTRG value classifies the result: a URL-shaped target
// (http, https or ftp scheme) yields Download, and any command template is
// ignored. A local-path target yields ExecuteCommand when the stream defines
// SRCSRVCMD, and ErrNoRetrievalMethod when it does not.
//
// Errors: ErrPathNotIndexed when the path has no row (a normal outcome for
// unindexed paths), ErrMissingTargetTemplate when the stream defines no
// SRCSRVTRG, and evaluator.EvalError when template expansion fails. There is
// no fallback: an expansion failure fails the whole resolution.
func (s *Stream) Resolve(path, cacheRoot string) (types.RetrievalMethod, error) {
	row, ok := s.rows[normalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPathNotIndexed, path)
	}

	// Per-query environment: defaults overlaid with the row bindings. var1
	// is the path exactly as written in the stream, so resolution does not
	// depend on how the caller spelled the query.
	env := evaluator.NewEnv(s.templates)
	env.Bind("var1", row.Path)
	for i, field := range row.Fields {
		env.Bind(fmt.Sprintf("var%d", i+2), field)
	}

	// The error-persistence value is the raw row binding named by
	// SRCSRVERRVAR (typically "var2"), read before any expansion happens.
	var errPersist string
	if errVar, ok := s.rawVars[varErrVar]; ok {
		errPersist, _ = env.Value(errVar)
	}

	env.Bind("targ", cacheRoot)

	if _, ok := s.templates[varTarget]; !ok {
		return nil, ErrMissingTargetTemplate
	}
	target, err := env.Eval(varTarget)
	if err != nil {
		return nil, err
	}

	if isURL(target) {
		return types.Download{URL: target}, nil
	}

	if _, ok := s.templates[varCommand]; !ok {
		return nil, fmt.Errorf("%w: target %q", ErrNoRetrievalMethod, target)
	}
	command, err := env.Eval(varCommand)
	if err != nil {
		return nil, err
	}

	method := types.ExecuteCommand{
		Command:                     command,
		TargetPath:                  target,
		ErrorPersistenceVersionCtrl: errPersist,
	}
	if _, ok := s.templates[varCommandEnv]; ok {
		raw, err := env.Eval(varCommandEnv)
		if err != nil {
			return nil, err
		}
		method.Env = parseCommandEnv(raw)
	}
	if _, ok := s.templates[varVersionCtrl]; ok {
		v, err := env.Eval(varVersionCtrl)
		if err != nil {
			return nil, err
		}
		method.VersionCtrl = v
	}

	return method, nil
}

// isURL reports whether the expanded target names a downloadable resource.
// Scheme matching is case-insensitive.
func isURL(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "ftp://")
}

// parseCommandEnv splits an expanded SRCSRVENV value into environment
// variables. Pairs are separated by a backspace character; entries without
// '=' are dropped.
func parseCommandEnv(raw string) map[string]string {
	env := make(map[string]string)
	for _, pair := range strings.Split(raw, envSeparator) {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		env[name] = value
	}
	return env
}
