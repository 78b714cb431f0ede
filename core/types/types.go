// Package types holds the value types shared across the srcsrv pipeline:
// the parsed stream sections, the per-path source rows, and the retrieval
// method union returned by resolution.
package types

// Section is one named SRCSRV section with its body lines in document order.
// Sections are kept in encounter order; duplicates are not merged.
type Section struct {
	Name string   // lowercased header keyword ("ini", "variables", "source files", "end")
	Body []string // raw body lines, blank lines excluded
}

// SourceRow is one indexed source file entry: the path exactly as written in
// the stream plus the positional field values that followed it on its line.
// During resolution the path binds to var1 and Fields[i] binds to var(i+2).
type SourceRow struct {
	Path   string
	Fields []string
}

// RetrievalMethod describes how the source text for an indexed path can be
// obtained. Exactly two implementations exist: Download and ExecuteCommand.
type RetrievalMethod interface {
	retrievalMethod()
}

// Download means the source can be fetched directly from URL.
type Download struct {
	URL string
}

// ExecuteCommand means running Command (on a Windows command shell, with Env
// set) is expected to create the source file at TargetPath.
type ExecuteCommand struct {
	Command    string
	TargetPath string

	// Env holds the environment variables from the expanded SRCSRVENV value,
	// nil when the stream defines none.
	Env map[string]string

	// VersionCtrl is the expanded SRCSRVVERCTRL value, empty when undefined.
	VersionCtrl string

	// ErrorPersistenceVersionCtrl groups entries that share a version control
	// endpoint: when a command fails for one entry and its output matches one
	// of the stream's error descriptions, callers should skip commands for
	// all entries with the same value. Empty when the stream defines no
	// SRCSRVERRVAR.
	ErrorPersistenceVersionCtrl string
}

func (Download) retrievalMethod()       {}
func (ExecuteCommand) retrievalMethod() {}
