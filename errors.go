package srcsrv

import "errors"

var (
	// ErrMalformedStream means the input contains no recognizable SRCSRV
	// section markers (or is truncated before the end marker); it is not a
	// usable source-indexing stream.
	ErrMalformedStream = errors.New("srcsrv: malformed stream")

	// ErrPathNotIndexed means the queried path has no row in the source
	// files section. This is a normal outcome for paths the stream does not
	// index, not a defect in the stream.
	ErrPathNotIndexed = errors.New("srcsrv: path not indexed")

	// ErrMissingTargetTemplate means the stream defines no SRCSRVTRG
	// variable, so no retrieval target can be computed for any path.
	ErrMissingTargetTemplate = errors.New("srcsrv: no target template (SRCSRVTRG) defined")

	// ErrNoRetrievalMethod means the expanded target is a local path but the
	// stream defines no command template to produce it; the entry is not
	// actionable.
	ErrNoRetrievalMethod = errors.New("srcsrv: local target with no command template")
)
