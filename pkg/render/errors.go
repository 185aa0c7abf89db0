package render

import "errors"

var ErrMissingField = errors.New("missing required field")
var ErrUnknownType = errors.New("cannot find type")
var ErrInvalidOptions = errors.New("options must be a list or a mapping")
var ErrConflictingFlags = errors.New("--skip-sheet breaks --sheet-only")
var ErrPapyrusFailed = errors.New("PapyrusCs exited")
var ErrPapyrusNotStarted = errors.New("cannot start PapyrusCs")
