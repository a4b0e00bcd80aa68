package types

import "errors"

// Model lifecycle errors.
var (
	ErrModelNotOpen     = errors.New("model is not open")
	ErrModelAlreadyOpen = errors.New("model is already open")
)

// Operation errors.
var (
	ErrInvalidArgument   = errors.New("invalid argument: must provide an express ID")
	ErrUnknownType       = errors.New("unknown type name")
	ErrCircularReference = errors.New("circular reference")
	ErrMaxDepth          = errors.New("maximum dereference depth exceeded")
)

// Engine errors. Engines wrap these so callers can test with errors.Is.
var (
	ErrParse                = errors.New("model data could not be parsed")
	ErrEngineNotInitialized = errors.New("engine is not initialized")
	ErrModelNotFound        = errors.New("model not found")
	ErrLineNotFound         = errors.New("line not in model")
	ErrInvalidReference     = errors.New("invalid typed reference")
)

// ErrNoDataSection is returned when raw STEP data has no DATA; marker.
var ErrNoDataSection = errors.New(`IFC file has no section marked "DATA;"`)

// Type table errors.
var (
	ErrInvalidTypeName   = errors.New("type name must not be empty")
	ErrDuplicateTypeCode = errors.New("type code mapped more than once")
)
