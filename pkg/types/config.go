package types

import "errors"

// Config holds engine selection and wrapper behavior for a Model.
type Config struct {
	Engine        string    `json:"engine" yaml:"engine"`
	Flatten       bool      `json:"flatten" yaml:"flatten"`
	MaxDerefDepth int       `json:"max_deref_depth" yaml:"max_deref_depth"`
	Types         TypeTable `json:"-" yaml:"-"`
}

// Supported engine names.
const (
	EngineSnapshot = "snapshot"
)

// DefaultMaxDerefDepth bounds DereferenceDeep when Config.MaxDerefDepth is 0.
const DefaultMaxDerefDepth = 32

// Config validation errors.
var (
	ErrEngineEmpty       = errors.New("engine must not be empty")
	ErrEngineUnknown     = errors.New("unknown engine")
	ErrDerefDepthInvalid = errors.New("max dereference depth must not be negative")
	ErrTypeTableEmpty    = errors.New("type table must not be empty")
)

// knownEngines lists the engines that Validate accepts.
var knownEngines = map[string]bool{
	EngineSnapshot: true,
}

// DefaultConfig returns the configuration used when none is supplied:
// the snapshot engine, flattened lines, and the default type table.
func DefaultConfig() Config {
	return Config{
		Engine:        EngineSnapshot,
		Flatten:       true,
		MaxDerefDepth: DefaultMaxDerefDepth,
		Types:         DefaultTypeTable(),
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Engine == "" {
		return ErrEngineEmpty
	}
	if !knownEngines[c.Engine] {
		return ErrEngineUnknown
	}
	if c.MaxDerefDepth < 0 {
		return ErrDerefDepthInvalid
	}
	if c.Types.Len() == 0 {
		return ErrTypeTableEmpty
	}
	return nil
}

// DerefDepth returns MaxDerefDepth, or DefaultMaxDerefDepth when unset.
func (c Config) DerefDepth() int {
	if c.MaxDerefDepth == 0 {
		return DefaultMaxDerefDepth
	}
	return c.MaxDerefDepth
}
