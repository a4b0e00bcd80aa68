package types

import (
	"context"
	"fmt"
)

// Model is a façade over one opened model instance. Callers open raw model
// bytes, read elements, and close when done. A Model is not safe for
// concurrent use; callers serialize access.
type Model interface {
	// Open parses data through the engine. Returns ErrModelAlreadyOpen if a
	// model is already open; engine errors are returned unchanged.
	Open(ctx context.Context, data []byte) (bool, error)

	// GetElement returns the element with the given express ID.
	// Returns ErrInvalidArgument if id is not positive.
	GetElement(id int) (Element, error)

	// GetElementProperties returns the element's properties, resolving
	// nested references when recursive is set.
	GetElementProperties(ctx context.Context, id int, recursive bool) (Element, error)

	// GetElementPropertiesAndSets is GetElementProperties with the
	// element's property sets merged under KeyPsets.
	GetElementPropertiesAndSets(ctx context.Context, id int, recursive bool) (Element, error)

	// GetAllElements enumerates every line. Lines that fail to load are
	// skipped and reported in the result rather than failing the call.
	GetAllElements() (*EnumerationResult, error)

	// GetElementsOfType returns the elements with the named type in engine
	// order. Returns ErrUnknownType if the name is not in the type table.
	GetElementsOfType(typeName string) ([]Element, error)

	// Dereference returns a copy of elt with every typed value replaced by
	// its resolved form.
	Dereference(elt Element) (Element, error)

	// DereferenceDeep returns a copy of elt with references replaced by
	// their target elements, recursively.
	DereferenceDeep(elt Element) (Element, error)

	// Close releases the model. Idempotent. After Close, operations return
	// ErrModelNotOpen.
	Close() error
}

// EnumerationResult is the output of Model.GetAllElements.
type EnumerationResult struct {
	// Elements maps express ID to element.
	Elements map[int]Element
	// Skipped counts line indices that were not loaded.
	Skipped int
	// Errors holds one entry per skipped index.
	Errors []*IndexError
}

// IndexError records why a line index was skipped during enumeration.
type IndexError struct {
	Index     int // 1-based position in the engine's line sequence
	ExpressID int // 0 when the index held no ID
	Err       error
}

func (e *IndexError) Error() string {
	if e.ExpressID == 0 {
		return fmt.Sprintf("line index(%d): %v", e.Index, e.Err)
	}
	return fmt.Sprintf("line index(%d) express ID %d: %v", e.Index, e.ExpressID, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}
