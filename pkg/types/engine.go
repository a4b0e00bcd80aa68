package types

import "context"

// Engine is the parsing engine a Model wraps. All schema parsing, geometry,
// and property-set resolution happen behind this interface; the Model only
// marshals identifiers and reshapes results.
type Engine interface {
	// Init prepares the engine. It is called before every OpenModel and
	// must be safe to call more than once.
	Init(ctx context.Context) error

	// OpenModel parses data and returns an opaque model ID valid until
	// CloseModel. Returns an error wrapping ErrParse for malformed data.
	OpenModel(ctx context.Context, data []byte) (int, error)

	// GetLine returns the line with the given express ID. When flatten is
	// set, references are inlined as the target lines.
	GetLine(modelID, expressID int, flatten bool) (Element, error)

	// GetAllLines returns every express ID in the model in engine order.
	GetAllLines(modelID int) ([]int, error)

	// GetLineIDsWithType returns the express IDs of lines whose type code
	// matches, in engine order.
	GetLineIDsWithType(modelID int, typeCode uint32) ([]int, error)

	// ResolveReference returns the resolved form of a typed value. For a
	// reference this is the target express ID.
	ResolveReference(modelID int, ref TypedValue) (any, error)

	// CloseModel releases the model.
	CloseModel(modelID int) error

	// Properties returns the property sub-interface.
	Properties() PropertyAccessor
}

// PropertyAccessor resolves element property graphs.
type PropertyAccessor interface {
	// ItemProperties returns the element's properties. When recursive is
	// set, nested references are resolved transitively.
	ItemProperties(ctx context.Context, modelID, expressID int, recursive bool) (Element, error)

	// PropertySets returns the property sets attached to the element.
	PropertySets(ctx context.Context, modelID, expressID int, recursive bool) ([]Element, error)
}
