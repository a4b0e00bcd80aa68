// Package model implements types.Model as a façade over a types.Engine.
// A Handle owns one engine instance and, while open, one model ID. It adds
// argument checks, type-name lookup, reference walking, and partial-failure
// handling for full enumeration; everything else is forwarded to the
// engine and engine errors are returned unchanged.
package model

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/mesh-intelligence/ifcmodel/internal/metrics"
	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

var _ types.Model = (*Handle)(nil)

// Handle is a stateful façade over one opened model. It is not safe for
// concurrent use.
type Handle struct {
	engine  types.Engine
	config  types.Config
	logger  logr.Logger
	metrics *metrics.Recorder

	open    bool
	modelID int
}

// Option configures a Handle.
type Option func(*Handle)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger logr.Logger) Option {
	return func(h *Handle) {
		h.logger = logger
	}
}

// WithMetrics records engine calls and enumeration outcomes on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(h *Handle) {
		h.metrics = r
	}
}

// New creates a Handle with no open model. It returns the config's
// validation error if config is not well-formed.
func New(engine types.Engine, config types.Config, opts ...Option) (*Handle, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	h := &Handle{
		engine: engine,
		config: config,
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Open initializes the engine and parses data. Parse failures are the
// engine's errors, returned unchanged.
func (h *Handle) Open(ctx context.Context, data []byte) (bool, error) {
	if h.open {
		return false, types.ErrModelAlreadyOpen
	}
	if err := h.engine.Init(ctx); err != nil {
		return false, err
	}
	id, err := h.engine.OpenModel(ctx, data)
	h.metrics.EngineCall(metrics.OpOpen, err)
	if err != nil {
		return false, err
	}
	h.modelID = id
	h.open = true
	h.logger.V(1).Info("opened model", "modelID", id, "bytes", len(data))
	return true, nil
}

// IsOpen reports whether a model is open.
func (h *Handle) IsOpen() bool {
	return h.open
}

// ModelID returns the engine's ID for the open model.
func (h *Handle) ModelID() (int, error) {
	if !h.open {
		return 0, types.ErrModelNotOpen
	}
	return h.modelID, nil
}

// Properties returns the engine's property accessor.
func (h *Handle) Properties() types.PropertyAccessor {
	return h.engine.Properties()
}

// Config returns the handle's configuration.
func (h *Handle) Config() types.Config {
	return h.config
}

// GetElement returns the line with the given express ID, flattened when the
// config says so.
func (h *Handle) GetElement(id int) (types.Element, error) {
	if err := h.check(id); err != nil {
		return nil, err
	}
	return h.getLine(id, h.config.Flatten)
}

// GetElementProperties returns the element's properties from the engine's
// property resolver.
func (h *Handle) GetElementProperties(ctx context.Context, id int, recursive bool) (types.Element, error) {
	if err := h.check(id); err != nil {
		return nil, err
	}
	props, err := h.engine.Properties().ItemProperties(ctx, h.modelID, id, recursive)
	h.metrics.EngineCall(metrics.OpItemProps, err)
	if err != nil {
		return nil, err
	}
	return props, nil
}

// GetElementPropertiesAndSets returns the element's properties with its
// property sets under types.KeyPsets. Either call failing fails the whole
// operation.
func (h *Handle) GetElementPropertiesAndSets(ctx context.Context, id int, recursive bool) (types.Element, error) {
	props, err := h.GetElementProperties(ctx, id, recursive)
	if err != nil {
		return nil, err
	}
	psets, err := h.engine.Properties().PropertySets(ctx, h.modelID, id, recursive)
	h.metrics.EngineCall(metrics.OpPropertySets, err)
	if err != nil {
		return nil, err
	}
	if psets == nil {
		psets = []types.Element{}
	}
	props[types.KeyPsets] = psets
	return props, nil
}

// GetAllElements loads every line the engine reports. Indices 1 through the
// line count are visited in order. An index that holds no ID, or whose line
// fails to load, is logged and recorded in the result; the rest of the
// enumeration proceeds.
func (h *Handle) GetAllElements() (*types.EnumerationResult, error) {
	if !h.open {
		return nil, types.ErrModelNotOpen
	}
	lines, err := h.engine.GetAllLines(h.modelID)
	h.metrics.EngineCall(metrics.OpGetAllLines, err)
	if err != nil {
		return nil, err
	}

	res := &types.EnumerationResult{Elements: make(map[int]types.Element, len(lines))}
	for i := 1; i <= len(lines); i++ {
		if err := h.saveElement(res, i, lines[i-1]); err != nil {
			h.logger.Error(err, "skipping line", "index", i)
			res.Errors = append(res.Errors, err)
			res.Skipped++
		}
	}
	h.metrics.Enumerated(len(res.Elements), res.Skipped)
	return res, nil
}

func (h *Handle) saveElement(res *types.EnumerationResult, index, id int) *types.IndexError {
	if id <= 0 {
		return &types.IndexError{Index: index, Err: types.ErrLineNotFound}
	}
	elt, err := h.getLine(id, false)
	if err != nil {
		return &types.IndexError{Index: index, ExpressID: id, Err: err}
	}
	h.attachTypeName(elt)
	res.Elements[id] = elt
	return nil
}

// attachTypeName labels elt with the entity name for its type code.
func (h *Handle) attachTypeName(elt types.Element) {
	code, ok := elt.TypeCode()
	if !ok {
		return
	}
	if name, ok := h.config.Types.Name(code); ok {
		elt[types.KeyTypeName] = name
	}
}

// GetElementsOfType returns the elements whose type matches typeName, in
// the engine's order. Any line failing to load fails the call.
func (h *Handle) GetElementsOfType(typeName string) ([]types.Element, error) {
	code, ok := h.config.Types.Code(typeName)
	if !ok {
		return nil, &UnknownTypeError{Name: typeName}
	}
	if !h.open {
		return nil, types.ErrModelNotOpen
	}
	ids, err := h.engine.GetLineIDsWithType(h.modelID, code)
	h.metrics.EngineCall(metrics.OpLinesWithType, err)
	if err != nil {
		return nil, err
	}
	elts := make([]types.Element, 0, len(ids))
	for _, id := range ids {
		elt, err := h.getLine(id, false)
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return elts, nil
}

// Close releases the model. Idempotent.
func (h *Handle) Close() error {
	if !h.open {
		return nil
	}
	err := h.engine.CloseModel(h.modelID)
	h.metrics.EngineCall(metrics.OpClose, err)
	h.open = false
	h.modelID = 0
	if err != nil {
		return err
	}
	h.logger.V(1).Info("closed model")
	return nil
}

// check validates that the handle is open and id is usable.
func (h *Handle) check(id int) error {
	if id <= 0 {
		return types.ErrInvalidArgument
	}
	if !h.open {
		return types.ErrModelNotOpen
	}
	return nil
}

func (h *Handle) getLine(id int, flatten bool) (types.Element, error) {
	elt, err := h.engine.GetLine(h.modelID, id, flatten)
	h.metrics.EngineCall(metrics.OpGetLine, err)
	return elt, err
}
