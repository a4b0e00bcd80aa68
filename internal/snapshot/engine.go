package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// defaultFlattenDepth bounds reference inlining in GetLine.
const defaultFlattenDepth = 16

// Engine implements types.Engine for JSON snapshots.
type Engine struct {
	mu           sync.RWMutex
	initialized  bool
	models       map[int]*parsedModel
	nextID       int
	failLines    map[int]bool
	flattenDepth int
	props        *properties
}

// Option configures an Engine.
type Option func(*Engine)

// WithFailLines makes GetLine fail for the given express IDs in every model.
// It exists to exercise callers' partial-failure handling.
func WithFailLines(ids ...int) Option {
	return func(e *Engine) {
		for _, id := range ids {
			e.failLines[id] = true
		}
	}
}

// WithFlattenDepth sets how many reference levels GetLine inlines when
// flattening (default 16).
func WithFlattenDepth(depth int) Option {
	return func(e *Engine) {
		e.flattenDepth = depth
	}
}

// New creates an Engine. Call Init before OpenModel.
func New(opts ...Option) *Engine {
	e := &Engine{
		models:       make(map[int]*parsedModel),
		failLines:    make(map[int]bool),
		flattenDepth: defaultFlattenDepth,
	}
	e.props = &properties{engine: e}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Init marks the engine ready. Idempotent.
func (e *Engine) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.initialized = true
	return nil
}

// OpenModel parses a snapshot and returns its model ID. IDs start at 1 and
// are never reused.
func (e *Engine) OpenModel(ctx context.Context, data []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	e.mu.RLock()
	ready := e.initialized
	e.mu.RUnlock()
	if !ready {
		return 0, types.ErrEngineNotInitialized
	}

	m, err := parse(data)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.nextID++
	e.models[e.nextID] = m
	return e.nextID, nil
}

// CloseModel releases a model. Returns ErrModelNotFound for unknown IDs.
func (e *Engine) CloseModel(modelID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.models[modelID]; !ok {
		return fmt.Errorf("close model %d: %w", modelID, types.ErrModelNotFound)
	}
	delete(e.models, modelID)
	return nil
}

// Schema returns the schema name recorded in the snapshot.
func (e *Engine) Schema(modelID int) (string, error) {
	m, err := e.model(modelID)
	if err != nil {
		return "", err
	}
	return m.schema, nil
}

// GetLine returns a copy of the line. When flatten is set, references are
// replaced by their target lines up to the flatten depth; references that
// would revisit a line on the current path, or point outside the model,
// are left as they are.
func (e *Engine) GetLine(modelID, expressID int, flatten bool) (types.Element, error) {
	m, err := e.model(modelID)
	if err != nil {
		return nil, err
	}
	if e.failLines[expressID] {
		return nil, fmt.Errorf("line %d: injected failure: %w", expressID, types.ErrLineNotFound)
	}
	line, ok := m.lines[expressID]
	if !ok {
		return nil, fmt.Errorf("line %d: %w", expressID, types.ErrLineNotFound)
	}
	if !flatten {
		return line.Clone(), nil
	}
	f := &flattener{model: m, maxDepth: e.flattenDepth, onPath: map[int]bool{expressID: true}}
	return f.value(line, 0).(types.Element), nil
}

// GetAllLines returns every express ID in document order.
func (e *Engine) GetAllLines(modelID int) ([]int, error) {
	m, err := e.model(modelID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(m.order))
	copy(ids, m.order)
	return ids, nil
}

// GetLineIDsWithType returns the express IDs of lines with the given type
// code in document order.
func (e *Engine) GetLineIDsWithType(modelID int, typeCode uint32) ([]int, error) {
	m, err := e.model(modelID)
	if err != nil {
		return nil, err
	}
	var ids []int
	for _, id := range m.order {
		if code, _ := m.lines[id].TypeCode(); code == typeCode {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ResolveReference returns the plain value of ref. References resolve to
// their target express ID, which must exist in the model.
func (e *Engine) ResolveReference(modelID int, ref types.TypedValue) (any, error) {
	m, err := e.model(modelID)
	if err != nil {
		return nil, err
	}
	if !ref.IsReference() {
		return ref.Value, nil
	}
	id, ok := ref.RefID()
	if !ok {
		return nil, fmt.Errorf("reference value %v: %w", ref.Value, types.ErrInvalidReference)
	}
	if _, ok := m.lines[id]; !ok {
		return nil, fmt.Errorf("reference to line %d: %w", id, types.ErrLineNotFound)
	}
	return id, nil
}

// Properties returns the property accessor.
func (e *Engine) Properties() types.PropertyAccessor {
	return e.props
}

func (e *Engine) model(modelID int) (*parsedModel, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.models[modelID]
	if !ok {
		return nil, fmt.Errorf("model %d: %w", modelID, types.ErrModelNotFound)
	}
	return m, nil
}

// flattener inlines references for one GetLine call.
type flattener struct {
	model    *parsedModel
	maxDepth int
	onPath   map[int]bool
}

func (f *flattener) value(v any, depth int) any {
	if tv, ok := types.AsTypedValue(v); ok && tv.IsReference() {
		id, ok := tv.RefID()
		target, exists := f.model.lines[id]
		if !ok || !exists || f.onPath[id] || depth >= f.maxDepth {
			return types.Element{"type": tv.Type, "value": tv.Value}
		}
		f.onPath[id] = true
		defer delete(f.onPath, id)
		return f.value(target, depth+1)
	}

	switch x := v.(type) {
	case types.Element:
		out := make(types.Element, len(x))
		for k, val := range x {
			out[k] = f.value(val, depth)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = f.value(val, depth)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = f.value(val, depth)
		}
		return out
	default:
		return v
	}
}
