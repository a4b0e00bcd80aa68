package model

import (
	"fmt"

	"github.com/mesh-intelligence/ifcmodel/internal/metrics"
	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// Dereference returns a copy of elt in which every {type, value} shape,
// at any nesting level, is replaced by the engine's resolution of it.
// References become their target express IDs. elt is not modified. A
// record that is itself a {type, value} shape fails with
// types.ErrInvalidArgument; resolve it through the engine instead.
func (h *Handle) Dereference(elt types.Element) (types.Element, error) {
	if !h.open {
		return nil, types.ErrModelNotOpen
	}
	if elt == nil {
		return nil, types.ErrInvalidArgument
	}
	if _, typed := types.AsTypedValue(elt); typed {
		return nil, fmt.Errorf("record is a typed value: %w", types.ErrInvalidArgument)
	}
	out, err := h.resolveValue(elt)
	if err != nil {
		return nil, err
	}
	return asElement(out)
}

// asElement returns v as a record, failing when resolution produced a scalar.
func asElement(v any) (types.Element, error) {
	elt, ok := v.(types.Element)
	if !ok {
		return nil, fmt.Errorf("record resolved to %T: %w", v, types.ErrInvalidArgument)
	}
	return elt, nil
}

func (h *Handle) resolveValue(v any) (any, error) {
	if tv, ok := types.AsTypedValue(v); ok {
		resolved, err := h.engine.ResolveReference(h.modelID, tv)
		h.metrics.EngineCall(metrics.OpResolve, err)
		if err != nil {
			return nil, err
		}
		// Sets resolve to slices that may hold typed values themselves.
		if _, again := types.AsTypedValue(resolved); again {
			return nil, fmt.Errorf("resolved value is still typed: %w", types.ErrInvalidReference)
		}
		return h.resolveValue(resolved)
	}
	return walk(v, h.resolveValue)
}

// DereferenceDeep returns a copy of elt in which references are replaced by
// their target elements, themselves dereferenced, and other typed values by
// their resolved form. A reference back to an element on the current path
// fails with types.ErrCircularReference; nesting beyond the configured
// depth fails with types.ErrMaxDepth. A bare reference resolves to its
// target element; any other bare {type, value} record fails with
// types.ErrInvalidArgument.
func (h *Handle) DereferenceDeep(elt types.Element) (types.Element, error) {
	if !h.open {
		return nil, types.ErrModelNotOpen
	}
	if elt == nil {
		return nil, types.ErrInvalidArgument
	}
	r := &deepResolver{h: h, maxDepth: h.config.DerefDepth(), visited: make(map[int]bool)}
	if id, ok := elt.ExpressID(); ok {
		r.visited[id] = true
	}
	out, err := r.resolve(elt)
	if err != nil {
		return nil, err
	}
	return asElement(out)
}

// deepResolver tracks the reference path for one DereferenceDeep call.
type deepResolver struct {
	h        *Handle
	maxDepth int
	depth    int
	visited  map[int]bool
}

func (r *deepResolver) resolve(v any) (any, error) {
	tv, ok := types.AsTypedValue(v)
	if !ok {
		return walk(v, r.resolve)
	}
	if !tv.IsReference() {
		return r.h.resolveValue(tv)
	}

	id, ok := tv.RefID()
	if !ok {
		return nil, fmt.Errorf("reference value %v: %w", tv.Value, types.ErrInvalidReference)
	}
	if r.visited[id] {
		return nil, fmt.Errorf("line %d: %w", id, types.ErrCircularReference)
	}
	if r.depth >= r.maxDepth {
		return nil, fmt.Errorf("%w (%d) at line %d", types.ErrMaxDepth, r.maxDepth, id)
	}

	target, err := r.h.getLine(id, false)
	if err != nil {
		return nil, err
	}

	r.visited[id] = true
	r.depth++
	defer func() {
		delete(r.visited, id)
		r.depth--
	}()
	return r.resolve(target)
}

// walk rebuilds v, applying fn to each map value and slice element.
// Scalars are returned as they are. A []types.Element whose entries do not
// all resolve to records becomes a []any. Errors from fn are returned
// unchanged.
func walk(v any, fn func(any) (any, error)) (any, error) {
	switch x := v.(type) {
	case types.Element:
		out := make(types.Element, len(x))
		for k, val := range x {
			r, err := fn(val)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			r, err := fn(val)
			if err != nil {
				return nil, err
			}
			out[k] = r
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			r, err := fn(val)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case []types.Element:
		out := make([]any, len(x))
		records := make([]types.Element, len(x))
		allRecords := true
		for i, val := range x {
			r, err := fn(val)
			if err != nil {
				return nil, err
			}
			out[i] = r
			rec, ok := r.(types.Element)
			records[i] = rec
			allRecords = allRecords && ok
		}
		if allRecords {
			return records, nil
		}
		return out, nil
	default:
		return v, nil
	}
}
