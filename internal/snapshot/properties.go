package snapshot

import (
	"context"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// properties implements types.PropertyAccessor over snapshot lines.
type properties struct {
	engine *Engine
}

// ItemProperties returns the line, flattened when recursive is set.
func (p *properties) ItemProperties(ctx context.Context, modelID, expressID int, recursive bool) (types.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.engine.GetLine(modelID, expressID, recursive)
}

// PropertySets returns the IfcPropertySet lines that IfcRelDefinesByProperties
// relationships attach to expressID, in document order.
func (p *properties) PropertySets(ctx context.Context, modelID, expressID int, recursive bool) ([]types.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := p.engine.model(modelID)
	if err != nil {
		return nil, err
	}

	var psets []types.Element
	for _, id := range m.order {
		rel := m.lines[id]
		if code, _ := rel.TypeCode(); code != types.TypeIfcRelDefinesByProperties {
			continue
		}
		if !relates(rel["RelatedObjects"], expressID) {
			continue
		}
		def, ok := types.AsTypedValue(rel["RelatingPropertyDefinition"])
		if !ok {
			continue
		}
		defID, ok := def.RefID()
		if !ok {
			continue
		}
		target, ok := m.lines[defID]
		if !ok {
			continue
		}
		if code, _ := target.TypeCode(); code != types.TypeIfcPropertySet {
			continue
		}
		pset, err := p.engine.GetLine(modelID, defID, recursive)
		if err != nil {
			return nil, err
		}
		psets = append(psets, pset)
	}
	return psets, nil
}

// relates reports whether the RelatedObjects value references expressID.
func relates(v any, expressID int) bool {
	objs, ok := v.([]any)
	if !ok {
		if tv, ok := types.AsTypedValue(v); ok && tv.Type == types.KindSet {
			objs, _ = tv.Value.([]any)
		}
	}
	for _, obj := range objs {
		tv, ok := types.AsTypedValue(obj)
		if !ok {
			continue
		}
		if id, ok := tv.RefID(); ok && id == expressID {
			return true
		}
	}
	return false
}
