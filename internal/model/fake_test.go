package model

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// fakeEngine is a programmable types.Engine for handle tests.
type fakeEngine struct {
	lines     map[int]types.Element
	order     []int // returned by GetAllLines; may hold IDs with no line
	openErr   error
	psetsErr  error
	closeErr  error
	failLines map[int]error

	inits    int
	opens    int
	closed   []int
	resolved []types.TypedValue
	modelID  int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		lines: map[int]types.Element{
			1: {"expressID": 1, "type": 103090709, "Name": types.TypedValue{Type: types.KindString, Value: "Demo"}},
			2: {"expressID": 2, "type": 1207048766},
			3: {"expressID": 3, "type": 2391406946, "OwnerHistory": map[string]any{"type": 5, "value": 2}},
			4: {"expressID": 4, "type": 2391406946, "OwnerHistory": map[string]any{"type": 5, "value": 2}},
			5: {"expressID": 5, "type": 77},
		},
		order:     []int{1, 2, 3, 4, 5},
		failLines: map[int]error{},
		modelID:   41,
	}
}

func (f *fakeEngine) Init(ctx context.Context) error {
	f.inits++
	return nil
}

func (f *fakeEngine) OpenModel(ctx context.Context, data []byte) (int, error) {
	f.opens++
	if f.openErr != nil {
		return 0, f.openErr
	}
	f.modelID++
	return f.modelID, nil
}

func (f *fakeEngine) checkModel(modelID int) error {
	if modelID != f.modelID {
		return types.ErrModelNotFound
	}
	for _, c := range f.closed {
		if c == modelID {
			return types.ErrModelNotFound
		}
	}
	return nil
}

func (f *fakeEngine) GetLine(modelID, expressID int, flatten bool) (types.Element, error) {
	if err := f.checkModel(modelID); err != nil {
		return nil, err
	}
	if err, ok := f.failLines[expressID]; ok {
		return nil, err
	}
	line, ok := f.lines[expressID]
	if !ok {
		return nil, fmt.Errorf("line %d: %w", expressID, types.ErrLineNotFound)
	}
	out := line.Clone()
	if flatten {
		out["flattened"] = true
	}
	return out, nil
}

func (f *fakeEngine) GetAllLines(modelID int) ([]int, error) {
	if err := f.checkModel(modelID); err != nil {
		return nil, err
	}
	return append([]int(nil), f.order...), nil
}

func (f *fakeEngine) GetLineIDsWithType(modelID int, typeCode uint32) ([]int, error) {
	if err := f.checkModel(modelID); err != nil {
		return nil, err
	}
	var ids []int
	for _, id := range f.order {
		if line, ok := f.lines[id]; ok {
			if code, _ := line.TypeCode(); code == typeCode {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (f *fakeEngine) ResolveReference(modelID int, ref types.TypedValue) (any, error) {
	if err := f.checkModel(modelID); err != nil {
		return nil, err
	}
	f.resolved = append(f.resolved, ref)
	if ref.IsReference() {
		id, _ := ref.RefID()
		if _, ok := f.lines[id]; !ok {
			return nil, types.ErrLineNotFound
		}
		return id, nil
	}
	return ref.Value, nil
}

func (f *fakeEngine) CloseModel(modelID int) error {
	if err := f.checkModel(modelID); err != nil {
		return err
	}
	f.closed = append(f.closed, modelID)
	return f.closeErr
}

func (f *fakeEngine) Properties() types.PropertyAccessor {
	return fakeProps{f}
}

type fakeProps struct {
	f *fakeEngine
}

func (p fakeProps) ItemProperties(ctx context.Context, modelID, expressID int, recursive bool) (types.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	elt, err := p.f.GetLine(modelID, expressID, false)
	if err != nil {
		return nil, err
	}
	elt["recursive"] = recursive
	return elt, nil
}

func (p fakeProps) PropertySets(ctx context.Context, modelID, expressID int, recursive bool) ([]types.Element, error) {
	if p.f.psetsErr != nil {
		return nil, p.f.psetsErr
	}
	if expressID != 3 {
		return nil, nil
	}
	return []types.Element{{"expressID": 90, "Name": "Pset_WallCommon"}}, nil
}

var errBoom = errors.New("boom")
