package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

const (
	codeWall = 2391406946
	codeDoor = 395920057
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "wall.json"))
	require.NoError(t, err)
	return data
}

// openFixture returns an initialized engine with the fixture open.
func openFixture(t *testing.T, opts ...Option) (*Engine, int) {
	t.Helper()
	e := New(opts...)
	require.NoError(t, e.Init(context.Background()))
	id, err := e.OpenModel(context.Background(), readFixture(t))
	require.NoError(t, err)
	return e, id
}

func TestOpenModelRequiresInit(t *testing.T) {
	e := New()
	_, err := e.OpenModel(context.Background(), readFixture(t))
	assert.ErrorIs(t, err, types.ErrEngineNotInitialized)
}

func TestOpenModelParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"not json", "ISO-10303-21;"},
		{"no lines", `{"schema": "IFC4"}`},
		{"line not object", `{"lines": [1]}`},
		{"missing expressID", `{"lines": [{"type": 1}]}`},
		{"zero expressID", `{"lines": [{"expressID": 0, "type": 1}]}`},
		{"missing type", `{"lines": [{"expressID": 1}]}`},
		{"duplicate", `{"lines": [{"expressID": 1, "type": 1}, {"expressID": 1, "type": 2}]}`},
	}
	e := New()
	require.NoError(t, e.Init(context.Background()))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.OpenModel(context.Background(), []byte(tc.data))
			assert.ErrorIs(t, err, types.ErrParse)
		})
	}
}

func TestOpenModelAllocatesDistinctIDs(t *testing.T) {
	e, first := openFixture(t)
	second, err := e.OpenModel(context.Background(), readFixture(t))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	require.NoError(t, e.CloseModel(first))
	_, err = e.GetLine(second, 3, false)
	assert.NoError(t, err, "closing one model must not affect another")
}

func TestOpenModelHonorsContext(t *testing.T) {
	e := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Init(ctx), context.Canceled)
	_, err := e.OpenModel(ctx, readFixture(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchema(t *testing.T) {
	e, id := openFixture(t)
	schema, err := e.Schema(id)
	require.NoError(t, err)
	assert.Equal(t, "IFC4", schema)
}

func TestGetLineRaw(t *testing.T) {
	e, id := openFixture(t)
	line, err := e.GetLine(id, 3, false)
	require.NoError(t, err)

	want := types.Element{
		"expressID":    3,
		"type":         codeWall,
		"Name":         types.Element{"type": 1, "value": "Wall A"},
		"OwnerHistory": types.Element{"type": 5, "value": 2},
	}
	if diff := cmp.Diff(want, line); diff != "" {
		t.Errorf("GetLine mismatch (-want +got):\n%s", diff)
	}

	// The returned line is a copy.
	line["Name"].(types.Element)["value"] = "changed"
	again, err := e.GetLine(id, 3, false)
	require.NoError(t, err)
	assert.Equal(t, "Wall A", again["Name"].(types.Element)["value"])
}

func TestGetLineFlattened(t *testing.T) {
	e, id := openFixture(t)
	line, err := e.GetLine(id, 8, true)
	require.NoError(t, err)

	host, ok := line["Host"].(types.Element)
	require.True(t, ok, "Host should be inlined, got %T", line["Host"])
	assert.Equal(t, 3, host["expressID"])

	owner, ok := host["OwnerHistory"].(types.Element)
	require.True(t, ok)
	assert.Equal(t, 1700000000, owner["CreationDate"])
}

func TestGetLineFlattenDepth(t *testing.T) {
	e, id := openFixture(t, WithFlattenDepth(1))
	line, err := e.GetLine(id, 8, true)
	require.NoError(t, err)

	host := line["Host"].(types.Element)
	_, isRef := types.AsTypedValue(host["OwnerHistory"])
	assert.True(t, isRef, "second-level reference should stay unresolved")
}

func TestGetLineFlattenStopsOnCycles(t *testing.T) {
	data := []byte(`{"lines": [
		{"expressID": 1, "type": 10, "Next": {"type": 5, "value": 2}},
		{"expressID": 2, "type": 10, "Next": {"type": 5, "value": 1}}
	]}`)
	e := New()
	require.NoError(t, e.Init(context.Background()))
	id, err := e.OpenModel(context.Background(), data)
	require.NoError(t, err)

	line, err := e.GetLine(id, 1, true)
	require.NoError(t, err)
	next := line["Next"].(types.Element)
	assert.Equal(t, 2, next["expressID"])
	back, ok := types.AsTypedValue(next["Next"])
	require.True(t, ok)
	assert.Equal(t, types.TypedValue{Type: types.KindReference, Value: 1}, back)
}

func TestGetLineErrors(t *testing.T) {
	e, id := openFixture(t, WithFailLines(4))

	_, err := e.GetLine(id, 99, false)
	assert.ErrorIs(t, err, types.ErrLineNotFound)

	_, err = e.GetLine(id, 4, false)
	assert.ErrorIs(t, err, types.ErrLineNotFound)

	_, err = e.GetLine(id+1, 3, false)
	assert.ErrorIs(t, err, types.ErrModelNotFound)
}

func TestGetAllLines(t *testing.T) {
	e, id := openFixture(t)
	ids, err := e.GetAllLines(id)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids)

	ids[0] = 42
	again, _ := e.GetAllLines(id)
	assert.Equal(t, 1, again[0])
}

func TestGetLineIDsWithType(t *testing.T) {
	e, id := openFixture(t)

	walls, err := e.GetLineIDsWithType(id, codeWall)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, walls)

	doors, err := e.GetLineIDsWithType(id, codeDoor)
	require.NoError(t, err)
	assert.Equal(t, []int{8}, doors)

	none, err := e.GetLineIDsWithType(id, 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestResolveReference(t *testing.T) {
	e, id := openFixture(t)

	v, err := e.ResolveReference(id, types.TypedValue{Type: types.KindReference, Value: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = e.ResolveReference(id, types.TypedValue{Type: types.KindLabel, Value: "Wall"})
	require.NoError(t, err)
	assert.Equal(t, "Wall", v)

	_, err = e.ResolveReference(id, types.TypedValue{Type: types.KindReference, Value: 404})
	assert.ErrorIs(t, err, types.ErrLineNotFound)

	_, err = e.ResolveReference(id, types.TypedValue{Type: types.KindReference, Value: "x"})
	assert.ErrorIs(t, err, types.ErrInvalidReference)
}

func TestCloseModel(t *testing.T) {
	e, id := openFixture(t)
	require.NoError(t, e.CloseModel(id))

	_, err := e.GetLine(id, 3, false)
	assert.ErrorIs(t, err, types.ErrModelNotFound)
	assert.ErrorIs(t, e.CloseModel(id), types.ErrModelNotFound)
}
