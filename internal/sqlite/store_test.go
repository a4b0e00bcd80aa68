package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "exports.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() *types.EnumerationResult {
	return &types.EnumerationResult{
		Elements: map[int]types.Element{
			1: {"expressID": 1, "type": 103090709, "typeName": "IfcProject"},
			3: {"expressID": 3, "type": 2391406946, "typeName": "IfcWall", "OwnerHistory": types.Element{"type": 5, "value": 2}},
			4: {"expressID": 4, "type": 2391406946, "typeName": "IfcWall"},
			9: {"expressID": 9, "type": 77},
		},
		Skipped: 2,
	}
}

func TestSaveExport(t *testing.T) {
	s := openStore(t)

	id, err := s.SaveExport("wall.json", sampleResult())
	require.NoError(t, err)
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	exports, err := s.Exports()
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, id, exports[0].ExportID)
	assert.Equal(t, "wall.json", exports[0].Source)
	assert.Equal(t, 4, exports[0].ElementCount)
	assert.Equal(t, 2, exports[0].Skipped)
	assert.False(t, exports[0].CreatedAt.IsZero())
}

func TestElementRoundTrip(t *testing.T) {
	s := openStore(t)
	id, err := s.SaveExport("wall.json", sampleResult())
	require.NoError(t, err)

	elt, err := s.Element(id, 3)
	require.NoError(t, err)
	assert.Equal(t, sampleResult().Elements[3], elt)

	_, err = s.Element(id, 2)
	assert.ErrorIs(t, err, types.ErrLineNotFound)

	_, err = s.Element("missing", 3)
	assert.ErrorIs(t, err, ErrExportNotFound)
}

func TestElementsOfType(t *testing.T) {
	s := openStore(t)
	id, err := s.SaveExport("wall.json", sampleResult())
	require.NoError(t, err)

	walls, err := s.ElementsOfType(id, "ifcwall")
	require.NoError(t, err)
	require.Len(t, walls, 2)
	assert.Equal(t, 3, walls[0]["expressID"])
	assert.Equal(t, 4, walls[1]["expressID"])

	none, err := s.ElementsOfType(id, "IfcDoor")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.ElementsOfType("missing", "IfcWall")
	assert.ErrorIs(t, err, ErrExportNotFound)
}

func TestElements(t *testing.T) {
	s := openStore(t)
	id, err := s.SaveExport("wall.json", sampleResult())
	require.NoError(t, err)

	elts, err := s.Elements(id)
	require.NoError(t, err)
	require.Len(t, elts, 4)
	var ids []int
	for _, e := range elts {
		eid, ok := e.ExpressID()
		require.True(t, ok)
		ids = append(ids, eid)
	}
	assert.Equal(t, []int{1, 3, 4, 9}, ids)

	_, err = s.Elements("missing")
	assert.ErrorIs(t, err, ErrExportNotFound)
}

func TestExportsAreIsolated(t *testing.T) {
	s := openStore(t)
	first, err := s.SaveExport("a.json", sampleResult())
	require.NoError(t, err)
	second, err := s.SaveExport("b.json", &types.EnumerationResult{Elements: map[int]types.Element{
		3: {"expressID": 3, "type": 395920057, "typeName": "IfcDoor"},
	}})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	elt, err := s.Element(second, 3)
	require.NoError(t, err)
	assert.Equal(t, "IfcDoor", elt["typeName"])

	exports, err := s.Exports()
	require.NoError(t, err)
	assert.Len(t, exports, 2)
}

func TestDeleteExportCascades(t *testing.T) {
	s := openStore(t)
	id, err := s.SaveExport("wall.json", sampleResult())
	require.NoError(t, err)

	require.NoError(t, s.DeleteExport(id))
	assert.ErrorIs(t, s.DeleteExport(id), ErrExportNotFound)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM elements`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpenExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports.db")
	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.SaveExport("wall.json", sampleResult())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	elt, err := s.Element(id, 1)
	require.NoError(t, err)
	assert.Equal(t, "IfcProject", elt["typeName"])
}
