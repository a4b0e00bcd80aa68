package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type codes the wrapper and the snapshot engine refer to directly.
const (
	TypeIfcPropertySet            uint32 = 1451395588
	TypeIfcRelDefinesByProperties uint32 = 4186316022
)

// TypeTable maps human-readable IFC entity names to the engine's numeric type
// codes and back. Names match case-insensitively. A TypeTable is immutable
// once built; share it freely.
type TypeTable struct {
	byName map[string]uint32
	byCode map[uint32]string
}

// NewTypeTable builds a table from name-to-code entries. It returns an error
// if a name is empty or two names map to the same code.
func NewTypeTable(entries map[string]uint32) (TypeTable, error) {
	t := TypeTable{
		byName: make(map[string]uint32, len(entries)),
		byCode: make(map[uint32]string, len(entries)),
	}
	// Sorted so duplicate-code errors are deterministic.
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := t.add(name, entries[name]); err != nil {
			return TypeTable{}, err
		}
	}
	return t, nil
}

// DefaultTypeTable returns the built-in table of common IFC entities.
func DefaultTypeTable() TypeTable {
	t := TypeTable{
		byName: make(map[string]uint32, len(defaultTypes)),
		byCode: make(map[uint32]string, len(defaultTypes)),
	}
	for _, d := range defaultTypes {
		t.byName[strings.ToUpper(d.name)] = d.code
		t.byCode[d.code] = d.name
	}
	return t
}

// With returns a new table holding t's entries plus extra. Entries in extra
// override names already present.
func (t TypeTable) With(extra map[string]uint32) (TypeTable, error) {
	out := TypeTable{
		byName: make(map[string]uint32, len(t.byName)+len(extra)),
		byCode: make(map[uint32]string, len(t.byCode)+len(extra)),
	}
	for name, code := range t.byName {
		out.byName[name] = code
	}
	for code, name := range t.byCode {
		out.byCode[code] = name
	}
	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		key := strings.ToUpper(name)
		if old, ok := out.byName[key]; ok {
			delete(out.byCode, old)
			delete(out.byName, key)
		}
		if err := out.add(name, extra[name]); err != nil {
			return TypeTable{}, err
		}
	}
	return out, nil
}

func (t TypeTable) add(name string, code uint32) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("type table: %w", ErrInvalidTypeName)
	}
	if other, ok := t.byCode[code]; ok {
		return fmt.Errorf("type table: code %d used by %s and %s: %w", code, other, name, ErrDuplicateTypeCode)
	}
	t.byName[strings.ToUpper(name)] = code
	t.byCode[code] = name
	return nil
}

// Code returns the type code for name.
func (t TypeTable) Code(name string) (uint32, bool) {
	code, ok := t.byName[strings.ToUpper(name)]
	return code, ok
}

// Name returns the entity name for code in its canonical spelling.
func (t TypeTable) Name(code uint32) (string, bool) {
	name, ok := t.byCode[code]
	return name, ok
}

// Len returns the number of entries.
func (t TypeTable) Len() int {
	return len(t.byName)
}

// Names returns all entity names in ascending order.
func (t TypeTable) Names() []string {
	names := make([]string, 0, len(t.byCode))
	for _, name := range t.byCode {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
