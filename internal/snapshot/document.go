package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// document is the wire form of a snapshot.
type document struct {
	Schema string            `json:"schema"`
	Lines  []json.RawMessage `json:"lines"`
}

// parsedModel is an opened snapshot.
type parsedModel struct {
	schema string
	order  []int
	lines  map[int]types.Element
}

// parse decodes data into a parsedModel. Every failure wraps types.ErrParse.
func parse(data []byte) (*parsedModel, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", types.ErrParse)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrParse, err)
	}
	if doc.Lines == nil {
		return nil, fmt.Errorf("%w: missing lines", types.ErrParse)
	}

	m := &parsedModel{
		schema: doc.Schema,
		order:  make([]int, 0, len(doc.Lines)),
		lines:  make(map[int]types.Element, len(doc.Lines)),
	}
	for i, raw := range doc.Lines {
		line, err := types.DecodeElement(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", types.ErrParse, i, err)
		}
		id, ok := line.ExpressID()
		if !ok || id <= 0 {
			return nil, fmt.Errorf("%w: line %d: missing or invalid expressID", types.ErrParse, i)
		}
		if _, ok := line.TypeCode(); !ok {
			return nil, fmt.Errorf("%w: line %d: missing or invalid type", types.ErrParse, i)
		}
		if _, dup := m.lines[id]; dup {
			return nil, fmt.Errorf("%w: duplicate expressID %d", types.ErrParse, id)
		}
		m.lines[id] = line
		m.order = append(m.order, id)
	}
	return m, nil
}
