package types

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
)

// Reserved element keys.
const (
	KeyExpressID = "expressID"
	KeyType      = "type"
	KeyTypeName  = "typeName"
	KeyPsets     = "__psets"
)

// Value kinds carried in the Type field of a TypedValue.
const (
	KindString    = 1
	KindLabel     = 2
	KindEnum      = 3
	KindReal      = 4
	KindReference = 5
	KindEmpty     = 6
	KindSet       = 7
)

// Element is a single model line as produced by an Engine: attribute name to
// value. Values are numbers, strings, nested Elements, slices, or typed
// values. This layer does not define the schema.
type Element map[string]any

// TypedValue is the {type, value} shape an engine uses for attribute values
// that carry a kind, most importantly references (Type == KindReference,
// Value == target express ID).
type TypedValue struct {
	Type  int `json:"type"`
	Value any `json:"value"`
}

// IsReference reports whether tv points at another line.
func (tv TypedValue) IsReference() bool {
	return tv.Type == KindReference
}

// RefID returns the target express ID of a reference.
func (tv TypedValue) RefID() (int, bool) {
	if !tv.IsReference() {
		return 0, false
	}
	return AsInt(tv.Value)
}

// ExpressID returns the element's express ID.
func (e Element) ExpressID() (int, bool) {
	return AsInt(e[KeyExpressID])
}

// TypeCode returns the element's numeric type code.
func (e Element) TypeCode() (uint32, bool) {
	n, ok := AsInt(e[KeyType])
	if !ok || n < 0 || n > math.MaxUint32 {
		return 0, false
	}
	return uint32(n), true
}

// Clone returns a deep copy of the element. Nested Elements, maps, and
// slices are copied; scalar values are shared.
func (e Element) Clone() Element {
	if e == nil {
		return nil
	}
	return cloneValue(e).(Element)
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case Element:
		out := make(Element, len(x))
		for k, val := range x {
			out[k] = cloneValue(val)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = cloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = cloneValue(val)
		}
		return out
	case []Element:
		out := make([]Element, len(x))
		for i, val := range x {
			out[i] = val.Clone()
		}
		return out
	default:
		return v
	}
}

// AsTypedValue reports whether v has the {type, value} shape and returns it.
// A map qualifies only when it has exactly the keys "type" and "value" and
// "type" is an integer.
func AsTypedValue(v any) (TypedValue, bool) {
	switch x := v.(type) {
	case TypedValue:
		return x, true
	case *TypedValue:
		if x == nil {
			return TypedValue{}, false
		}
		return *x, true
	case Element:
		return typedValueFromMap(x)
	case map[string]any:
		return typedValueFromMap(x)
	}
	return TypedValue{}, false
}

func typedValueFromMap(m map[string]any) (TypedValue, bool) {
	if len(m) != 2 {
		return TypedValue{}, false
	}
	rawType, ok := m["type"]
	if !ok {
		return TypedValue{}, false
	}
	value, ok := m["value"]
	if !ok {
		return TypedValue{}, false
	}
	kind, ok := AsInt(rawType)
	if !ok {
		return TypedValue{}, false
	}
	return TypedValue{Type: kind, Value: value}, true
}

// AsInt converts the numeric representations engines and decoders produce
// into an int. Floats must be integral.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// DecodeElement parses a JSON object into an Element with numbers normalized
// by Normalize.
func DecodeElement(data []byte) (Element, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return Normalize(raw).(Element), nil
}

// Normalize rewrites a value decoded with json.Decoder.UseNumber so integers
// become int, other numbers float64, and objects become Elements.
func Normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(Element, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case Element:
		out := make(Element, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return v
	}
}

// SortedIDs returns the keys of an element mapping in ascending order.
func SortedIDs(elements map[int]Element) []int {
	ids := make([]int, 0, len(elements))
	for id := range elements {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
