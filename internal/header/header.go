// Package header extracts the HEADER section of STEP physical files (ISO
// 10303-21), the encoding IFC models are exchanged in. Engines do not
// expose header metadata, so it is read from the raw bytes.
package header

import (
	"bytes"
	"strings"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

var dataMarker = []byte("DATA;")

// Extract returns a copy of the bytes preceding the first DATA; marker.
// Returns types.ErrNoDataSection if the marker is absent.
func Extract(raw []byte) ([]byte, error) {
	idx := bytes.Index(raw, dataMarker)
	if idx == -1 {
		return nil, types.ErrNoDataSection
	}
	out := make([]byte, idx)
	copy(out, raw[:idx])
	return out, nil
}

// Entries splits an extracted header into its records, one per
// semicolon-terminated statement, with surrounding whitespace removed.
// Semicolons inside quoted strings do not end a record.
func Entries(header []byte) []string {
	var (
		entries []string
		cur     strings.Builder
		quoted  bool
	)
	for _, b := range header {
		switch {
		case b == '\'':
			quoted = !quoted
			cur.WriteByte(b)
		case b == ';' && !quoted:
			if s := strings.TrimSpace(cur.String()); s != "" {
				entries = append(entries, s)
			}
			cur.Reset()
		default:
			cur.WriteByte(b)
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		entries = append(entries, s)
	}
	return entries
}
