// Package jsonl reads and writes element exports as JSON Lines, one element
// per line, with atomic persistence.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// Read returns each non-empty, parseable line of the file as an Element.
// Malformed lines are skipped.
func Read(path string) ([]types.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var elts []types.Element
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		elt, err := types.DecodeElement(line)
		if err != nil {
			continue
		}
		elts = append(elts, elt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return elts, nil
}

// WriteElements writes the elements to path in ascending express ID order.
func WriteElements(path string, elements map[int]types.Element) error {
	records := make([]json.RawMessage, 0, len(elements))
	for _, id := range types.SortedIDs(elements) {
		rec, err := json.Marshal(elements[id])
		if err != nil {
			return fmt.Errorf("marshaling element %d: %w", id, err)
		}
		records = append(records, rec)
	}
	return Write(path, records)
}

// Write atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern. The parent directory is created if needed.
func Write(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
