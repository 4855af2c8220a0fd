// Package source turns raw form configurations and submissions into the
// JSON-like trees (map[string]any, []any, string, float64, bool, nil) the
// validators walk.
package source

import (
	"bytes"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// JSON decodes JSON text into a tree. Numbers decode as float64.
func JSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSONReader decodes a single JSON document from r.
func JSONReader(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: read: %w", err)
	}
	return JSON(data)
}

// Tree converts v into a JSON-like tree. Strings and byte slices are decoded
// as JSON text; maps and slices are normalized; whatever is still not a tree
// is encoded and decoded again, so typed configurations share the raw code
// path.
func Tree(v any) (any, error) {
	switch t := v.(type) {
	case string:
		return JSON([]byte(t))
	case []byte:
		return JSON(t)
	case json.RawMessage:
		return JSON(t)
	}
	v = Normalize(v)
	if IsTree(v) {
		return v, nil
	}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("source: encode %T: %w", v, err)
	}
	return JSON(buf.Bytes())
}

// Marshal renders v as indented JSON.
func Marshal(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
