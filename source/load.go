package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies the encoding of a configuration file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the format from a file extension; unknown extensions are
// treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode decodes data in the given format.
func Decode(data []byte, f Format) (any, error) {
	if f == FormatYAML {
		return YAML(data)
	}
	return JSON(data)
}

// LoadFile reads and decodes a JSON or YAML file into a tree.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	v, err := Decode(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return v, nil
}
