package betterform

import (
	"strconv"
	"strings"
)

// Path locates a value inside a configuration or submission. Elements are
// either string keys or int indices.
type Path []any

// Root is the empty path.
func Root() Path { return Path{} }

// Key returns a copy of p extended with an object key.
func (p Path) Key(name string) Path {
	return append(append(Path{}, p...), name)
}

// Index returns a copy of p extended with an array index.
func (p Path) Index(i int) Path {
	return append(append(Path{}, p...), i)
}

// Pointer renders p as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	if len(p) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, part := range p {
		b.WriteByte('/')
		switch v := part.(type) {
		case int:
			b.WriteString(strconv.Itoa(v))
		case string:
			// escape '~' -> '~0', '/' -> '~1'
			b.WriteString(strings.ReplaceAll(strings.ReplaceAll(v, "~", "~0"), "/", "~1"))
		}
	}
	return b.String()
}

// String renders p in dotted form, e.g. fields.2.validation.sameAs.
func (p Path) String() string {
	parts := make([]string, 0, len(p))
	for _, part := range p {
		switch v := part.(type) {
		case int:
			parts = append(parts, strconv.Itoa(v))
		case string:
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ".")
}

// Equal reports whether p and o address the same location.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Issue creates an Issue at p. kv are alternating param keys and values.
func (p Path) Issue(kind Kind, code, msg string, kv ...any) Issue {
	var params map[string]any
	if len(kv) > 1 {
		params = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				params[k] = kv[i+1]
			}
		}
	}
	return Issue{Path: append(Path{}, p...), Kind: kind, Code: code, Message: msg, Params: params}
}
