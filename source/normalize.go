package source

import (
	"fmt"
	"reflect"
	"strconv"

	json "github.com/goccy/go-json"
)

// Normalize rewrites decoded values into JSON-like form: map[any]any becomes
// map[string]any (non-string keys are dropped) and every numeric kind becomes
// float64. Typed slices, string-keyed maps and named string or bool kinds
// are unwrapped as well. Maps and slices are copied. Structs and other
// values are returned unchanged; IsTree reports whether any remain.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = Normalize(vv)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = vv
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = Normalize(t[i])
		}
		return arr
	case []string:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = t[i]
		}
		return arr
	}
	if n, ok := ToFloat(v); ok {
		return n
	}
	return normalizeKind(v)
}

func normalizeKind(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return v
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		arr := make([]any, rv.Len())
		for i := range arr {
			arr[i] = Normalize(rv.Index(i).Interface())
		}
		return arr
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return v
}

// IsTree reports whether v holds only map[string]any, []any, string,
// float64, bool and nil.
func IsTree(v any) bool {
	switch t := v.(type) {
	case nil, string, float64, bool:
		return true
	case map[string]any:
		for _, vv := range t {
			if !IsTree(vv) {
				return false
			}
		}
		return true
	case []any:
		for _, vv := range t {
			if !IsTree(vv) {
				return false
			}
		}
		return true
	}
	return false
}

// ToFloat reports v as a float64 when it is any Go numeric kind or a
// json.Number.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

// TypeName names v the way validation messages do (string, number, boolean,
// array, object, null, undefined).
func TypeName(v any) string {
	if v == nil {
		return "null"
	}
	if _, ok := ToFloat(v); ok {
		return "number"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
