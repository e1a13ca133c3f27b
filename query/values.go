package query

import (
	"net/url"
	"reflect"
)

// Values encodes a query mapping into url.Values. Nil entries are dropped
// rather than encoded, slice and array entries expand element-wise into
// repeated keys (skipping nil elements), and scalar entries are set once.
//
// []byte is treated as a scalar string, not expanded per element.
func Values(m map[string]any) url.Values {
	vals := make(url.Values, len(m))
	for k, v := range m {
		if isNil(v) {
			continue
		}

		switch t := v.(type) {
		case []string:
			for _, s := range t {
				vals.Add(k, s)
			}
			continue
		case []byte:
			vals.Set(k, string(t))
			continue
		}

		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < rv.Len(); i++ {
				el := rv.Index(i).Interface()
				if isNil(el) {
					continue
				}
				vals.Add(k, Serialize(el))
			}
		default:
			vals.Set(k, Serialize(v))
		}
	}
	return vals
}

// Encode renders the mapping directly as a URL query string.
func Encode(m map[string]any) string {
	return Values(m).Encode()
}

// isNil reports whether v is nil, including typed nil pointers, maps,
// slices, and the other nilable kinds.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
