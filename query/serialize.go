package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"
)

// timeFormat is ISO-8601 with millisecond precision, always UTC.
const timeFormat = "2006-01-02T15:04:05.000Z"

// Serialize renders a single query value in its canonical string form.
// It never fails: values that cannot take a structured form fall back to
// their natural text rendering.
//
//   - nil (including typed nil pointers) renders as "null"
//   - time.Time and *time.Time render as UTC ISO-8601 with milliseconds
//   - maps and structs render as compact JSON
//   - everything else renders via fmt.Sprint
func Serialize(v any) string {
	if v == nil {
		return "null"
	}

	switch t := v.(type) {
	case string:
		return t
	case time.Time:
		return t.UTC().Format(timeFormat)
	case *time.Time:
		if t == nil {
			return "null"
		}
		return t.UTC().Format(timeFormat)
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null"
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}

	return fmt.Sprint(v)
}
