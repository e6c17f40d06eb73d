package vdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ObjectText is what Stringify produces for structured values.
const ObjectText = "[object Object]"

// Stringify converts a value to text the way a template runtime coerces
// values into attribute strings. Maps and pointers to maps always become
// ObjectText, even when their type has a String method. Other values with a
// String method use it. Remaining structs and pointers become ObjectText.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case error:
		return x.Error()
	}

	if isMapping(reflect.TypeOf(v)) {
		return ObjectText
	}
	if x, ok := v.(fmt.Stringer); ok {
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits())
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	default:
		return ObjectText
	}
}

func isMapping(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Map
}
