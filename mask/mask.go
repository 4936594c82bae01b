// Package mask hides sensitive struct fields before values are logged or
// printed. A field is sensitive when tagged `mask:"true"`.
package mask

import (
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	tagName = "mask"

	// maxDepth bounds the type walk of self-referencing structs.
	maxDepth = 8
)

// Value returns v in a form safe to log. Values whose type carries no
// sensitive field are returned as is, anything else is flattened by Struct.
func Value(v any) any {
	if v == nil || !hasSensitive(reflect.TypeOf(v), 0) {
		return v
	}
	return Struct(v)
}

// Struct flattens v into dotted keys in field order, replacing non-zero
// values of sensitive fields with a placeholder naming their kind.
//
// Keys come from the json tag, then the yaml tag, then the field name.
// Fields tagged "-" are left out. Structs without exported fields are kept
// as leaf values.
func Struct(v any) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	if v != nil {
		flatten(om, reflect.ValueOf(v), "")
	}
	return om
}

func flatten(om *orderedmap.OrderedMap[string, any], val reflect.Value, prefix string) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if !expandable(val) {
		om.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, skip := fieldName(sf)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		field := val.Field(i)
		switch {
		case sensitive(sf):
			om.Set(name, hide(field))
		case expandable(deref(field)):
			flatten(om, field, name)
		default:
			om.Set(name, field.Interface())
		}
	}
}

func hasSensitive(typ reflect.Type, depth int) bool {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct || depth > maxDepth {
		return false
	}

	for i := range typ.NumField() {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sensitive(sf) || hasSensitive(sf.Type, depth+1) {
			return true
		}
	}
	return false
}

func sensitive(sf reflect.StructField) bool {
	return strings.EqualFold(sf.Tag.Get(tagName), "true")
}

func deref(val reflect.Value) reflect.Value {
	if val.Kind() == reflect.Pointer && !val.IsNil() {
		return val.Elem()
	}
	return val
}

func expandable(val reflect.Value) bool {
	if val.Kind() != reflect.Struct {
		return false
	}
	typ := val.Type()
	for i := range typ.NumField() {
		if typ.Field(i).IsExported() {
			return true
		}
	}
	return false
}

func hide(val reflect.Value) any {
	switch val.Kind() { //nolint:exhaustive // remaining kinds are never nil
	case reflect.Pointer:
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	case reflect.Slice, reflect.Map:
		if val.IsNil() {
			return nil
		}
	}

	// zero values carry no secret
	if val.IsZero() {
		return val.Interface()
	}

	return fmt.Sprintf("***masked-%s***", kindLabel(val.Kind()))
}

func kindLabel(k reflect.Kind) string {
	switch k { //nolint:exhaustive // other kinds use their own name
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Slice, reflect.Array:
		return "slice"
	default:
		return k.String()
	}
}

// fieldName returns the key of a field and whether it must be skipped.
func fieldName(sf reflect.StructField) (string, bool) {
	for _, key := range []string{"json", "yaml"} {
		tag, ok := sf.Tag.Lookup(key)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" {
			return "", true
		}
		if name != "" {
			return name, false
		}
	}
	return sf.Name, false
}
