package tools

import (
	"reflect"
	"slices"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// outputSchema derives the schema of an operation result from its Go type.
// Fields promoted from an embedded pointer struct only appear when that
// struct is set, so they are never required.
func outputSchema[T any]() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, err
	}
	relaxEmbedded(reflect.TypeFor[T](), schema)
	return schema, nil
}

func relaxEmbedded(t reflect.Type, schema *jsonschema.Schema) {
	if schema == nil {
		return
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		relaxEmbedded(t.Elem(), schema.Items)
	case reflect.Map:
		relaxEmbedded(t.Elem(), schema.AdditionalProperties)
	case reflect.Struct:
		optional := map[string]bool{}
		for _, field := range reflect.VisibleFields(t) {
			if field.Anonymous || !field.IsExported() {
				continue
			}
			name := jsonFieldName(field)
			if name == "" {
				continue
			}
			if behindEmbeddedPointer(t, field.Index) {
				optional[name] = true
			}
			relaxEmbedded(field.Type, schema.Properties[name])
		}
		schema.Required = slices.DeleteFunc(schema.Required, func(name string) bool {
			return optional[name]
		})
	}
}

func behindEmbeddedPointer(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		field := t.Field(i)
		if field.Type.Kind() == reflect.Pointer {
			return true
		}
		t = field.Type
	}
	return false
}

func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}
