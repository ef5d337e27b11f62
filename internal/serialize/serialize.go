// Package serialize flattens typed resource structs into the generic
// property maps CloudFormation templates are made of.
package serialize

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Properties converts a resource struct to its CloudFormation properties
// map. Field names are used as-is (CloudFormation properties are
// PascalCase, and so are Go exported fields), zero-valued fields are
// omitted, and values implementing json.Marshaler, such as intrinsic
// placeholders, serialize through their own marshaling.
func Properties(v any) (map[string]any, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, nil
	}

	props := make(map[string]any)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)

		if !field.IsExported() {
			continue
		}

		name := propertyName(field)
		if name == "-" {
			continue
		}

		if isZero(fieldVal) {
			continue
		}

		value, err := serializeValue(fieldVal)
		if err != nil {
			return nil, err
		}
		if value != nil {
			props[name] = value
		}
	}

	return props, nil
}

// propertyName honors a json tag when present, otherwise the field name.
func propertyName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return field.Name
	}
	return name
}

// isZero reports whether the field should be omitted from the template. A
// struct can opt in to omission by providing an IsZero method.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.String:
		return v.String() == ""
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Struct:
		if v.CanInterface() {
			if zeroer, ok := v.Interface().(interface{ IsZero() bool }); ok {
				return zeroer.IsZero()
			}
		}
		return false
	default:
		return false
	}
}

func serializeValue(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}
		return serializeValue(v.Elem())
	}

	// Intrinsic placeholders (Ref, GetAtt, Sub) define their own JSON
	// forms, so their marshaling wins over field reflection.
	if v.CanInterface() {
		if marshaler, ok := v.Interface().(json.Marshaler); ok {
			return roundTrip(marshaler)
		}
	}

	switch v.Kind() {
	case reflect.Struct:
		return Properties(v.Interface())

	case reflect.Slice:
		if v.Len() == 0 {
			return nil, nil
		}
		items := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			item, err := serializeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return items, nil

	case reflect.Map:
		if v.Len() == 0 {
			return nil, nil
		}
		entries := make(map[string]any)
		iter := v.MapRange()
		for iter.Next() {
			value, err := serializeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			entries[iter.Key().String()] = value
		}
		return entries, nil

	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil

	default:
		return roundTrip(v.Interface())
	}
}

// roundTrip marshals through encoding/json and back so the value becomes a
// plain map/slice/scalar tree the template encoders can consume.
func roundTrip(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
