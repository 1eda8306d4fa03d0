package attribute

import (
	"errors"
	"fmt"
	"math"
)

// ErrSchemaViolation is returned when a document does not match its schema.
var ErrSchemaViolation = errors.New("schema violation")

// FieldType is the kind a Schema requires of a field.
type FieldType uint8

const (
	FieldTypeAny FieldType = iota
	FieldTypeInt
	FieldTypeFloat
	FieldTypeString
	FieldTypeBool
	FieldTypeArray
)

var fieldTypeNames = [...]string{"Any", "Int", "Float", "String", "Bool", "Array"}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return "Unknown"
}

// accepts reports whether a value of kind k may be stored in a field of
// type t. Null fits everywhere and Int widens to Float.
func (t FieldType) accepts(k Kind) bool {
	switch {
	case k == KindNull, t == FieldTypeAny:
		return true
	case t == FieldTypeFloat && k == KindInt:
		return true
	}
	return fieldTypeOf(k) == t
}

// Schema maps field names to the kind their values must have.
// Fields missing from the schema are not checked.
type Schema map[string]FieldType

// Validate checks every field of doc that the schema names.
func (s Schema) Validate(doc Document) error {
	for k, v := range doc {
		if t, ok := s[k]; ok && !t.accepts(v.Kind) {
			return fmt.Errorf("%w: field %q has type %s, expected %s", ErrSchemaViolation, k, v.Kind, t)
		}
	}
	return nil
}

// ValidateMap checks untyped row input. Integral float64 values, which is
// how encoding/json decodes every number, satisfy Int fields.
func (s Schema) ValidateMap(row map[string]any) error {
	for k, raw := range row {
		t, ok := s[k]
		if !ok {
			continue
		}
		if f, isFloat := raw.(float64); isFloat && t == FieldTypeInt && f == math.Trunc(f) {
			continue
		}
		v, err := FromAny(raw)
		if err != nil || !t.accepts(v.Kind) {
			return fmt.Errorf("%w: field %q has type %T, expected %s", ErrSchemaViolation, k, raw, t)
		}
	}
	return nil
}

// InferFieldType returns the narrowest field type that accepts every value.
// Nulls are ignored; Int and Float mix to Float; anything else mixed is Any.
func InferFieldType(values []Value) FieldType {
	ft, seen := FieldTypeAny, false
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		t := fieldTypeOf(v.Kind)
		switch {
		case !seen:
			ft, seen = t, true
		case ft == t:
		case numeric(ft) && numeric(t):
			ft = FieldTypeFloat
		default:
			return FieldTypeAny
		}
	}
	return ft
}

func fieldTypeOf(k Kind) FieldType {
	switch k {
	case KindInt:
		return FieldTypeInt
	case KindFloat:
		return FieldTypeFloat
	case KindString:
		return FieldTypeString
	case KindBool:
		return FieldTypeBool
	case KindArray:
		return FieldTypeArray
	}
	return FieldTypeAny
}

func numeric(t FieldType) bool { return t == FieldTypeInt || t == FieldTypeFloat }
