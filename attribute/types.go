package attribute

import (
	"cmp"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindInt
	KindFloat
	KindString
	KindBool
	KindArray
)

var kindNames = [...]string{"Invalid", "Null", "Int", "Float", "String", "Bool", "Array"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// Value is one attribute cell. The zero Value is null. Strings are interned,
// so repeated category labels share storage and compare by handle.
type Value struct {
	Kind Kind
	I64  int64
	F64  float64
	B    bool
	A    []Value
	s    unique.Handle[string]
}

// StringValue returns the string held by v, or "" for other kinds.
func (v Value) StringValue() string {
	if v.Kind == KindString {
		return v.s.Value()
	}
	return ""
}

// jsonValue is the tagged JSON form of a Value. Non-finite floats go into NF
// because JSON has no literal for them.
type jsonValue struct {
	K  Kind        `json:"k"`
	I  int64       `json:"i,omitempty"`
	F  float64     `json:"f,omitempty"`
	NF string      `json:"nf,omitempty"`
	S  string      `json:"s,omitempty"`
	B  bool        `json:"b,omitempty"`
	A  []jsonValue `json:"a,omitempty"`
}

func (v Value) toJSON() jsonValue {
	j := jsonValue{K: v.Kind, I: v.I64, B: v.B, S: v.StringValue()}
	if math.IsNaN(v.F64) || math.IsInf(v.F64, 0) {
		j.NF = strconv.FormatFloat(v.F64, 'g', -1, 64)
	} else {
		j.F = v.F64
	}
	if v.Kind == KindArray {
		j.A = make([]jsonValue, len(v.A))
		for i, e := range v.A {
			j.A[i] = e.toJSON()
		}
	}
	return j
}

func (j jsonValue) value() (Value, error) {
	v := Value{Kind: j.K, I64: j.I, F64: j.F, B: j.B}
	if j.NF != "" {
		f, err := strconv.ParseFloat(j.NF, 64)
		if err != nil {
			return Value{}, fmt.Errorf("attribute: invalid non-finite float %q", j.NF)
		}
		v.F64 = f
	}
	switch j.K {
	case KindString:
		v.s = unique.Make(j.S)
	case KindArray:
		v.A = make([]Value, len(j.A))
		for i, e := range j.A {
			ev, err := e.value()
			if err != nil {
				return Value{}, err
			}
			v.A[i] = ev
		}
	}
	return v, nil
}

// MarshalJSON writes v in its tagged form, e.g. {"k":2,"i":7}.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.toJSON())
}

// UnmarshalJSON reads the form written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var j jsonValue
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	out, err := j.value()
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// Key returns a stable string representation for use in maps.
//
// It is used by the group index and must remain stable.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		if math.IsNaN(v.F64) {
			return "f:nan"
		}
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.s.Value()
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindArray:
		if len(v.A) == 0 {
			return "a:"
		}
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	default:
		return "invalid"
	}
}

// AsNumber returns the value as float64 for both Int and Float kinds.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case KindInt:
		return float64(v.I64), true
	case KindFloat:
		return v.F64, true
	default:
		return 0, false
	}
}

// IsNull reports whether v is null. The zero Value counts as null.
func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == KindInvalid
}

// Interface returns the plain Go value: nil, int64, float64, string, bool or []any.
func (v Value) Interface() any {
	switch v.Kind {
	case KindInt:
		return v.I64
	case KindFloat:
		return v.F64
	case KindString:
		return v.s.Value()
	case KindBool:
		return v.B
	case KindArray:
		out := make([]any, len(v.A))
		for i := range v.A {
			out[i] = v.A[i].Interface()
		}
		return out
	default:
		return nil
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.Kind {
	case KindString:
		return strconv.Quote(v.s.Value())
	case KindArray:
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindNull, KindInvalid:
		return "null"
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Equal reports whether two values are equal. NaN equals NaN so that rows
// carrying missing floats compare equal after a round trip.
func (v Value) Equal(o Value) bool {
	if v.IsNull() && o.IsNull() {
		return true
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.I64 == o.I64
	case KindFloat:
		return v.F64 == o.F64 || (math.IsNaN(v.F64) && math.IsNaN(o.F64))
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.B == o.B
	case KindArray:
		if len(v.A) != len(o.A) {
			return false
		}
		for i := range v.A {
			if !v.A[i].Equal(o.A[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare orders values: null < bool < number < string < array. Ints and
// floats compare numerically; NaN sorts before every other number.
func Compare(a, b Value) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 1:
		return cmp.Compare(boolInt(a.B), boolInt(b.B))
	case 2:
		if a.Kind == KindInt && b.Kind == KindInt {
			return cmp.Compare(a.I64, b.I64)
		}
		fa, _ := a.AsNumber()
		fb, _ := b.AsNumber()
		return cmp.Compare(fa, fb)
	case 3:
		return strings.Compare(a.s.Value(), b.s.Value())
	case 4:
		for i := range min(len(a.A), len(b.A)) {
			if c := Compare(a.A[i], b.A[i]); c != 0 {
				return c
			}
		}
		return cmp.Compare(len(a.A), len(b.A))
	}
	return 0
}

func rank(v Value) int {
	switch v.Kind {
	case KindBool:
		return 1
	case KindInt, KindFloat:
		return 2
	case KindString:
		return 3
	case KindArray:
		return 4
	default:
		return 0
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Document is one row's named attribute values.
type Document map[string]Value

// Clone creates a deep copy of the document, including nested arrays.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v.clone()
	}
	return clone
}

// ToMap returns the document as plain Go values.
func (d Document) ToMap() map[string]any {
	m := make(map[string]any, len(d))
	for k, v := range d {
		m[k] = v.Interface()
	}
	return m
}

func (v Value) clone() Value {
	if v.Kind != KindArray || len(v.A) == 0 {
		return v
	}

	arrayCopy := make([]Value, len(v.A))
	for i := range v.A {
		arrayCopy[i] = v.A[i].clone()
	}
	v.A = arrayCopy
	return v
}
