package attribute

import (
	"fmt"
	"math"
)

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

func fromUnsigned[T unsigned](x T) (Value, error) {
	if uint64(x) > math.MaxInt64 {
		return Value{}, fmt.Errorf("attribute: %d overflows int64", uint64(x))
	}
	return Int(int64(x)), nil
}

func arrayOf[T any](xs []T, conv func(T) Value) Value {
	out := make([]Value, len(xs))
	for i, x := range xs {
		out[i] = conv(x)
	}
	return Array(out)
}

func intValue[T signed](x T) Value { return Int(int64(x)) }

// FromAny converts an untyped Go value, as produced by encoding/json or
// written by hand in a row map, into a Value. Unsupported types are an error.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return intValue(x), nil
	case int8:
		return intValue(x), nil
	case int16:
		return intValue(x), nil
	case int32:
		return intValue(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUnsigned(x)
	case uint8:
		return fromUnsigned(x)
	case uint16:
		return fromUnsigned(x)
	case uint32:
		return fromUnsigned(x)
	case uint64:
		return fromUnsigned(x)
	case []Value:
		return Array(x), nil
	case []string:
		return arrayOf(x, String), nil
	case []int:
		return arrayOf(x, intValue[int]), nil
	case []int64:
		return arrayOf(x, Int), nil
	case []float64:
		return arrayOf(x, Float), nil
	case []bool:
		return arrayOf(x, Bool), nil
	case []any:
		out := make([]Value, len(x))
		for i, e := range x {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = ev
		}
		return Array(out), nil
	}
	return Value{}, fmt.Errorf("attribute: unsupported type %T", v)
}

// DocumentFromAny converts every entry of m with FromAny.
func DocumentFromAny(m map[string]any) (Document, error) {
	doc := make(Document, len(m))
	for k, v := range m {
		val, err := FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", k, err)
		}
		doc[k] = val
	}
	return doc, nil
}
