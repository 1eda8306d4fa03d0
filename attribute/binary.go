package attribute

import (
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"unique"
)

// ErrCorrupt is returned when a binary attribute payload cannot be parsed.
var ErrCorrupt = errors.New("corrupt attribute data")

// MarshalColumn encodes a column of values: a uvarint count followed by the
// values in row order.
func MarshalColumn(values []Value) ([]byte, error) {
	buf := make([]byte, 0, 4+len(values)*9)
	buf = binary.AppendUvarint(buf, uint64(len(values)))
	for _, v := range values {
		var err error
		buf, err = appendValue(buf, v)
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// UnmarshalColumn decodes a column written by MarshalColumn.
func UnmarshalColumn(data []byte) ([]Value, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, corrupt("invalid column length")
	}
	data = data[n:]
	// Every value needs at least its kind byte.
	if count > uint64(len(data)) {
		return nil, corrupt("column length exceeds payload")
	}

	values := make([]Value, count)
	for i := range values {
		v, remaining, err := parseValue(data)
		if err != nil {
			return nil, err
		}
		values[i] = v
		data = remaining
	}
	if len(data) != 0 {
		return nil, corrupt("trailing bytes after column")
	}
	return values, nil
}

// MarshalBinary implements encoding.BinaryMarshaler. Keys are written in
// sorted order so equal documents encode identically.
func (d Document) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 4+len(d)*16)
	buf = binary.AppendUvarint(buf, uint64(len(d)))

	for _, k := range slices.Sorted(maps.Keys(d)) {
		buf = binary.AppendUvarint(buf, uint64(len(k)))
		buf = append(buf, k...)

		var err error
		buf, err = appendValue(buf, d[k])
		if err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (d *Document) UnmarshalBinary(data []byte) error {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return corrupt("invalid document length")
	}
	data = data[n:]

	if *d == nil {
		*d = make(Document, min(count, uint64(len(data))))
	}

	for range count {
		kLen, n := binary.Uvarint(data)
		if n <= 0 {
			return corrupt("invalid key length")
		}
		data = data[n:]
		if uint64(len(data)) < kLen {
			return corrupt("short buffer for key")
		}
		key := string(data[:kLen])
		data = data[kLen:]

		val, remaining, err := parseValue(data)
		if err != nil {
			return err
		}
		(*d)[key] = val
		data = remaining
	}
	return nil
}

func appendValue(buf []byte, v Value) ([]byte, error) {
	if v.Kind == KindInvalid {
		v = Null()
	}
	buf = append(buf, byte(v.Kind))

	switch v.Kind {
	case KindNull:
		// No payload
	case KindInt:
		buf = binary.AppendVarint(buf, v.I64)
	case KindFloat:
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.F64))
	case KindString:
		s := v.s.Value()
		buf = binary.AppendUvarint(buf, uint64(len(s)))
		buf = append(buf, s...)
	case KindBool:
		if v.B {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case KindArray:
		buf = binary.AppendUvarint(buf, uint64(len(v.A)))
		for _, item := range v.A {
			var err error
			buf, err = appendValue(buf, item)
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.New("unknown attribute kind")
	}
	return buf, nil
}

func parseValue(data []byte) (Value, []byte, error) {
	if len(data) == 0 {
		return Value{}, nil, corrupt("short buffer for value kind")
	}
	kind := Kind(data[0])
	data = data[1:]

	var v Value
	v.Kind = kind

	switch kind {
	case KindNull:
		// No payload
	case KindInt:
		i, n := binary.Varint(data)
		if n <= 0 {
			return v, nil, corrupt("invalid int value")
		}
		v.I64 = i
		data = data[n:]
	case KindFloat:
		if len(data) < 8 {
			return v, nil, corrupt("short buffer for float")
		}
		v.F64 = math.Float64frombits(binary.LittleEndian.Uint64(data))
		data = data[8:]
	case KindString:
		sLen, n := binary.Uvarint(data)
		if n <= 0 {
			return v, nil, corrupt("invalid string length")
		}
		data = data[n:]
		if uint64(len(data)) < sLen {
			return v, nil, corrupt("short buffer for string")
		}
		v.s = unique.Make(string(data[:sLen]))
		data = data[sLen:]
	case KindBool:
		if len(data) == 0 {
			return v, nil, corrupt("short buffer for bool")
		}
		v.B = data[0] != 0
		data = data[1:]
	case KindArray:
		aLen, n := binary.Uvarint(data)
		if n <= 0 {
			return v, nil, corrupt("invalid array length")
		}
		data = data[n:]
		if aLen > uint64(len(data)) {
			return v, nil, corrupt("array length exceeds payload")
		}
		v.A = make([]Value, aLen)
		for i := range v.A {
			item, remaining, err := parseValue(data)
			if err != nil {
				return v, nil, err
			}
			v.A[i] = item
			data = remaining
		}
	default:
		return v, nil, corrupt("unknown attribute kind")
	}
	return v, data, nil
}

func corrupt(reason string) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, reason)
}
