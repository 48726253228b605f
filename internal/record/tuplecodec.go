package record

import (
	"errors"
	"fmt"
	"math"

	"github.com/tuannm99/tupledesc/internal/alias/bx"
	"github.com/tuannm99/tupledesc/internal/types"
)

var (
	ErrValueMismatch = errors.New("tuplecodec: descriptor/values mismatch")
	ErrBadBuffer     = errors.New("tuplecodec: buffer size does not match descriptor")
	ErrTextTooLong   = errors.New("tuplecodec: text exceeds fixed width")
)

// MaxTextBytes is the payload capacity of a Text slot (u16 length prefix + data).
const MaxTextBytes = types.TextLen - 2

// EncodeTuple lays values out at the descriptor's offsets.
// Format: every field at Offset(i), exactly Size() bytes in total.
// Text: u16 length (LE) + data, zero padded to TextLen.
func EncodeTuple(d *TupleDesc, values []any) ([]byte, error) {
	if len(values) != d.NumFields() {
		return nil, fmt.Errorf("%w: %d values for %d fields", ErrValueMismatch, len(values), d.NumFields())
	}

	out := make([]byte, d.Size())
	for i, f := range d.All() {
		off := d.offsets[i]
		v := values[i]

		switch f.Type {
		case types.Int32:
			x, ok := asInt32(v)
			if !ok {
				return nil, fieldMismatch(i, f, v)
			}
			bx.PutU32At(out, off, uint32(x))

		case types.Int64:
			x, ok := asInt64(v)
			if !ok {
				return nil, fieldMismatch(i, f, v)
			}
			bx.PutU64At(out, off, uint64(x))

		case types.Bool:
			x, ok := v.(bool)
			if !ok {
				return nil, fieldMismatch(i, f, v)
			}
			if x {
				out[off] = 1
			}

		case types.Float64:
			x, ok := asFloat64(v)
			if !ok {
				return nil, fieldMismatch(i, f, v)
			}
			bx.PutU64At(out, off, math.Float64bits(x))

		case types.Text:
			s, ok := v.(string)
			if !ok {
				return nil, fieldMismatch(i, f, v)
			}
			if len(s) > MaxTextBytes {
				return nil, fmt.Errorf("field %d: %w (%d > %d)", i, ErrTextTooLong, len(s), MaxTextBytes)
			}
			bx.PutU16At(out, off, uint16(len(s)))
			copy(out[off+2:], s)
		}
	}
	return out, nil
}

// DecodeTuple reads one tuple produced by EncodeTuple.
func DecodeTuple(d *TupleDesc, buf []byte) ([]any, error) {
	if len(buf) != d.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadBuffer, len(buf), d.Size())
	}

	out := make([]any, d.NumFields())
	for i, f := range d.All() {
		off := d.offsets[i]

		switch f.Type {
		case types.Int32:
			out[i] = int32(bx.U32At(buf, off))
		case types.Int64:
			out[i] = int64(bx.U64At(buf, off))
		case types.Bool:
			out[i] = buf[off] != 0
		case types.Float64:
			out[i] = math.Float64frombits(bx.U64At(buf, off))
		case types.Text:
			l := int(bx.U16At(buf, off))
			if l > MaxTextBytes {
				return nil, fmt.Errorf("field %d: %w: text length %d", i, ErrBadBuffer, l)
			}
			out[i] = string(buf[off+2 : off+2+l])
		}
	}
	return out, nil
}

// ReadField decodes only the i-th field of an encoded tuple.
func ReadField(d *TupleDesc, buf []byte, i int) (any, error) {
	if len(buf) != d.Size() {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadBuffer, len(buf), d.Size())
	}
	off, err := d.Offset(i)
	if err != nil {
		return nil, err
	}
	one := build([]FieldEntry{d.fields[i]})
	vals, err := DecodeTuple(one, buf[off:off+one.size])
	if err != nil {
		return nil, err
	}
	return vals[0], nil
}

// WriteField overwrites the i-th field of an encoded tuple in place.
func WriteField(d *TupleDesc, buf []byte, i int, v any) error {
	if len(buf) != d.Size() {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBadBuffer, len(buf), d.Size())
	}
	off, err := d.Offset(i)
	if err != nil {
		return err
	}
	one := build([]FieldEntry{d.fields[i]})
	enc, err := EncodeTuple(one, []any{v})
	if err != nil {
		return err
	}
	copy(buf[off:], enc)
	return nil
}

func fieldMismatch(i int, f FieldEntry, v any) error {
	return fmt.Errorf("%w: field %d %s got %T", ErrValueMismatch, i, f, v)
}

// ---- small helpers to accept multiple numeric types on encode ----
func asInt32(v any) (int32, bool) {
	switch x := v.(type) {
	case int32:
		return x, true
	case int:
		if x >= math.MinInt32 && x <= math.MaxInt32 {
			return int32(x), true
		}
	case int64:
		if x >= math.MinInt32 && x <= math.MaxInt32 {
			return int32(x), true
		}
	}
	return 0, false
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	}
	return 0, false
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	return 0, false
}
