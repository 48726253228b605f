package record

import (
	"errors"
	"fmt"
	"hash/fnv"
	"iter"
	"strings"

	"github.com/tuannm99/tupledesc/internal/types"
)

var (
	ErrIndexOutOfRange = errors.New("record: field index out of range")
	ErrFieldNotFound   = errors.New("record: no field with that name")
	ErrLengthMismatch  = errors.New("record: types/names length mismatch")
	ErrNoFields        = errors.New("record: descriptor needs at least one field")
)

// FieldEntry is one slot of a TupleDesc. An empty Name is an anonymous field.
type FieldEntry struct {
	Type types.Type
	Name string
}

func (f FieldEntry) String() string {
	return f.Name + "(" + f.Type.String() + ")"
}

// TupleDesc describes the shape of a tuple: an ordered list of typed,
// optionally named fields. It is immutable once built and safe to share
// between goroutines.
type TupleDesc struct {
	fields  []FieldEntry
	offsets []int
	size    int
}

// New builds a descriptor pairing ts[i] with names[i]. Names are neither
// validated nor deduplicated.
func New(ts []types.Type, names []string) (*TupleDesc, error) {
	if len(ts) != len(names) {
		return nil, fmt.Errorf("%w: %d types, %d names", ErrLengthMismatch, len(ts), len(names))
	}
	if len(ts) == 0 {
		return nil, ErrNoFields
	}

	fields := make([]FieldEntry, len(ts))
	for i, t := range ts {
		if !t.Valid() {
			return nil, fmt.Errorf("field %d: %w", i, types.ErrUnknownType)
		}
		fields[i] = FieldEntry{Type: t, Name: names[i]}
	}
	return build(fields), nil
}

// NewAnonymous builds a descriptor whose fields all have empty names.
func NewAnonymous(ts ...types.Type) (*TupleDesc, error) {
	return New(ts, make([]string, len(ts)))
}

// build takes ownership of fields.
func build(fields []FieldEntry) *TupleDesc {
	d := &TupleDesc{
		fields:  fields,
		offsets: make([]int, len(fields)),
	}
	for i, f := range fields {
		d.offsets[i] = d.size
		d.size += f.Type.Len()
	}
	return d
}

func (d *TupleDesc) NumFields() int { return len(d.fields) }

// Size returns the byte size of every tuple with this descriptor.
func (d *TupleDesc) Size() int { return d.size }

func (d *TupleDesc) checkIndex(i int) error {
	if i < 0 || i >= len(d.fields) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(d.fields))
	}
	return nil
}

// FieldName returns the (possibly empty) name of the i-th field.
func (d *TupleDesc) FieldName(i int) (string, error) {
	if err := d.checkIndex(i); err != nil {
		return "", err
	}
	return d.fields[i].Name, nil
}

// FieldType returns the type of the i-th field.
func (d *TupleDesc) FieldType(i int) (types.Type, error) {
	if err := d.checkIndex(i); err != nil {
		return 0, err
	}
	return d.fields[i].Type, nil
}

// Offset returns the byte offset of the i-th field inside a tuple.
func (d *TupleDesc) Offset(i int) (int, error) {
	if err := d.checkIndex(i); err != nil {
		return 0, err
	}
	return d.offsets[i], nil
}

// IndexOf returns the position of the first field named name.
// Matching is exact and case-sensitive.
func (d *TupleDesc) IndexOf(name string) (int, error) {
	for i, f := range d.fields {
		if f.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

// All yields (index, entry) pairs in field order. Each call starts a new traversal.
func (d *TupleDesc) All() iter.Seq2[int, FieldEntry] {
	return func(yield func(int, FieldEntry) bool) {
		for i, f := range d.fields {
			if !yield(i, f) {
				return
			}
		}
	}
}

// Fields returns a copy of the entries.
func (d *TupleDesc) Fields() []FieldEntry {
	out := make([]FieldEntry, len(d.fields))
	copy(out, d.fields)
	return out
}

// Merge returns a descriptor with left's fields followed by right's.
// Neither input is modified.
func Merge(left, right *TupleDesc) *TupleDesc {
	fields := make([]FieldEntry, 0, len(left.fields)+len(right.fields))
	fields = append(fields, left.fields...)
	fields = append(fields, right.fields...)
	return build(fields)
}

// Project returns a descriptor made of d's fields at idx, in idx order.
// Positions may repeat.
func Project(d *TupleDesc, idx []int) (*TupleDesc, error) {
	if len(idx) == 0 {
		return nil, ErrNoFields
	}
	fields := make([]FieldEntry, len(idx))
	for j, i := range idx {
		if err := d.checkIndex(i); err != nil {
			return nil, err
		}
		fields[j] = d.fields[i]
	}
	return build(fields), nil
}

// Equal reports whether d and other have the same size and the same type at
// every position. Field names are ignored.
func (d *TupleDesc) Equal(other *TupleDesc) bool {
	if d == nil || other == nil {
		return false
	}
	if d.size != other.size || len(d.fields) != len(other.fields) {
		return false
	}
	for i := range d.fields {
		if d.fields[i].Type != other.fields[i].Type {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal: it covers the ordered type sequence only.
func (d *TupleDesc) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, len(d.fields))
	for i, f := range d.fields {
		buf[i] = byte(f.Type)
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}

// String renders "name(type)" for every field, in order. Diagnostic only.
func (d *TupleDesc) String() string {
	var sb strings.Builder
	for _, f := range d.fields {
		sb.WriteString(f.String())
	}
	return sb.String()
}
