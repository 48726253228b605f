package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/tupledesc/internal/types"
)

// makeTestDesc builds a descriptor used across codec tests.
func makeTestDesc(t *testing.T) *TupleDesc {
	return mustNew(t,
		[]types.Type{types.Int32, types.Int64, types.Bool, types.Float64, types.Text},
		[]string{"id32", "id64", "active", "score", "name"},
	)
}

func TestEncodeDecodeTuple_RoundTrip(t *testing.T) {
	d := makeTestDesc(t)

	values := []any{
		int32(42),        // id32
		int64(123456789), // id64
		true,             // active
		3.14159,          // score
		"hello",          // name
	}

	buf, err := EncodeTuple(d, values)
	require.NoError(t, err)
	require.Len(t, buf, d.Size())

	row, err := DecodeTuple(d, buf)
	require.NoError(t, err)

	require.Len(t, row, len(values))
	require.Equal(t, int32(42), row[0].(int32))
	require.Equal(t, int64(123456789), row[1].(int64))
	require.True(t, row[2].(bool))
	require.InDelta(t, 3.14159, row[3].(float64), 1e-9)
	require.Equal(t, "hello", row[4].(string))
}

func TestEncodeTuple_FieldsAtOffsets(t *testing.T) {
	d := makeTestDesc(t)

	buf, err := EncodeTuple(d, []any{1, 2, false, 0.0, "ab"})
	require.NoError(t, err)

	off, err := d.Offset(4)
	require.NoError(t, err)
	// u16 length then payload, rest zero padded
	require.Equal(t, []byte{2, 0, 'a', 'b', 0}, buf[off:off+5])

	off, err = d.Offset(0)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 0, 0}, buf[off:off+4])
}

func TestEncodeTuple_Mismatch(t *testing.T) {
	d := makeTestDesc(t)

	t.Run("wrong number of values", func(t *testing.T) {
		_, err := EncodeTuple(d, []any{1, 2, 3})
		require.ErrorIs(t, err, ErrValueMismatch)
	})

	t.Run("wrong type for field", func(t *testing.T) {
		_, err := EncodeTuple(d, []any{"not-int32", int64(1), true, 1.0, "ok"})
		require.ErrorIs(t, err, ErrValueMismatch)
	})

	t.Run("int32 overflow", func(t *testing.T) {
		_, err := EncodeTuple(d, []any{int64(1) << 40, int64(1), true, 1.0, "ok"})
		require.ErrorIs(t, err, ErrValueMismatch)
	})

	t.Run("nil value", func(t *testing.T) {
		_, err := EncodeTuple(d, []any{1, int64(1), nil, 1.0, "ok"})
		require.ErrorIs(t, err, ErrValueMismatch)
	})
}

func TestEncodeTuple_TextTooLong(t *testing.T) {
	d := mustNew(t, []types.Type{types.Text}, []string{"name"})

	_, err := EncodeTuple(d, []any{strings.Repeat("a", MaxTextBytes)})
	require.NoError(t, err)

	_, err = EncodeTuple(d, []any{strings.Repeat("a", MaxTextBytes+1)})
	require.ErrorIs(t, err, ErrTextTooLong)
}

func TestDecodeTuple_BadBuffer(t *testing.T) {
	d := makeTestDesc(t)

	buf, err := EncodeTuple(d, []any{42, int64(99), true, 2.71828, "test"})
	require.NoError(t, err)

	t.Run("truncated buffer", func(t *testing.T) {
		_, err := DecodeTuple(d, buf[:len(buf)-3])
		require.ErrorIs(t, err, ErrBadBuffer)
	})

	t.Run("corrupt text length", func(t *testing.T) {
		bad := append([]byte(nil), buf...)
		off, _ := d.Offset(4)
		bad[off] = 0xFF
		_, err := DecodeTuple(d, bad)
		require.ErrorIs(t, err, ErrBadBuffer)
	})
}

func TestReadWriteField(t *testing.T) {
	d := makeTestDesc(t)

	buf, err := EncodeTuple(d, []any{7, int64(8), false, 1.5, "a longer name"})
	require.NoError(t, err)

	require.NoError(t, WriteField(d, buf, 4, "bob"))
	require.NoError(t, WriteField(d, buf, 2, true))

	v, err := ReadField(d, buf, 4)
	require.NoError(t, err)
	require.Equal(t, "bob", v)

	v, err = ReadField(d, buf, 2)
	require.NoError(t, err)
	require.Equal(t, true, v)

	row, err := DecodeTuple(d, buf)
	require.NoError(t, err)
	require.Equal(t, int32(7), row[0])
	require.Equal(t, int64(8), row[1])

	_, err = ReadField(d, buf, d.NumFields())
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	err = WriteField(d, buf, 0, "x")
	require.ErrorIs(t, err, ErrValueMismatch)
}
