package bx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLittleEndianAt verifies the offset variants used to lay fields out
// inside a fixed-width tuple.
func TestLittleEndianAt(t *testing.T) {
	buf := make([]byte, 16)

	PutU16At(buf, 0, 0x0A0B)
	PutU32At(buf, 2, 0x01020304)
	PutU64At(buf, 6, 0x0102030405060708)

	// LE: least-significant byte first
	assert.Equal(t, []byte{0x0B, 0x0A}, buf[0:2])
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf[2:6])

	assert.Equal(t, uint16(0x0A0B), U16At(buf, 0))
	assert.Equal(t, uint32(0x01020304), U32At(buf, 2))
	assert.Equal(t, uint64(0x0102030405060708), U64At(buf, 6))
}
