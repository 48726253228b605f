// stand for bytes helper
package bx

import "encoding/binary"

var LE = binary.LittleEndian

// --- LE: read at offset ---
func U16At(b []byte, off int) uint16 { return LE.Uint16(b[off:]) }
func U32At(b []byte, off int) uint32 { return LE.Uint32(b[off:]) }
func U64At(b []byte, off int) uint64 { return LE.Uint64(b[off:]) }

// --- LE: write at offset ---
func PutU16At(b []byte, off int, v uint16) { LE.PutUint16(b[off:], v) }
func PutU32At(b []byte, off int, v uint32) { LE.PutUint32(b[off:], v) }
func PutU64At(b []byte, off int, v uint64) { LE.PutUint64(b[off:], v) }

