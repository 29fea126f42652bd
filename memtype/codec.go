package memtype

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Decode* read the host-native-byte-order wire encoding of each variant.
// They panic if b is shorter than the type's width; callers (resultset,
// scanner) always size b to the type's width first, so a short slice here
// is a programmer error, not a runtime condition to recover from.

func DecodeU8(b []byte) uint8   { return b[0] }
func DecodeI8(b []byte) int8    { return int8(b[0]) }
func DecodeU16(b []byte) uint16 { return binary.NativeEndian.Uint16(b) }
func DecodeI16(b []byte) int16  { return int16(binary.NativeEndian.Uint16(b)) }
func DecodeU32(b []byte) uint32 { return binary.NativeEndian.Uint32(b) }
func DecodeI32(b []byte) int32  { return int32(binary.NativeEndian.Uint32(b)) }
func DecodeU64(b []byte) uint64 { return binary.NativeEndian.Uint64(b) }
func DecodeI64(b []byte) int64  { return int64(binary.NativeEndian.Uint64(b)) }

func DecodeF32(b []byte) float32 {
	return math.Float32frombits(binary.NativeEndian.Uint32(b))
}

func DecodeF64(b []byte) float64 {
	return math.Float64frombits(binary.NativeEndian.Uint64(b))
}

func DecodeU128(b []byte) Uint128 {
	return Uint128{
		Lo: binary.NativeEndian.Uint64(b[0:8]),
		Hi: binary.NativeEndian.Uint64(b[8:16]),
	}
}

func DecodeI128(b []byte) Int128 {
	return Int128{
		Lo: binary.NativeEndian.Uint64(b[0:8]),
		Hi: binary.NativeEndian.Uint64(b[8:16]),
	}
}

// Encode* produce the host-native-byte-order wire form, the inverse of
// Decode*. Used when turning a parsed operand into the bytes the Scanner
// and Writer compare/transmit.

func EncodeU8(v uint8) []byte { return []byte{v} }
func EncodeI8(v int8) []byte  { return []byte{byte(v)} }

func EncodeU16(v uint16) []byte {
	b := make([]byte, 2)
	binary.NativeEndian.PutUint16(b, v)
	return b
}

func EncodeI16(v int16) []byte { return EncodeU16(uint16(v)) }

func EncodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, v)
	return b
}

func EncodeI32(v int32) []byte { return EncodeU32(uint32(v)) }

func EncodeU64(v uint64) []byte {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, v)
	return b
}

func EncodeI64(v int64) []byte { return EncodeU64(uint64(v)) }

func EncodeF32(v float32) []byte {
	b := make([]byte, 4)
	binary.NativeEndian.PutUint32(b, math.Float32bits(v))
	return b
}

func EncodeF64(v float64) []byte {
	b := make([]byte, 8)
	binary.NativeEndian.PutUint64(b, math.Float64bits(v))
	return b
}

func EncodeU128(v Uint128) []byte {
	b := make([]byte, 16)
	binary.NativeEndian.PutUint64(b[0:8], v.Lo)
	binary.NativeEndian.PutUint64(b[8:16], v.Hi)
	return b
}

func EncodeI128(v Int128) []byte {
	b := make([]byte, 16)
	binary.NativeEndian.PutUint64(b[0:8], v.Lo)
	binary.NativeEndian.PutUint64(b[8:16], v.Hi)
	return b
}

// Format* render decimal display strings for iter_ordered's value labels.

func FormatU8(v uint8) string   { return strconv.FormatUint(uint64(v), 10) }
func FormatI8(v int8) string    { return strconv.FormatInt(int64(v), 10) }
func FormatU16(v uint16) string { return strconv.FormatUint(uint64(v), 10) }
func FormatI16(v int16) string  { return strconv.FormatInt(int64(v), 10) }
func FormatU32(v uint32) string { return strconv.FormatUint(uint64(v), 10) }
func FormatI32(v int32) string  { return strconv.FormatInt(int64(v), 10) }
func FormatU64(v uint64) string { return strconv.FormatUint(v, 10) }
func FormatI64(v int64) string  { return strconv.FormatInt(v, 10) }
func FormatF32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
func FormatF64(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
func FormatU128(v Uint128) string { return v.big().String() }
func FormatI128(v Int128) string  { return v.big().String() }
