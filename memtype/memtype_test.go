package memtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidths(t *testing.T) {
	assert.Equal(t, 1, U8.Width())
	assert.Equal(t, 2, U16.Width())
	assert.Equal(t, 4, U32.Width())
	assert.Equal(t, 8, U64.Width())
	assert.Equal(t, 16, U128.Width())
	assert.Equal(t, 4, F32.Width())
	assert.Equal(t, 8, F64.Width())
}

func TestParseSuffixRoundTrip(t *testing.T) {
	for tag := Tag(0); tag < numTags; tag++ {
		got, ok := ParseSuffix(tag.Suffix())
		require.True(t, ok)
		assert.Equal(t, tag, got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	assert.EqualValues(t, 42, DecodeU8(EncodeU8(42)))
	assert.EqualValues(t, -5, DecodeI8(EncodeI8(-5)))
	assert.EqualValues(t, 1000, DecodeU16(EncodeU16(1000)))
	assert.EqualValues(t, -1000, DecodeI16(EncodeI16(-1000)))
	assert.EqualValues(t, 100000, DecodeU32(EncodeU32(100000)))
	assert.EqualValues(t, -100000, DecodeI32(EncodeI32(-100000)))
	assert.EqualValues(t, 1<<40, DecodeU64(EncodeU64(1<<40)))
	assert.EqualValues(t, -(1 << 40), DecodeI64(EncodeI64(-(1 << 40))))
	assert.InDelta(t, 3.5, float64(DecodeF32(EncodeF32(3.5))), 0.0001)
	assert.InDelta(t, 3.5, DecodeF64(EncodeF64(3.5)), 0.0001)

	u := Uint128{Lo: 123, Hi: 456}
	assert.Equal(t, u, DecodeU128(EncodeU128(u)))
	i := Int128{Lo: 1, Hi: 1 << 63}
	assert.Equal(t, i, DecodeI128(EncodeI128(i)))
}

func TestParseOperandUnsignedThenSignedFallback(t *testing.T) {
	b, err := ParseOperand("-1", U32)
	require.NoError(t, err)
	assert.EqualValues(t, ^uint32(0), DecodeU32(b))

	b, err = ParseOperand("200", I8)
	require.NoError(t, err)
	assert.EqualValues(t, -56, DecodeI8(b))

	_, err = ParseOperand("not-a-number", U32)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseOperandFloatNoFallback(t *testing.T) {
	b, err := ParseOperand("3.25", F64)
	require.NoError(t, err)
	assert.InDelta(t, 3.25, DecodeF64(b), 0.0001)

	_, err = ParseOperand("abc", F32)
	assert.Error(t, err)
}

func TestParseOperand128(t *testing.T) {
	b, err := ParseOperand("340282366920938463463374607431768211455", U128)
	require.NoError(t, err)
	v := DecodeU128(b)
	assert.Equal(t, uint64(^uint64(0)), v.Lo)
	assert.Equal(t, uint64(^uint64(0)), v.Hi)

	b, err = ParseOperand("-1", I128)
	require.NoError(t, err)
	iv := DecodeI128(b)
	assert.Equal(t, uint64(^uint64(0)), iv.Lo)
	assert.Equal(t, uint64(^uint64(0)), iv.Hi)
}

func TestLabelRoundTrip(t *testing.T) {
	label := FormatLabel(0xdeadbeef, U32)
	assert.Equal(t, "00000000DEADBEEF:u32", label)

	addr, tag, err := ParseLabel(label)
	require.NoError(t, err)
	assert.EqualValues(t, 0xdeadbeef, addr)
	assert.Equal(t, U32, tag)
}

func TestLabelErrors(t *testing.T) {
	_, _, err := ParseLabel("no-colon-here")
	var labelErr *LabelError
	require.ErrorAs(t, err, &labelErr)

	_, _, err = ParseLabel("0xzz:u32")
	require.Error(t, err)

	_, _, err = ParseLabel("0x10:bogus")
	require.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "42", FormatValue(EncodeU8(42), U8))
	assert.Equal(t, "-1", FormatValue(EncodeI16(-1), I16))
}
