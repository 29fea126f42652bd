package memtype

import (
	"fmt"
	"math/big"
	"strconv"
)

// ParseError reports a failed operand parse against a chosen Tag.
type ParseError struct {
	Text string
	Tag  Tag
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parsing error: cannot parse %q as %s", e.Text, e.Tag)
}

// ParseOperand converts operator-entered text into the wire bytes for tag.
// For the ten integer variants it tries the unsigned parse first and
// falls back to the signed parse: an operator typing "-1" against a u32
// field still round-trips through the signed fallback, and a value typed
// against an unsigned field is accepted without a leading sign. The two
// float variants parse directly with no fallback.
func ParseOperand(text string, tag Tag) ([]byte, error) {
	switch tag {
	case U8:
		if v, err := strconv.ParseUint(text, 10, 8); err == nil {
			return EncodeU8(uint8(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 8); err == nil {
			return EncodeU8(uint8(v)), nil
		}
	case I8:
		if v, err := strconv.ParseUint(text, 10, 8); err == nil {
			return EncodeI8(int8(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 8); err == nil {
			return EncodeI8(int8(v)), nil
		}
	case U16:
		if v, err := strconv.ParseUint(text, 10, 16); err == nil {
			return EncodeU16(uint16(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 16); err == nil {
			return EncodeU16(uint16(v)), nil
		}
	case I16:
		if v, err := strconv.ParseUint(text, 10, 16); err == nil {
			return EncodeI16(int16(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 16); err == nil {
			return EncodeI16(int16(v)), nil
		}
	case U32:
		if v, err := strconv.ParseUint(text, 10, 32); err == nil {
			return EncodeU32(uint32(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 32); err == nil {
			return EncodeU32(uint32(v)), nil
		}
	case I32:
		if v, err := strconv.ParseUint(text, 10, 32); err == nil {
			return EncodeI32(int32(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 32); err == nil {
			return EncodeI32(int32(v)), nil
		}
	case U64:
		if v, err := strconv.ParseUint(text, 10, 64); err == nil {
			return EncodeU64(v), nil
		}
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return EncodeU64(uint64(v)), nil
		}
	case I64:
		if v, err := strconv.ParseUint(text, 10, 64); err == nil {
			return EncodeI64(int64(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return EncodeI64(v), nil
		}
	case U128:
		if n, ok := new(big.Int).SetString(text, 10); ok {
			if v, ok := bigToUint128(n); ok {
				return EncodeU128(v), nil
			}
			if v, ok := bigToInt128(n); ok {
				return EncodeI128(v), nil
			}
		}
	case I128:
		if n, ok := new(big.Int).SetString(text, 10); ok {
			if v, ok := bigToUint128(n); ok {
				return EncodeU128(v), nil
			}
			if v, ok := bigToInt128(n); ok {
				return EncodeI128(v), nil
			}
		}
	case F32:
		if v, err := strconv.ParseFloat(text, 32); err == nil {
			return EncodeF32(float32(v)), nil
		}
	case F64:
		if v, err := strconv.ParseFloat(text, 64); err == nil {
			return EncodeF64(v), nil
		}
	}
	return nil, &ParseError{Text: text, Tag: tag}
}

// FormatValue renders the wire bytes for tag as the decimal display
// string used by the result stream's current/previous values. b must be
// exactly tag.Width() bytes.
func FormatValue(b []byte, tag Tag) string {
	switch tag {
	case U8:
		return FormatU8(DecodeU8(b))
	case I8:
		return FormatI8(DecodeI8(b))
	case U16:
		return FormatU16(DecodeU16(b))
	case I16:
		return FormatI16(DecodeI16(b))
	case U32:
		return FormatU32(DecodeU32(b))
	case I32:
		return FormatI32(DecodeI32(b))
	case U64:
		return FormatU64(DecodeU64(b))
	case I64:
		return FormatI64(DecodeI64(b))
	case U128:
		return FormatU128(DecodeU128(b))
	case I128:
		return FormatI128(DecodeI128(b))
	case F32:
		return FormatF32(DecodeF32(b))
	case F64:
		return FormatF64(DecodeF64(b))
	}
	return ""
}
