package memtype

import "math/big"

// Uint128 and Int128 carry the two 16-byte variants. The host architectures
// mismem targets (amd64, arm64) are little-endian, so the low 8 bytes of the
// wire encoding hold Lo and the high 8 bytes hold Hi; this composition is not
// re-derived from runtime byte order the way the <=8-byte types are.

// Uint128 is an unsigned 128-bit integer, split into low/high 64-bit halves.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Int128 is a two's-complement signed 128-bit integer, split into low/high
// 64-bit halves (sign lives in the top bit of Hi).
type Int128 struct {
	Lo uint64
	Hi uint64
}

func (v Uint128) big() *big.Int {
	n := new(big.Int).SetUint64(v.Hi)
	n.Lsh(n, 64)
	n.Or(n, new(big.Int).SetUint64(v.Lo))
	return n
}

func (v Int128) big() *big.Int {
	u := Uint128{Lo: v.Lo, Hi: v.Hi}.big()
	if v.Hi&(1<<63) != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		u.Sub(u, mod)
	}
	return u
}

func bigToUint128(n *big.Int) (Uint128, bool) {
	if n.Sign() < 0 || n.BitLen() > 128 {
		return Uint128{}, false
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(n, mask).Uint64()
	hi := new(big.Int).Rsh(n, 64).Uint64()
	return Uint128{Lo: lo, Hi: hi}, true
}

func bigToInt128(n *big.Int) (Int128, bool) {
	min128 := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	if n.Cmp(min128) < 0 || n.Cmp(max128) > 0 {
		return Int128{}, false
	}
	u := new(big.Int).Set(n)
	if u.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), 128)
		u.Add(u, mod)
	}
	mask := new(big.Int).SetUint64(^uint64(0))
	lo := new(big.Int).And(u, mask).Uint64()
	hi := new(big.Int).Rsh(u, 64).Uint64()
	return Int128{Lo: lo, Hi: hi}, true
}
