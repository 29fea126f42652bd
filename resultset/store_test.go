package resultset

import (
	"testing"

	"github.com/Haimrich/mismem/memtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushLenClear(t *testing.T) {
	s := New()
	Push(&s.U32, 0x1000, uint32(7))
	Push(&s.U32, 0x2000, uint32(8))
	Push(&s.F64, 0x3000, 1.5)
	assert.Equal(t, 3, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestFilterInPlacePreservesOrder(t *testing.T) {
	s := New()
	Push(&s.I32, 0x10, int32(5))
	Push(&s.I32, 0x20, int32(6))
	Push(&s.I32, 0x30, int32(5))

	FilterInPlace(&s.I32, func(v int32) bool { return v == 5 })

	require.Len(t, s.I32, 2)
	assert.Equal(t, uint64(0x10), s.I32[0].Addr)
	assert.Equal(t, uint64(0x30), s.I32[1].Addr)
}

func TestRefreshShiftsPrevAndDropsUnreadable(t *testing.T) {
	s := New()
	Push(&s.U16, 0x10, uint16(1))
	Push(&s.U16, 0x20, uint16(2))

	mem := map[uint64]uint16{0x10: 99}
	Refresh(&s.U16, func(addr uint64) (uint16, bool) {
		v, ok := mem[addr]
		return v, ok
	})

	require.Len(t, s.U16, 1)
	assert.Equal(t, uint16(99), s.U16[0].Cur)
	assert.Equal(t, uint16(1), s.U16[0].Prev)
}

func TestTakeDetachesAndResets(t *testing.T) {
	s := New()
	Push(&s.U8, 0x10, uint8(1))

	taken := s.Take()
	assert.Equal(t, 1, taken.Len())
	assert.Equal(t, 0, s.Len())
}

func TestAllOrdersByAddressThenCanonicalTag(t *testing.T) {
	s := New()
	Push(&s.U32, 0x100, uint32(1))
	Push(&s.I64, 0x100, int64(2))
	Push(&s.U8, 0x50, uint8(3))

	var rows []Row
	for r := range s.All() {
		rows = append(rows, r)
	}
	require.Len(t, rows, 3)
	assert.Equal(t, uint64(0x50), rows[0].Address)
	assert.Equal(t, memtype.U8, rows[0].Tag)

	assert.Equal(t, uint64(0x100), rows[1].Address)
	assert.Equal(t, memtype.I64, rows[1].Tag)
	assert.Equal(t, uint64(0x100), rows[2].Address)
	assert.Equal(t, memtype.U32, rows[2].Tag)
}

func TestAllEarlyStop(t *testing.T) {
	s := New()
	Push(&s.U8, 0x1, uint8(1))
	Push(&s.U8, 0x2, uint8(2))
	Push(&s.U8, 0x3, uint8(3))

	count := 0
	for range s.All() {
		count++
		if count == 1 {
			break
		}
	}
	assert.Equal(t, 1, count)
}
