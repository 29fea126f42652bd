package scanner

import (
	"os"
	"testing"
	"unsafe"

	"github.com/Haimrich/mismem/memtype"
	"github.com/Haimrich/mismem/procio"
	"github.com/Haimrich/mismem/progress"
	"github.com/Haimrich/mismem/resultset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probe is a small value of known content this process's own address
// space holds, standing in for a separate target process that allocates
// pages of known content: scanning the test binary's own memory
// through procio exercises the same process_vm_readv path a separate
// target process would.
var probe = struct {
	marker int32
	pad    [3]int32
}{marker: 0x5a5a5a5a}

func selfHandle(t *testing.T) *procio.Handle {
	t.Helper()
	h, err := procio.Open(os.Getpid())
	require.NoError(t, err)
	return h
}

func TestFirstScanFindsKnownValue(t *testing.T) {
	h := selfHandle(t)
	store := resultset.New()
	prog := progress.New()

	operand := memtype.EncodeI32(0x5a5a5a5a)
	err := FirstScan(h, store, memtype.I32, operand, prog)
	require.NoError(t, err)

	addr := uint64(uintptr(unsafe.Pointer(&probe.marker)))
	found := false
	for r := range store.All() {
		if r.Tag == memtype.I32 && r.Address == addr {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFilterNarrowsToMatchingAddresses(t *testing.T) {
	h := selfHandle(t)
	store := resultset.New()
	resultset.Push(&store.I32, uint64(uintptr(unsafe.Pointer(&probe.marker))), int32(0))
	resultset.Push(&store.I32, 0xdeadbeef00, int32(0))

	Filter(h, store, memtype.I32, memtype.EncodeI32(0x5a5a5a5a), progress.New())

	assert.Len(t, store.I32, 1)
	assert.Equal(t, uint64(uintptr(unsafe.Pointer(&probe.marker))), store.I32[0].Addr)
}

func TestRefreshDropsUnreadableAddress(t *testing.T) {
	h := selfHandle(t)
	store := resultset.New()
	resultset.Push(&store.I32, uint64(uintptr(unsafe.Pointer(&probe.marker))), int32(0))
	resultset.Push(&store.I32, ^uint64(0)-0x1000, int32(0))

	Refresh(h, store, progress.New())

	require.Len(t, store.I32, 1)
	assert.EqualValues(t, 0x5a5a5a5a, store.I32[0].Cur)
}
