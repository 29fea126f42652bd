package session

import (
	"os"
	"testing"
	"unsafe"

	"github.com/Haimrich/mismem/memtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var marker int32 = 0x1234

func TestAttachAndSearch(t *testing.T) {
	s := New()
	require.NoError(t, s.Attach(os.Getpid()))

	err := s.Search(memtype.I32, "4660") // 0x1234
	require.NoError(t, err)

	addr := uint64(uintptr(unsafe.Pointer(&marker)))
	found := false
	for _, r := range s.Results() {
		if r.Address == addr && r.Tag == memtype.I32 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSearchWithoutAttachFails(t *testing.T) {
	s := New()
	err := s.Search(memtype.I32, "1")
	assert.Error(t, err)
}

func TestSetModeFilterSearchKeepsMode(t *testing.T) {
	s := New()
	require.NoError(t, s.Attach(os.Getpid()))
	require.NoError(t, s.Search(memtype.I32, "4660"))

	s.SetMode(ModeFilter)
	require.NoError(t, s.Search(memtype.I32, "4660"))
	assert.Equal(t, ModeFilter, s.Mode())
}

func TestRefreshWithoutAttachFails(t *testing.T) {
	s := New()
	err := s.Refresh()
	assert.Error(t, err)
}

func TestWriteLabelRoundTrip(t *testing.T) {
	s := New()
	require.NoError(t, s.Attach(os.Getpid()))

	addr := uint64(uintptr(unsafe.Pointer(&marker)))
	label := memtype.FormatLabel(addr, memtype.I32)
	require.NoError(t, s.WriteLabel(label, "42"))
	assert.Equal(t, int32(42), marker)
}
