package pageiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMapsLineReadWrite(t *testing.T) {
	p, ok := parseMapsLine("00601000-00602000 rw-p 00001000 08:01 123456 /usr/bin/foo")
	assert.True(t, ok)
	assert.Equal(t, uint64(0x00601000), p.Start)
	assert.Equal(t, uint64(0x00602000), p.End)
	assert.Equal(t, "/usr/bin/foo", p.Path)
}

func TestParseMapsLineAnonymous(t *testing.T) {
	p, ok := parseMapsLine("7f0000000000-7f0000021000 rw-p 00000000 00:00 0")
	assert.True(t, ok)
	assert.Equal(t, "", p.Path)
}

func TestParseMapsLineSkipsReadOnly(t *testing.T) {
	_, ok := parseMapsLine("00400000-00401000 r-xp 00000000 08:01 1 /usr/bin/foo")
	assert.False(t, ok)
}

func TestParseMapsLineSkipsMalformed(t *testing.T) {
	_, ok := parseMapsLine("not a maps line")
	assert.False(t, ok)
}

func TestPageSize(t *testing.T) {
	p := Page{Start: 0x1000, End: 0x2000}
	assert.Equal(t, uint64(0x1000), p.Size())
}

func TestOpenMissingProcess(t *testing.T) {
	_, err := Open(1 << 30)
	assert.Error(t, err)
}
