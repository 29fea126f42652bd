package procio

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeSelf(t *testing.T) {
	require.NoError(t, Probe(os.Getpid()))
}

func TestProbeMissingPid(t *testing.T) {
	err := Probe(1 << 30)
	var openErr *OpenError
	require.ErrorAs(t, err, &openErr)
	assert.Equal(t, 1<<30, openErr.Pid)
}

func TestOpenMissingPid(t *testing.T) {
	_, err := Open(1 << 30)
	assert.Error(t, err)
}

func TestReadWriteOnClosedHandle(t *testing.T) {
	h, err := Open(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, h.Close())

	_, err = h.Read(0x1000, 4)
	assert.Error(t, err)

	err = h.Write(0x1000, []byte{1, 2, 3, 4})
	assert.Error(t, err)
}

func TestHandlePid(t *testing.T) {
	h, err := Open(os.Getpid())
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), h.Pid())
}
