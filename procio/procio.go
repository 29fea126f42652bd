// Package procio implements opening a target process, probing whether it
// is still reachable, and reading or writing its memory.
//
// Memory is transferred with the process_vm_readv(2)/process_vm_writev(2)
// syscall pair, which copies directly between this process's address
// space and a target's without an intervening ptrace attach: there is no
// code injection, no breakpoint, and no symbol interpretation anywhere
// in this path.
package procio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// OpenError reports that a process could not be opened or is no longer
// reachable.
type OpenError struct {
	Pid int
	Err error
}

func (e *OpenError) Error() string {
	return "Error: cannot open process"
}

func (e *OpenError) Unwrap() error { return e.Err }

// Handle is an open cross-process memory handle. It carries no OS
// resource beyond the pid itself: process_vm_readv/writev take a pid on
// every call, so there is nothing to hold open. Close exists to give
// callers a single place to stop using a stale Handle.
type Handle struct {
	pid    int
	closed bool
}

// Open verifies that pid's /proc entry exists and returns a Handle. It
// does not check whether this process may read or write the target's
// memory; a permission failure surfaces as an error from the first Read
// or Write.
func Open(pid int) (*Handle, error) {
	if err := Probe(pid); err != nil {
		return nil, err
	}
	return &Handle{pid: pid}, nil
}

// Probe reports whether pid has a /proc entry, without creating a
// Handle. Open calls it before handing out a Handle. It makes no
// permission check on the target's memory.
func Probe(pid int) error {
	if _, err := os.Stat(fmt.Sprintf("/proc/%d", pid)); err != nil {
		return &OpenError{Pid: pid, Err: err}
	}
	return nil
}

// Pid returns the target process id.
func (h *Handle) Pid() int {
	return h.pid
}

// Close marks the handle unusable. It never returns an error: there is
// no OS resource to release.
func (h *Handle) Close() error {
	h.closed = true
	return nil
}

// Read copies n bytes from addr in the target process into a new slice.
// A partial or failed transfer is reported as an error; callers scanning
// a whole page can wrap it with the page's range for a more specific
// diagnostic.
func (h *Handle) Read(addr uint64, n int) ([]byte, error) {
	if h.closed {
		return nil, fmt.Errorf("procio: read on closed handle for pid %d", h.pid)
	}
	buf := make([]byte, n)
	local := []unix.Iovec{{Base: &buf[0], Len: uint64(n)}}
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: n}}
	got, err := unix.ProcessVMReadv(h.pid, local, remote, 0)
	if err != nil {
		return nil, fmt.Errorf("procio: read %d bytes at 0x%x in pid %d: %w", n, addr, h.pid, err)
	}
	if got != n {
		return nil, fmt.Errorf("procio: short read at 0x%x in pid %d: got %d of %d bytes", addr, h.pid, got, n)
	}
	return buf, nil
}

// Write copies data into the target process at addr. A short write is
// reported as an error rather than silently accepted.
func (h *Handle) Write(addr uint64, data []byte) error {
	if h.closed {
		return fmt.Errorf("procio: write on closed handle for pid %d", h.pid)
	}
	if len(data) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &data[0], Len: uint64(len(data))}}
	remote := []unix.RemoteIovec{{Base: uintptr(addr), Len: len(data)}}
	got, err := unix.ProcessVMWritev(h.pid, local, remote, 0)
	if err != nil {
		return fmt.Errorf("procio: write %d bytes at 0x%x in pid %d: %w", len(data), addr, h.pid, err)
	}
	if got != len(data) {
		return fmt.Errorf("procio: short write at 0x%x in pid %d: wrote %d of %d bytes", addr, h.pid, got, len(data))
	}
	return nil
}
