// Package pageiter implements a lazy walk of a process's committed,
// readable-and-writable memory regions, yielding page descriptors in
// ascending address order.
//
// On Linux there is no VirtualQueryEx equivalent call; the same
// information comes from reading /proc/[pid]/maps, one line per mapped
// region. Each line looks like:
//
//	00400000-00452000 r-xp 00000000 08:02 173521 /usr/bin/dbus-daemon
//
// the address range, the permission string, and a trailing path that is
// empty for anonymous regions and a bracketed name such as [heap] or
// [stack] for those regions.
package pageiter

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Page is one committed, read+write memory region.
type Page struct {
	Start uint64
	End   uint64
	Path  string // empty for anonymous mappings
}

// Size returns the page's byte length.
func (p Page) Size() uint64 {
	return p.End - p.Start
}

// Iterator walks a process's /proc/[pid]/maps lazily, one Next() call per
// region, so a caller can stop early (e.g. a cancelled scan) without
// having read the whole map file.
type Iterator struct {
	f       *os.File
	scanner *bufio.Scanner
	pid     int
}

// Open begins a walk of pid's memory map. The caller must Close it.
func Open(pid int) (*Iterator, error) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/maps", pid))
	if err != nil {
		return nil, fmt.Errorf("pageiter: open maps for pid %d: %w", pid, err)
	}
	return &Iterator{f: f, scanner: bufio.NewScanner(f), pid: pid}, nil
}

// Close releases the underlying /proc/[pid]/maps file.
func (it *Iterator) Close() error {
	return it.f.Close()
}

// Next returns the next read+write page, skipping regions that are not
// both readable and writable. It returns ok=false once the map is
// exhausted; a malformed line is skipped rather than treated as fatal,
// since procfs lines can be rewritten mid-read by the kernel.
func (it *Iterator) Next() (Page, bool) {
	for it.scanner.Scan() {
		p, ok := parseMapsLine(it.scanner.Text())
		if !ok {
			continue
		}
		return p, true
	}
	return Page{}, false
}

// parseMapsLine parses one /proc/[pid]/maps line and reports whether it
// describes a committed, read+write region.
func parseMapsLine(line string) (Page, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Page{}, false
	}
	addrs := strings.SplitN(fields[0], "-", 2)
	if len(addrs) != 2 {
		return Page{}, false
	}
	start, err := strconv.ParseUint(addrs[0], 16, 64)
	if err != nil {
		return Page{}, false
	}
	end, err := strconv.ParseUint(addrs[1], 16, 64)
	if err != nil {
		return Page{}, false
	}
	perms := fields[1]
	if !strings.Contains(perms, "r") || !strings.Contains(perms, "w") {
		return Page{}, false
	}
	var path string
	if len(fields) >= 6 {
		path = fields[5]
	}
	return Page{Start: start, End: end, Path: path}, true
}
