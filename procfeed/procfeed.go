// Package procfeed enumerates candidate processes an operator can attach
// to, each with a pid, a display name, and a working-set size, sorted so
// the busiest processes come first.
package procfeed

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ProcessInfo is one row of the process chooser.
type ProcessInfo struct {
	Pid          int
	Name         string
	WorkingSetKB uint64
}

// List enumerates every process visible under /proc, sorted by
// descending working-set size (largest resident footprint first), the
// same ordering enum_processes applied.
func List() ([]ProcessInfo, error) {
	dir, err := os.Open("/proc")
	if err != nil {
		return nil, fmt.Errorf("procfeed: open /proc: %w", err)
	}
	defer dir.Close()

	names, err := dir.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("procfeed: read /proc: %w", err)
	}

	var out []ProcessInfo
	for _, n := range names {
		pid, err := strconv.Atoi(n)
		if err != nil {
			continue
		}
		info, ok := readOne(pid)
		if !ok {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].WorkingSetKB > out[j].WorkingSetKB
	})
	return out, nil
}

func readOne(pid int) (ProcessInfo, bool) {
	name, ok := readComm(pid)
	if !ok {
		return ProcessInfo{}, false
	}
	kb, _ := readVmRSS(pid)
	return ProcessInfo{Pid: pid, Name: name, WorkingSetKB: kb}, true
}

func readComm(pid int) (string, bool) {
	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid))
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// readVmRSS reads the VmRSS field of /proc/[pid]/status, the resident
// set size in kB — the closest procfs analogue of
// PROCESS_MEMORY_COUNTERS.WorkingSetSize.
func readVmRSS(pid int) (uint64, bool) {
	f, err := os.Open(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return 0, false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "VmRSS:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return kb, true
	}
	return 0, false
}
