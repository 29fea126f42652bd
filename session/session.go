// Package session implements the single shared application object: one
// mutex-guarded owner of the current Typed Result Store, the Progress
// Channel, and the attached process. Operations take the store out from
// under the lock, operate on the local copy with no lock held, then
// re-acquire only to publish the result back.
//
// It also carries two pieces of operator-facing state beyond the bare
// scan/filter/refresh/write core: ScanMode (first-search vs. filter) and
// an Idle/Busy EditState.
package session

import (
	"fmt"
	"sync"

	"github.com/Haimrich/mismem/memtype"
	"github.com/Haimrich/mismem/procio"
	"github.com/Haimrich/mismem/progress"
	"github.com/Haimrich/mismem/resultset"
	"github.com/Haimrich/mismem/scanner"
)

// ScanMode selects which scanner pass Search runs next.
type ScanMode int

const (
	ModeFirstSearch ScanMode = iota
	ModeFilter
)

// EditState is the core's half of the busy/idle state machine; UI-local
// state (which pane is shown, whether the datatype picker or the operand
// input is open) stays in cmd/mismem, layered on top of Idle.
type EditState int

const (
	Idle EditState = iota
	Busy
)

// Session is the single shared, mutex-guarded application object.
type Session struct {
	mu sync.Mutex

	handle *procio.Handle
	store  *resultset.Store
	prog   *progress.Channel
	mode   ScanMode
	state  EditState
}

// New returns an unattached Session.
func New() *Session {
	return &Session{
		store: resultset.New(),
		prog:  progress.New(),
	}
}

// Attach opens pid as the session's target process, discarding any
// previously held Store (a new target invalidates every held address).
func (s *Session) Attach(pid int) error {
	h, err := procio.Open(pid)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		s.handle.Close()
	}
	s.handle = h
	s.store = resultset.New()
	s.state = Idle
	return nil
}

// Mode returns the currently selected ScanMode.
func (s *Session) Mode() ScanMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode changes the next Search call's scan pass.
func (s *Session) SetMode(m ScanMode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

// Progress returns the Progress Channel's current snapshot.
func (s *Session) Progress() progress.State {
	return s.prog.Snapshot()
}

// Results returns an ordered snapshot of the held entries, safe to call
// while a scan is in progress: the rows are built under the session
// lock, which a running scan does not hold.
func (s *Session) Results() []resultset.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []resultset.Row
	for r := range s.store.All() {
		rows = append(rows, r)
	}
	return rows
}

// Len reports how many entries the current Store holds.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// Search runs the pass selected by the current ScanMode (first scan or
// filter) against operand, parsed for tag. It follows a
// take/operate-unlocked/relock-publish discipline: the Store and Handle
// are taken under lock, the scan itself runs with no lock held so the UI
// can keep polling Progress, and the result is published back under a
// second, brief lock.
func (s *Session) Search(tag memtype.Tag, operandText string) error {
	operand, err := memtype.ParseOperand(operandText, tag)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.handle == nil {
		s.mu.Unlock()
		return fmt.Errorf("session: no process attached")
	}
	if s.state == Busy {
		s.mu.Unlock()
		return fmt.Errorf("session: scan already in progress")
	}
	s.state = Busy
	h := s.handle
	store := s.store.Take()
	mode := s.mode
	s.mu.Unlock()

	var scanErr error
	switch mode {
	case ModeFirstSearch:
		fresh := resultset.New()
		scanErr = scanner.FirstScan(h, fresh, tag, operand, s.prog)
		if scanErr == nil {
			store = fresh
		}
	case ModeFilter:
		scanner.Filter(h, store, tag, operand, s.prog)
	}

	s.mu.Lock()
	s.store = store
	s.state = Idle
	s.mu.Unlock()
	return scanErr
}

// Refresh re-reads every held address in place, under the same
// take/operate/relock discipline as Search.
func (s *Session) Refresh() error {
	s.mu.Lock()
	if s.handle == nil {
		s.mu.Unlock()
		return fmt.Errorf("session: no process attached")
	}
	if s.state == Busy {
		s.mu.Unlock()
		return fmt.Errorf("session: scan already in progress")
	}
	s.state = Busy
	h := s.handle
	store := s.store.Take()
	s.mu.Unlock()

	scanner.Refresh(h, store, s.prog)

	s.mu.Lock()
	s.store = store
	s.state = Idle
	s.mu.Unlock()
	return nil
}

// WriteLabel parses an address label ("HEX16:suffix" text) and writes
// valueText, parsed against the label's own tag, to that address in the
// attached process. cmd/mismem does not call it; it has no edit dialog.
func (s *Session) WriteLabel(label, valueText string) error {
	addr, tag, err := memtype.ParseLabel(label)
	if err != nil {
		return err
	}
	data, err := memtype.ParseOperand(valueText, tag)
	if err != nil {
		return err
	}

	s.mu.Lock()
	h := s.handle
	s.mu.Unlock()
	if h == nil {
		return fmt.Errorf("session: no process attached")
	}
	return h.Write(addr, data)
}

// Close detaches the session's process handle, if any.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return nil
	}
	err := s.handle.Close()
	s.handle = nil
	return err
}
