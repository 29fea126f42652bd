// Package resultset implements the Typed Result Store: a closed set of
// twelve per-type slices of address/current/previous entries, with push,
// in-place filter, refresh, and a single ordered iterator merging all
// twelve lanes by ascending address with a canonical type tie-break
// order for addresses held by more than one type.
//
// The Store carries no lock of its own; that discipline belongs to the
// caller (session), which takes the Store out under its mutex, lets the
// scanner mutate it as a plain data structure with no lock held, and
// publishes it back under the mutex.
package resultset

import (
	"iter"

	"github.com/Haimrich/mismem/memtype"
)

// Entry is one held address for a given type: its current value and the
// value it held at the previous pass.
type Entry[T any] struct {
	Addr uint64
	Cur  T
	Prev T
}

// Push appends a freshly matched address to dst, with Cur and Prev both
// set to val: a newly pushed entry has no prior value distinct from its
// current one.
func Push[T any](dst *[]Entry[T], addr uint64, val T) {
	*dst = append(*dst, Entry[T]{Addr: addr, Cur: val, Prev: val})
}

// FilterInPlace keeps only the entries for which keep(cur) is true,
// preserving relative order: address-ascending order is never disturbed
// by filtering, only shrunk.
func FilterInPlace[T any](dst *[]Entry[T], keep func(cur T) bool) {
	out := (*dst)[:0]
	for _, e := range *dst {
		if keep(e.Cur) {
			out = append(out, e)
		}
	}
	*dst = out
}

// Refresh re-reads every entry's current value via read, shifting the old
// current into Prev. An entry whose page is no longer readable (read
// returns ok=false) is dropped rather than retained with a stale value.
func Refresh[T any](dst *[]Entry[T], read func(addr uint64) (T, bool)) {
	out := (*dst)[:0]
	for _, e := range *dst {
		v, ok := read(e.Addr)
		if !ok {
			continue
		}
		e.Prev = e.Cur
		e.Cur = v
		out = append(out, e)
	}
	*dst = out
}

// Store is the full 12-lane Typed Result Store.
type Store struct {
	U8   []Entry[uint8]
	I8   []Entry[int8]
	U16  []Entry[uint16]
	I16  []Entry[int16]
	U32  []Entry[uint32]
	I32  []Entry[int32]
	U64  []Entry[uint64]
	I64  []Entry[int64]
	U128 []Entry[memtype.Uint128]
	I128 []Entry[memtype.Int128]
	F32  []Entry[float32]
	F64  []Entry[float64]
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Clear empties every lane in place.
func (s *Store) Clear() {
	*s = Store{}
}

// Len returns the total number of held entries across all twelve lanes.
func (s *Store) Len() int {
	n := 0
	for _, l := range s.lanes() {
		n += l.len()
	}
	return n
}

// Take detaches the current contents of s into a new Store, leaving s
// empty. This is the hand-off primitive session uses to operate on a
// snapshot of the Store with no lock held.
func (s *Store) Take() *Store {
	taken := *s
	*s = Store{}
	return &taken
}

// Row is one entry surfaced by the ordered iterator: an address label,
// its current display value, and its previous display value.
type Row struct {
	Address uint64
	Tag     memtype.Tag
	Label   string
	Current string
	Previous string
}

// All returns an iterator over every entry in every lane, merged into a
// single ascending-address order. Entries sharing an address are
// produced in memtype.CanonicalOrder, via a 12-way min-scan: each lane is
// already address-ascending (scanner appends in page-scan order), so the
// merge never needs to sort, only to repeatedly pick the least front
// element across the twelve cursors.
func (s *Store) All() iter.Seq[Row] {
	lanes := s.lanes()
	return func(yield func(Row) bool) {
		cursor := make([]int, len(lanes))
		for {
			best := -1
			var bestAddr uint64
			for i, l := range lanes {
				if cursor[i] >= l.len() {
					continue
				}
				a := l.addrAt(cursor[i])
				if best == -1 || a < bestAddr || (a == bestAddr && tagRank[l.tag()] < tagRank[lanes[best].tag()]) {
					best = i
					bestAddr = a
				}
			}
			if best == -1 {
				return
			}
			row := lanes[best].rowAt(cursor[best])
			cursor[best]++
			if !yield(row) {
				return
			}
		}
	}
}

var tagRank = func() [12]int {
	var r [12]int
	for i, t := range memtype.CanonicalOrder {
		r[t] = i
	}
	return r
}()

// lane is the narrow, boxed interface used only at the merge boundary,
// where heterogeneity across the twelve concrete entry types is
// unavoidable; every other operation in this package stays monomorphic
// via the Entry[T] generic functions above.
type lane interface {
	tag() memtype.Tag
	len() int
	addrAt(i int) uint64
	rowAt(i int) Row
}

type typedLane[T any] struct {
	t      memtype.Tag
	data   []Entry[T]
	format func(T) string
}

func (l typedLane[T]) tag() memtype.Tag     { return l.t }
func (l typedLane[T]) len() int             { return len(l.data) }
func (l typedLane[T]) addrAt(i int) uint64  { return l.data[i].Addr }
func (l typedLane[T]) rowAt(i int) Row {
	e := l.data[i]
	return Row{
		Address:  e.Addr,
		Tag:      l.t,
		Label:    memtype.FormatLabel(e.Addr, l.t),
		Current:  l.format(e.Cur),
		Previous: l.format(e.Prev),
	}
}

func (s *Store) lanes() []lane {
	return []lane{
		typedLane[uint8]{memtype.U8, s.U8, memtype.FormatU8},
		typedLane[int8]{memtype.I8, s.I8, memtype.FormatI8},
		typedLane[uint16]{memtype.U16, s.U16, memtype.FormatU16},
		typedLane[int16]{memtype.I16, s.I16, memtype.FormatI16},
		typedLane[uint32]{memtype.U32, s.U32, memtype.FormatU32},
		typedLane[int32]{memtype.I32, s.I32, memtype.FormatI32},
		typedLane[uint64]{memtype.U64, s.U64, memtype.FormatU64},
		typedLane[int64]{memtype.I64, s.I64, memtype.FormatI64},
		typedLane[memtype.Uint128]{memtype.U128, s.U128, memtype.FormatU128},
		typedLane[memtype.Int128]{memtype.I128, s.I128, memtype.FormatI128},
		typedLane[float32]{memtype.F32, s.F32, memtype.FormatF32},
		typedLane[float64]{memtype.F64, s.F64, memtype.FormatF64},
	}
}
