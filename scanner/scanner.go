// Package scanner implements the three scan passes: a first scan over
// every readable page comparing each candidate address against an
// operand, a filter pass narrowing an existing Store down by a new
// operand, and a refresh pass re-reading every held address without
// changing which addresses are held.
//
// Each pass is generic over the twelve memtype.Tag-indexed Go types; the
// dispatch from a runtime Tag value to the correct instantiation happens
// once per call, in the small switches below, not once per candidate
// address — the hot per-byte comparison loop for a given call stays
// fully monomorphic.
package scanner

import (
	"github.com/Haimrich/mismem/memtype"
	"github.com/Haimrich/mismem/pageiter"
	"github.com/Haimrich/mismem/procio"
	"github.com/Haimrich/mismem/progress"
	"github.com/Haimrich/mismem/resultset"
)

// progressCadence returns how many units should pass between progress
// publications for a pass covering total units: every 1%, at least 1.
func progressCadence(total uint64) uint64 {
	c := total / 100
	if c < 1 {
		c = 1
	}
	return c
}

// scanFirst walks every page in pages, decoding every byte-offset window
// of width as T and keeping the ones equal to want. total is the sum of
// every page's size, known up front, so swept/total is a true
// completion fraction rather than an estimate.
func scanFirst[T comparable](
	h *procio.Handle,
	pages []pageiter.Page,
	total uint64,
	dst *[]resultset.Entry[T],
	width int,
	want T,
	decode func([]byte) T,
	prog *progress.Channel,
) {
	prog.Begin()
	if total == 0 {
		prog.Finish()
		return
	}
	cadence := progressCadence(total)
	var swept, published uint64
	for _, page := range pages {
		buf, err := h.Read(page.Start, int(page.Size()))
		if err != nil {
			// A single unreadable page is skipped; the scan continues
			// over the rest of the address space.
			swept += page.Size()
			if swept-published >= cadence {
				prog.TryUpdate(float64(swept) / float64(total))
				published = swept
			}
			continue
		}
		for off := 0; off+width <= len(buf); off++ {
			if v := decode(buf[off : off+width]); v == want {
				resultset.Push(dst, page.Start+uint64(off), v)
			}
		}
		swept += page.Size()
		if swept-published >= cadence {
			prog.TryUpdate(float64(swept) / float64(total))
			published = swept
		}
	}
	prog.Finish()
}

// FirstScan scans every read+write page of h's process: decode each
// byte-offset candidate window as tag and keep it if it equals
// operand's decoded value. Matches are pushed into the corresponding
// lane of store. The process's page list is read in full before
// scanning starts, so the total byte count against which progress is
// reported is exact.
func FirstScan(h *procio.Handle, store *resultset.Store, tag memtype.Tag, operand []byte, prog *progress.Channel) error {
	it, err := pageiter.Open(h.Pid())
	if err != nil {
		return err
	}
	defer it.Close()

	var pages []pageiter.Page
	var total uint64
	for {
		page, ok := it.Next()
		if !ok {
			break
		}
		pages = append(pages, page)
		total += page.Size()
	}

	switch tag {
	case memtype.U8:
		scanFirst(h, pages, total, &store.U8, 1, memtype.DecodeU8(operand), memtype.DecodeU8, prog)
	case memtype.I8:
		scanFirst(h, pages, total, &store.I8, 1, memtype.DecodeI8(operand), memtype.DecodeI8, prog)
	case memtype.U16:
		scanFirst(h, pages, total, &store.U16, 2, memtype.DecodeU16(operand), memtype.DecodeU16, prog)
	case memtype.I16:
		scanFirst(h, pages, total, &store.I16, 2, memtype.DecodeI16(operand), memtype.DecodeI16, prog)
	case memtype.U32:
		scanFirst(h, pages, total, &store.U32, 4, memtype.DecodeU32(operand), memtype.DecodeU32, prog)
	case memtype.I32:
		scanFirst(h, pages, total, &store.I32, 4, memtype.DecodeI32(operand), memtype.DecodeI32, prog)
	case memtype.U64:
		scanFirst(h, pages, total, &store.U64, 8, memtype.DecodeU64(operand), memtype.DecodeU64, prog)
	case memtype.I64:
		scanFirst(h, pages, total, &store.I64, 8, memtype.DecodeI64(operand), memtype.DecodeI64, prog)
	case memtype.U128:
		scanFirst(h, pages, total, &store.U128, 16, memtype.DecodeU128(operand), memtype.DecodeU128, prog)
	case memtype.I128:
		scanFirst(h, pages, total, &store.I128, 16, memtype.DecodeI128(operand), memtype.DecodeI128, prog)
	case memtype.F32:
		scanFirst(h, pages, total, &store.F32, 4, memtype.DecodeF32(operand), memtype.DecodeF32, prog)
	case memtype.F64:
		scanFirst(h, pages, total, &store.F64, 8, memtype.DecodeF64(operand), memtype.DecodeF64, prog)
	}
	return nil
}

// refreshPass re-reads every address in dst. processed/total/cadence
// track a progress fraction shared across every lane a caller walks in
// one pass (Refresh spans all twelve; Filter's pre-refresh spans one).
func refreshPass[T any](
	h *procio.Handle,
	dst *[]resultset.Entry[T],
	width int,
	decode func([]byte) T,
	processed *uint64,
	total uint64,
	cadence uint64,
	prog *progress.Channel,
) {
	resultset.Refresh(dst, func(addr uint64) (T, bool) {
		buf, err := h.Read(addr, width)
		*processed++
		if *processed%cadence == 0 {
			prog.TryUpdate(float64(*processed) / float64(total))
		}
		if err != nil {
			var zero T
			return zero, false
		}
		return decode(buf), true
	})
}

// Refresh re-reads every held address across every lane of store,
// shifting its previous value forward. An address whose page is no
// longer reachable is dropped from the store rather than kept stale.
// Progress is published every 1% of the total held entries, at least
// once per entry for small stores.
func Refresh(h *procio.Handle, store *resultset.Store, prog *progress.Channel) {
	prog.Begin()
	total := uint64(store.Len())
	if total == 0 {
		prog.Finish()
		return
	}
	cadence := progressCadence(total)
	var processed uint64
	refreshPass(h, &store.U8, 1, memtype.DecodeU8, &processed, total, cadence, prog)
	refreshPass(h, &store.I8, 1, memtype.DecodeI8, &processed, total, cadence, prog)
	refreshPass(h, &store.U16, 2, memtype.DecodeU16, &processed, total, cadence, prog)
	refreshPass(h, &store.I16, 2, memtype.DecodeI16, &processed, total, cadence, prog)
	refreshPass(h, &store.U32, 4, memtype.DecodeU32, &processed, total, cadence, prog)
	refreshPass(h, &store.I32, 4, memtype.DecodeI32, &processed, total, cadence, prog)
	refreshPass(h, &store.U64, 8, memtype.DecodeU64, &processed, total, cadence, prog)
	refreshPass(h, &store.I64, 8, memtype.DecodeI64, &processed, total, cadence, prog)
	refreshPass(h, &store.U128, 16, memtype.DecodeU128, &processed, total, cadence, prog)
	refreshPass(h, &store.I128, 16, memtype.DecodeI128, &processed, total, cadence, prog)
	refreshPass(h, &store.F32, 4, memtype.DecodeF32, &processed, total, cadence, prog)
	refreshPass(h, &store.F64, 8, memtype.DecodeF64, &processed, total, cadence, prog)
	prog.Finish()
}

func filterLane[T comparable](h *procio.Handle, dst *[]resultset.Entry[T], width int, want T, decode func([]byte) T, prog *progress.Channel) {
	prog.Begin()
	total := uint64(len(*dst))
	if total == 0 {
		prog.Finish()
		return
	}
	cadence := progressCadence(total)
	var processed uint64
	// Refresh first (re-read current values, drop unreadable addresses),
	// then keep only entries whose freshly-read current value equals
	// want: filter reads current memory, it does not trust the store's
	// stale current value.
	refreshPass(h, dst, width, decode, &processed, total, cadence, prog)
	resultset.FilterInPlace(dst, func(cur T) bool {
		return cur == want
	})
	prog.Finish()
}

// Filter re-reads every held address in the lane for tag and drops it
// unless its current value equals operand's decoded value. Filter only
// ever shrinks tag's lane; the other eleven lanes are untouched.
// Progress is published every 1% of that lane's entries.
func Filter(h *procio.Handle, store *resultset.Store, tag memtype.Tag, operand []byte, prog *progress.Channel) {
	switch tag {
	case memtype.U8:
		filterLane(h, &store.U8, 1, memtype.DecodeU8(operand), memtype.DecodeU8, prog)
	case memtype.I8:
		filterLane(h, &store.I8, 1, memtype.DecodeI8(operand), memtype.DecodeI8, prog)
	case memtype.U16:
		filterLane(h, &store.U16, 2, memtype.DecodeU16(operand), memtype.DecodeU16, prog)
	case memtype.I16:
		filterLane(h, &store.I16, 2, memtype.DecodeI16(operand), memtype.DecodeI16, prog)
	case memtype.U32:
		filterLane(h, &store.U32, 4, memtype.DecodeU32(operand), memtype.DecodeU32, prog)
	case memtype.I32:
		filterLane(h, &store.I32, 4, memtype.DecodeI32(operand), memtype.DecodeI32, prog)
	case memtype.U64:
		filterLane(h, &store.U64, 8, memtype.DecodeU64(operand), memtype.DecodeU64, prog)
	case memtype.I64:
		filterLane(h, &store.I64, 8, memtype.DecodeI64(operand), memtype.DecodeI64, prog)
	case memtype.U128:
		filterLane(h, &store.U128, 16, memtype.DecodeU128(operand), memtype.DecodeU128, prog)
	case memtype.I128:
		filterLane(h, &store.I128, 16, memtype.DecodeI128(operand), memtype.DecodeI128, prog)
	case memtype.F32:
		filterLane(h, &store.F32, 4, memtype.DecodeF32(operand), memtype.DecodeF32, prog)
	case memtype.F64:
		filterLane(h, &store.F64, 8, memtype.DecodeF64(operand), memtype.DecodeF64, prog)
	}
}
