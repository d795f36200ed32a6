// Package pagedheap implements the thread-owning paged allocator of
// spec §4.6: a page_owner table over a flat byte arena, first-fit
// contiguous-run allocation, and the sentinel discipline that lets
// free locate an allocation's extent without a separate length table.
package pagedheap

import (
	"unsafe"

	"github.com/bytedance/gopkg/lang/dirtmake"
)

// Heap is a paged, thread-owning allocator over one contiguous arena.
type Heap struct {
	cfg Config

	// arena is the user-memory backing store. Its contents are not
	// zero-initialized: the same reasoning as bufiox's growth buffers
	// applies here, since every byte is handed to callers through
	// Malloc before anyone reads it.
	arena []byte

	// pageOwner[p] is the tid owning page p, or 0 if free. This is
	// load-bearing state, unlike arena, so it is zero-filled.
	pageOwner []int
}

// New builds a Heap with cfg.PageCount pages of cfg.PageSize bytes
// each, all free.
func New(cfg Config) (*Heap, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Heap{
		cfg:       cfg,
		arena:     dirtmake.Bytes(cfg.HeapSize(), cfg.HeapSize()),
		pageOwner: make([]int, cfg.PageCount),
	}, nil
}

// Malloc allocates at least size bytes in the name of owner. It
// returns nil if size is non-positive, if size exceeds the total
// heap size, or if no run of free pages with a leading sentinel is
// available.
func (h *Heap) Malloc(owner, size int) []byte {
	if size <= 0 {
		return nil
	}
	pages := (size + h.cfg.PageSize - 1) / h.cfg.PageSize
	if pages > h.cfg.PageCount {
		return nil
	}

	start, ok := h.findRun(pages)
	if !ok {
		return nil
	}

	for p := start; p < start+pages; p++ {
		h.pageOwner[p] = owner
	}

	base := start * h.cfg.PageSize
	return h.arena[base : base+size]
}

// findRun returns the first page index starting a run of n contiguous
// free pages preceded by a sentinel (a free page, or the heap
// boundary). This is the explicit version of the sentinel discipline
// spec §4.6 describes the source enforcing only implicitly.
func (h *Heap) findRun(n int) (int, bool) {
	for p := 0; p+n <= h.cfg.PageCount; p++ {
		if h.pageOwner[p] != 0 {
			continue
		}
		if p > 0 && h.pageOwner[p-1] != 0 {
			continue
		}
		run := true
		for k := 1; k < n; k++ {
			if h.pageOwner[p+k] != 0 {
				run = false
				break
			}
		}
		if run {
			return p, true
		}
	}
	return 0, false
}

// Free returns buf to the heap on behalf of owner. buf must start at
// the first byte of an allocation still owned by owner, as the slice
// Malloc returned does; only that start address is checked, not buf's
// length. Anything else is rejected without modifying the page table.
func (h *Heap) Free(owner int, buf []byte) error {
	if len(buf) == 0 {
		return ErrInvalidPointer
	}
	p, ok := h.pageOf(buf)
	if !ok {
		return ErrInvalidPointer
	}
	if h.pageOwner[p] != owner {
		return ErrNotOwner
	}
	if p > 0 && h.pageOwner[p-1] != 0 {
		return ErrInvalidPointer
	}

	for p < h.cfg.PageCount && h.pageOwner[p] == owner {
		h.pageOwner[p] = 0
		p++
	}
	return nil
}

// FreeAll zeroes every page owned by owner, regardless of extent
// boundaries. This is the kill-time bulk free spec §9's open question
// asks an implementer to wire in explicitly; sched.Scheduler's
// OnKillFunc calls this.
func (h *Heap) FreeAll(owner int) {
	for p, o := range h.pageOwner {
		if o == owner {
			h.pageOwner[p] = 0
		}
	}
}

// pageOf computes the page index buf's first byte falls on, rejecting
// anything not exactly page-aligned within this heap's arena.
func (h *Heap) pageOf(buf []byte) (int, bool) {
	arenaStart := uintptr(unsafe.Pointer(&h.arena[0]))
	bufStart := uintptr(unsafe.Pointer(&buf[0]))
	if bufStart < arenaStart {
		return 0, false
	}
	offset := int(bufStart - arenaStart)
	if offset >= h.cfg.HeapSize() {
		return 0, false
	}
	if offset%h.cfg.PageSize != 0 {
		return 0, false
	}
	return offset / h.cfg.PageSize, true
}

// Layout returns a copy of the page-ownership table, for tests and
// diagnostics to assert against directly rather than only through
// black-box alloc/free round trips.
func (h *Heap) Layout() []int {
	out := make([]int, len(h.pageOwner))
	copy(out, h.pageOwner)
	return out
}
