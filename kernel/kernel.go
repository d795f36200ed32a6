// Package kernel wires the scheduler, signal engine, and paged heap
// into one bootable unit, matching spec §4.7's boot sequence and
// original_source/kernel.c's main/_Sys_Load_Init split between
// core boot (steps 1-4) and an application-supplied init body
// (step 5, _Sys_Init_Initial/_Sys_Init_Always).
package kernel

import (
	"fmt"

	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/intlock"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/intrinsics"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/pagedheap"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/sched"
)

// Kernel is the single context value spec §9's design note recommends
// in place of module-scope globals: the interrupt lock, the platform
// backend, the scheduler, and the heap, all reachable from one place.
type Kernel struct {
	cfg     Config
	Backend intrinsics.Backend
	Lock    *intlock.Lock
	Sched   *sched.Scheduler
	Heap    *pagedheap.Heap
}

// Boot performs spec §4.7 steps 1-4: interrupt lock, heap, scheduler,
// then seed-and-ready the init thread on tid 0 and transfer control
// to it. initBody is the init thread's entry — spec §4.7 step 5,
// application-specific startup followed by a forever loop of
// SwitchNow calls — and is expected to never return, the same
// contract original_source/kernel.c's _Sys_Init places on its own
// infinite loop.
//
// Boot hands control to the init thread on a separate goroutine and
// returns immediately with the booted Kernel, rather than blocking
// the caller forever the way a bare-metal main() would: the platform
// backend is the thing that actually never returns once the init
// thread starts running, and intrinsics.Sim models that by parking,
// not by hanging the caller of Boot.
func Boot(cfg Config, backend intrinsics.Backend, kernelStackTop uintptr, initBody func(*Kernel)) (*Kernel, error) {
	lock := intlock.New(backend)

	heap, err := pagedheap.New(cfg.Heap)
	if err != nil {
		return nil, err
	}

	k := &Kernel{
		cfg:     cfg,
		Backend: backend,
		Lock:    lock,
		Heap:    heap,
	}
	k.Sched = sched.New(cfg.Sched, backend, lock, k.Heap.FreeAll)

	tid, err := k.Sched.StartThread(sched.ThreadSpec{
		TID:    sched.AutoTID,
		Name:   "init",
		Entry:  func() { initBody(k) },
		InitSP: kernelStackTop,
	})
	if err != nil {
		return nil, err
	}
	if tid != sched.InitTID {
		return nil, fmt.Errorf("%w: got %d", ErrInitTIDMismatch, tid)
	}
	if err := k.Sched.SetReady(tid); err != nil {
		return nil, err
	}

	go backend.LoadSP(tid)
	return k, nil
}

// Malloc allocates in the name of the currently running thread.
func (k *Kernel) Malloc(size int) []byte {
	return k.Heap.Malloc(k.Sched.CurrentTID(), size)
}

// Free frees on behalf of the currently running thread.
func (k *Kernel) Free(buf []byte) error {
	return k.Heap.Free(k.Sched.CurrentTID(), buf)
}

// FreeAll frees every page owned by the currently running thread.
func (k *Kernel) FreeAll() {
	k.Heap.FreeAll(k.Sched.CurrentTID())
}
