// Package sched implements the round-robin cooperative scheduler and
// the signal engine that rides along with every context switch. Both
// subsystems share one fixed TCB pool and are tightly coupled by
// design (spec §2), so they live in one package: the scheduler owns
// the ready/free rings and the switch protocol, signal.go owns the
// per-thread signal state the switch protocol dispatches.
package sched

import (
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/container/tlist"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/intlock"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/intrinsics"
)

// OnKillFunc is invoked synchronously whenever SendSignal(tid,
// SigKill) tears a thread down, after its TCB has been reset and
// before its slot rejoins the free ring. The scheduler itself has no
// notion of memory ownership; wiring this to a heap's bulk-free is
// the resolution of the open question in spec §9 ("the source's
// SIGKILL path does not call the heap's bulk-free... this is a
// semantic choice an implementer should make explicit").
type OnKillFunc func(tid int)

// Scheduler is the TCB pool plus the ready/free rings and the switch
// protocol of spec §4.4. It is the single kernel context the design
// note in spec §9 recommends in place of module-scope globals.
type Scheduler struct {
	cfg     Config
	backend intrinsics.Backend
	lock    *intlock.Lock
	onKill  OnKillFunc

	tcbs  []TCB
	links []tlist.Link
	ready *tlist.Ring
	free  *tlist.Ring

	current int
}

// ring sentinel indices live just past the valid tid range, one per
// ring, inside the same shared link table (spec §9's "index-based
// (head, next[], prev[]) arrays").
func (cfg Config) readyHead() int { return cfg.MaxThreads }
func (cfg Config) freeHead() int  { return cfg.MaxThreads + 1 }

// New builds a Scheduler: both rings empty, every slot zeroed and
// pushed onto the free ring in ascending tid order (spec §4.4
// Bootstrap), matching original_source/kernel.c's
// _Sys_Scheduler_Init.
func New(cfg Config, backend intrinsics.Backend, lock *intlock.Lock, onKill OnKillFunc) *Scheduler {
	links := make([]tlist.Link, cfg.MaxThreads+2)
	s := &Scheduler{
		cfg:     cfg,
		backend: backend,
		lock:    lock,
		onKill:  onKill,
		tcbs:    make([]TCB, cfg.MaxThreads),
		links:   links,
	}
	s.ready = tlist.New(links, cfg.readyHead())
	s.free = tlist.New(links, cfg.freeHead())
	for tid := 0; tid < cfg.MaxThreads; tid++ {
		s.tcbs[tid].TID = tid
		s.free.PushBack(tid)
	}
	return s
}

// validTID reports whether tid addresses a slot in the pool.
func (s *Scheduler) validTID(tid int) bool {
	return tid >= 0 && tid < len(s.tcbs)
}

// StartThread creates but does not schedule a thread: it pops a slot
// from the free ring, seeds its stack, and returns its assigned tid.
// set_ready must follow before the thread can run.
func (s *Scheduler) StartThread(spec ThreadSpec) (int, error) {
	if spec.TID != AutoTID {
		return -1, ErrTIDMustBeAuto
	}
	if s.free.Empty() {
		return -1, ErrNoFreeThread
	}

	tid := s.free.Front()
	s.free.Remove(tid)

	sp := spec.InitSP + 1
	s.tcbs[tid] = TCB{
		TID:    tid,
		Status: StatusOccupy,
		Name:   spec.Name,
		Entry:  spec.Entry,
		SP:     sp,
	}
	s.backend.SeedStack(tid, spec.Entry, sp)
	return tid, nil
}

// SetReady makes a created thread schedulable: requires OCCUPY, not
// already READY, not SLEEP; inserts at the front of the ready ring.
// Runs under the interrupt lock, and unlocks on every exit path —
// the fix for the original_source bug noted in spec §9 where some
// error returns skipped Sys_Unlock_Interrupt.
func (s *Scheduler) SetReady(tid int) error {
	s.lock.Lock()
	defer func() { _ = s.lock.Unlock() }()

	if !s.validTID(tid) {
		return ErrInvalidTID
	}
	status := s.tcbs[tid].Status
	if (status & StatusOccupy) == 0 {
		return ErrNotOccupied
	}
	if (status & StatusReady) != 0 {
		return ErrAlreadyReady
	}
	if (status & StatusSleep) != 0 {
		return ErrSleeping
	}

	s.tcbs[tid].Status |= StatusReady
	s.ready.PushFront(tid)
	return nil
}

// SwitchNow is the only scheduling point. It saves the current
// thread's stack pointer, advances the ready ring per spec §4.4's
// carousel rule, runs the signal engine for the newly selected
// thread, and loads its stack pointer — control does not return to
// this call until the thread that made it is itself rescheduled.
func (s *Scheduler) SwitchNow() {
	s.lock.Lock()
	defer func() { _ = s.lock.Unlock() }()

	cur := s.current
	s.backend.SaveSP(cur)

	var next int
	switch {
	case (s.tcbs[cur].Status & StatusReady) == 0:
		// Killed or slept during its own execution: the ring no
		// longer has a stale "next" pointer for it to resume from.
		next = s.ready.Front()
	case s.ready.Next(cur) == s.ready.Head:
		// End of ring: rewind.
		next = s.ready.Front()
	default:
		next = s.ready.Next(cur)
	}

	s.current = next
	s.dispatchPending(next)
	s.backend.LoadSP(next)
}

// CurrentTID returns the tid of the thread currently selected to
// run.
func (s *Scheduler) CurrentTID() int {
	return s.current
}

// TCB returns a copy of the TCB at tid, for tests and diagnostics.
func (s *Scheduler) TCB(tid int) TCB {
	return s.tcbs[tid]
}
