package intrinsics

import (
	"fmt"
	"log"
	"runtime/debug"
)

// PanicHandler is invoked when a thread body seeded via SeedStack
// panics. r is the value recover() produced.
type PanicHandler func(tid int, r interface{})

// cell is the baton a single thread slot waits on. Sending on baton
// hands control to the slot's goroutine; receiving from it parks the
// calling goroutine until some other call hands control back.
type cell struct {
	baton chan struct{}
}

// Sim is a software simulation of the platform contract in Backend.
// It makes the kernel runnable and testable as an ordinary Go program
// by modelling each thread as a goroutine that only ever runs while
// holding a single shared baton — at most one thread's goroutine is
// ever unblocked at a time, matching the single-core cooperative
// model in spec §5. There is no real CPU stack pointer to snapshot:
// SaveSP instead records which slot must block on its own baton the
// next time LoadSP hands control away, which is the Go-idiomatic
// equivalent of "the old context resumes later from exactly where it
// left off".
type Sim struct {
	cells    []*cell
	disabled bool
	pending  int // slot to block after the next LoadSP hand-off, or -1

	// Panic isolates a thread body's crash from every other thread
	// and from the caller driving the scheduler, mirroring
	// concurrency/gopool's per-task recover wrapper.
	Panic PanicHandler
}

// NewSim returns a Sim sized for maxThreads slots.
func NewSim(maxThreads int) *Sim {
	cells := make([]*cell, maxThreads)
	for i := range cells {
		cells[i] = &cell{baton: make(chan struct{})}
	}
	return &Sim{cells: cells, pending: -1}
}

var _ Backend = (*Sim)(nil)

// DisableInterrupts masks the simulated interrupt line. Called at
// most once between matching EnableInterrupts calls by a correctly
// behaving intlock.Lock; calling it while already disabled indicates
// a lock-depth bug upstream.
func (s *Sim) DisableInterrupts() {
	if s.disabled {
		panic("intrinsics: DisableInterrupts called while already disabled")
	}
	s.disabled = true
}

// EnableInterrupts unmasks the simulated interrupt line.
func (s *Sim) EnableInterrupts() {
	if !s.disabled {
		panic("intrinsics: EnableInterrupts called while not disabled")
	}
	s.disabled = false
}

// Disabled reports whether interrupts are currently masked. Exposed
// for tests asserting lock/unlock discipline.
func (s *Sim) Disabled() bool {
	return s.disabled
}

// SaveSP records tid as the slot that must block on its own baton the
// next time LoadSP hands control to someone else.
func (s *Sim) SaveSP(tid int) {
	s.pending = tid
}

// LoadSP hands control to tid and, if a prior SaveSP recorded a slot
// to suspend, blocks the calling goroutine on that slot's baton until
// it is itself resumed by a later LoadSP. With no prior SaveSP (the
// one-time hand-off performed by Boot) the caller parks forever,
// modelling "transfers into the thread body, which never returns".
func (s *Sim) LoadSP(tid int) {
	self := s.pending
	s.pending = -1

	s.cells[tid].baton <- struct{}{}

	if self < 0 {
		select {}
	}
	<-s.cells[self].baton
}

// SeedStack spawns tid's goroutine, parked until the first LoadSP(tid)
// wakes it, at which point it begins executing entry. topOfStack is
// accepted for interface fidelity and ignored. entry must never
// return in normal operation; if it does, the goroutine parks forever
// rather than exiting, since there is no caller to hand control back
// to.
func (s *Sim) SeedStack(tid int, entry func(), topOfStack uintptr) {
	c := s.cells[tid]
	go func() {
		defer func() {
			if r := recover(); r != nil {
				if s.Panic != nil {
					s.Panic(tid, r)
				} else {
					log.Printf("intrinsics: thread %d panicked: %v\n%s", tid, r, debug.Stack())
				}
			}
		}()
		<-c.baton
		entry()
		select {}
	}()
}

// String renders the simulated interrupt state for debugging.
func (s *Sim) String() string {
	return fmt.Sprintf("intrinsics.Sim{disabled=%v}", s.disabled)
}
