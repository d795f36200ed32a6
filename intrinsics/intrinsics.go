// Package intrinsics defines the platform contract the kernel core
// depends on and never implements itself: interrupt masking, stack
// pointer save/load, and stack-frame seeding. On a real 8-bit target
// these are an assembly shim; Sim is a software simulation that lets
// the rest of this module build, run and be tested as ordinary Go.
package intrinsics

// Backend is the platform primitive surface consumed by the kernel
// core. Disable/EnableInterrupts must be safe to call while already
// wrapped by a depth counter (see package intlock): calling one
// without a matching call to the other is a caller bug, not something
// Backend itself guards against.
type Backend interface {
	// DisableInterrupts masks the global interrupt line.
	DisableInterrupts()

	// EnableInterrupts unmasks the global interrupt line.
	EnableInterrupts()

	// SaveSP snapshots the live stack pointer of tid so it can later
	// be restored by LoadSP. Called only for the thread that is
	// currently executing.
	SaveSP(tid int)

	// LoadSP restores the stack pointer of tid, transferring control
	// to it. On a real target this does not return to the caller in
	// the usual sense; it resumes tid's execution. Sim models this
	// faithfully: LoadSP blocks the calling goroutine until someone
	// else calls LoadSP for the tid that is blocked.
	LoadSP(tid int)

	// SeedStack writes a return frame at the top of tid's private
	// stack such that the first LoadSP of tid begins executing entry.
	// topOfStack is opaque platform-specific framing data; the
	// simulated backend ignores it.
	SeedStack(tid int, entry func(), topOfStack uintptr)
}
