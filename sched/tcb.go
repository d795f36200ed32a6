package sched

// AutoTID is the sentinel StartThread TID meaning "assign any free
// slot".
const AutoTID = -1

// InitTID is the reserved tid of the init thread: immortal, created
// first, accepts no signals.
const InitTID = 0

// Status is the bitmask over a thread slot's lifecycle state.
type Status uint8

const (
	// StatusOccupy marks a slot as holding a live thread.
	StatusOccupy Status = 1 << iota
	// StatusReady marks a thread as a scheduling candidate on the
	// ready ring.
	StatusReady
	// StatusSleep marks a thread as suspended, linked into no ring.
	StatusSleep
)

// Signal enumerates the kernel's three control signals and four
// user-defined signals.
type Signal int

const (
	NoSig Signal = iota
	SigKill
	SigSleep
	SigWake
	SigUsr1
	SigUsr2
	SigUsr3
	SigUsr4
)

// PendingMask is the per-thread bitmask of deferred user signals
// awaiting dispatch at the next context switch.
type PendingMask uint8

// usrSignals lists the four deferred signals in fixed dispatch order.
var usrSignals = [4]Signal{SigUsr1, SigUsr2, SigUsr3, SigUsr4}

// usrIndex maps a user signal to its handler-table slot. ok is false
// for anything that is not SigUsr1..SigUsr4.
func usrIndex(sig Signal) (idx int, ok bool) {
	switch sig {
	case SigUsr1:
		return 0, true
	case SigUsr2:
		return 1, true
	case SigUsr3:
		return 2, true
	case SigUsr4:
		return 3, true
	default:
		return 0, false
	}
}

// sigBit returns the PendingMask bit for a user signal. Only valid
// for SigUsr1..SigUsr4.
func sigBit(sig Signal) PendingMask {
	idx, _ := usrIndex(sig)
	return 1 << idx
}

// HandlerFunc is a user-signal handler. It runs on the receiving
// thread's own stack with interrupts still locked, at the context
// switch that delivers the signal.
type HandlerFunc func()

// ThreadSpec is the input to StartThread.
type ThreadSpec struct {
	// TID must be AutoTID; StartThread assigns the real slot.
	TID int
	// Name is a stable, human-readable thread name.
	Name string
	// Entry is the thread body. It must not return in normal
	// operation (mirroring spec's expectation of a forever-looping
	// thread); if it does, or if it panics, the simulated backend
	// parks or isolates it rather than crashing the process.
	Entry func()
	// InitSP is the caller-provided base of this thread's private
	// stack, opaque outside the platform backend.
	InitSP uintptr
}

// TCB is a thread control block: one per slot in the fixed pool.
type TCB struct {
	TID       int
	Status    Status
	Name      string
	Entry     func()
	SP        uintptr
	Pending   PendingMask
	Handlers  [4]HandlerFunc
}
