package sched

import "errors"

var (
	// ErrTIDMustBeAuto is returned by StartThread when the caller
	// supplies a concrete tid instead of AutoTID.
	ErrTIDMustBeAuto = errors.New("sched: StartThread requires AutoTID")

	// ErrNoFreeThread is returned by StartThread when the free ring
	// is empty.
	ErrNoFreeThread = errors.New("sched: no free thread slot")

	// ErrInvalidTID is returned when a tid falls outside [0, MaxThreads).
	ErrInvalidTID = errors.New("sched: invalid tid")

	// ErrZeroTIDSignal is returned by SendSignal and RegisterHandler
	// for tid 0: thread 0 is immortal and accepts no signals.
	ErrZeroTIDSignal = errors.New("sched: thread 0 accepts no signals")

	// ErrNotOccupied is returned when an operation targets a slot
	// that does not hold a live thread.
	ErrNotOccupied = errors.New("sched: thread slot not occupied")

	// ErrAlreadyReady is returned by SetReady when the thread is
	// already on the ready ring.
	ErrAlreadyReady = errors.New("sched: thread already ready")

	// ErrSleeping is returned by SetReady when the thread is asleep.
	ErrSleeping = errors.New("sched: thread is sleeping")

	// ErrInvalidSignal is returned for a signal value SendSignal or
	// RegisterHandler does not recognize.
	ErrInvalidSignal = errors.New("sched: invalid signal")
)
