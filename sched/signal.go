package sched

// SendSignal delivers a signal to tid. Control signals (SigKill,
// SigSleep, SigWake) take effect immediately, in-line, on send. User
// signals (SigUsr1..SigUsr4) are OR'd into the target's pending mask
// and dispatched later, at the target's next context switch. tid 0 is
// immortal and accepts no signal at all — the uniform resolution of
// the open question in spec §9 where the original let control signals
// through the OCCUPY check for tid 0 but blocked user signals.
func (s *Scheduler) SendSignal(tid int, sig Signal) error {
	if tid == InitTID {
		return ErrZeroTIDSignal
	}
	if !s.validTID(tid) {
		return ErrInvalidTID
	}
	if (s.tcbs[tid].Status & StatusOccupy) == 0 {
		return ErrNotOccupied
	}

	switch sig {
	case SigKill:
		s.kill(tid)
	case SigSleep:
		s.sleep(tid)
	case SigWake:
		s.wake(tid)
	case SigUsr1, SigUsr2, SigUsr3, SigUsr4:
		s.tcbs[tid].Pending |= sigBit(sig)
	default:
		return ErrInvalidSignal
	}
	return nil
}

// RegisterHandler installs fn as tid's handler for sig. Only
// SigUsr1..SigUsr4 may be registered; tid 0 and non-occupied slots
// are rejected.
func (s *Scheduler) RegisterHandler(tid int, sig Signal, fn HandlerFunc) error {
	if tid == InitTID {
		return ErrZeroTIDSignal
	}
	if !s.validTID(tid) {
		return ErrInvalidTID
	}
	if (s.tcbs[tid].Status & StatusOccupy) == 0 {
		return ErrNotOccupied
	}
	idx, ok := usrIndex(sig)
	if !ok {
		return ErrInvalidSignal
	}
	s.tcbs[tid].Handlers[idx] = fn
	return nil
}

// kill removes tid unconditionally and synchronously, zeroes its TCB
// except the tid field, runs the kill hook (heap bulk-free, see
// OnKillFunc), and reinserts the slot at the front of the free ring —
// mirroring original_source/kernel.c's _Sys_Thread_Kill insertion
// point.
func (s *Scheduler) kill(tid int) {
	if (s.tcbs[tid].Status & StatusReady) != 0 {
		s.ready.Remove(tid)
	}
	s.tcbs[tid] = TCB{TID: tid}
	if s.onKill != nil {
		s.onKill(tid)
	}
	s.free.PushFront(tid)
}

// sleep suspends tid: it is a no-op if tid is already asleep.
// Otherwise it clears READY, sets SLEEP, and removes the thread from
// the ready ring. Callers must only sleep a thread that is currently
// on the ready ring (via SetReady) — sleeping an OCCUPY-only thread
// that was never readied is a caller bug the kernel does not defend
// against, matching spec §7's "programmer fault" category.
func (s *Scheduler) sleep(tid int) {
	if (s.tcbs[tid].Status & StatusSleep) != 0 {
		return
	}
	s.tcbs[tid].Status |= StatusSleep
	s.tcbs[tid].Status &^= StatusReady
	s.ready.Remove(tid)
}

// wake reverses sleep: a no-op unless tid is currently asleep,
// otherwise it clears SLEEP, sets READY, and inserts tid at the front
// of the ready ring so it is visited the next time the carousel
// rewinds to the ring front.
func (s *Scheduler) wake(tid int) {
	if (s.tcbs[tid].Status & StatusSleep) == 0 {
		return
	}
	s.tcbs[tid].Status &^= StatusSleep
	s.tcbs[tid].Status |= StatusReady
	s.ready.PushFront(tid)
}

// dispatchPending runs the deferred user-signal handlers for tid, in
// fixed USR1→USR4 order, on tid's own stack (the caller is expected
// to invoke this only from within SwitchNow, with interrupts still
// locked and control about to transfer to tid). A handler registered
// as nil is skipped silently; its bit is still cleared. The whole
// pending mask is cleared after the pass regardless of which bits had
// handlers.
func (s *Scheduler) dispatchPending(tid int) {
	t := &s.tcbs[tid]
	if t.Pending == 0 {
		return
	}
	for i, sig := range usrSignals {
		bit := sigBit(sig)
		if (t.Pending&bit) != 0 && t.Handlers[i] != nil {
			t.Handlers[i]()
		}
	}
	t.Pending = 0
}
