package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSignalRejectsZeroTID(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	err := s.SendSignal(InitTID, SigUsr1)
	assert.ErrorIs(t, err, ErrZeroTIDSignal)
}

func TestSendSignalRejectsInvalidTID(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	err := s.SendSignal(99, SigUsr1)
	assert.ErrorIs(t, err, ErrInvalidTID)
}

func TestSendSignalRejectsUnoccupied(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	err := s.SendSignal(1, SigUsr1)
	assert.ErrorIs(t, err, ErrNotOccupied)
}

func TestSendSignalRejectsInvalidSignal(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	tid := startAndReady(t, s, "T1")
	err := s.SendSignal(tid, Signal(99))
	assert.ErrorIs(t, err, ErrInvalidSignal)
}

func TestRegisterHandlerRejectsZeroTID(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	err := s.RegisterHandler(InitTID, SigUsr1, func() {})
	assert.ErrorIs(t, err, ErrZeroTIDSignal)
}

func TestRegisterHandlerRejectsInvalidTID(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	err := s.RegisterHandler(99, SigUsr1, func() {})
	assert.ErrorIs(t, err, ErrInvalidTID)
}

func TestRegisterHandlerRejectsUnoccupied(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	err := s.RegisterHandler(1, SigUsr1, func() {})
	assert.ErrorIs(t, err, ErrNotOccupied)
}

func TestRegisterHandlerRejectsInvalidSignal(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	tid := startAndReady(t, s, "T1")
	err := s.RegisterHandler(tid, SigKill, func() {})
	assert.ErrorIs(t, err, ErrInvalidSignal)
}

func TestRegisterHandlerIdempotent(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	tid := startAndReady(t, s, "T1")
	fn := func() {}

	require.NoError(t, s.RegisterHandler(tid, SigUsr1, fn))
	require.NoError(t, s.RegisterHandler(tid, SigUsr1, fn))

	assert.NotNil(t, s.tcbs[tid].Handlers[0])
}

// TestDispatchPendingOrder asserts the fixed USR1->USR4 dispatch order
// and that the pending mask is fully cleared afterward, regardless of
// which bits had handlers registered. USR3 is deliberately left
// without a handler to exercise the "nil handler skipped silently, bit
// still cleared" rule in the same pass.
func TestDispatchPendingOrder(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	tid := startAndReady(t, s, "T1")

	var order []Signal
	require.NoError(t, s.RegisterHandler(tid, SigUsr1, func() { order = append(order, SigUsr1) }))
	require.NoError(t, s.RegisterHandler(tid, SigUsr2, func() { order = append(order, SigUsr2) }))
	require.NoError(t, s.RegisterHandler(tid, SigUsr4, func() { order = append(order, SigUsr4) }))

	require.NoError(t, s.SendSignal(tid, SigUsr4))
	require.NoError(t, s.SendSignal(tid, SigUsr1))
	require.NoError(t, s.SendSignal(tid, SigUsr3))
	require.NoError(t, s.SendSignal(tid, SigUsr2))

	s.dispatchPending(tid)

	assert.Equal(t, []Signal{SigUsr1, SigUsr2, SigUsr4}, order)
	assert.Equal(t, PendingMask(0), s.tcbs[tid].Pending)
}

// TestDispatchPendingClearsMaskWithNoHandlers covers the case where
// every pending bit's handler slot is nil: the handlers all stay
// silent but the pending mask is still cleared in full.
func TestDispatchPendingClearsMaskWithNoHandlers(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	tid := startAndReady(t, s, "T1")

	require.NoError(t, s.SendSignal(tid, SigUsr1))
	require.NoError(t, s.SendSignal(tid, SigUsr3))

	s.dispatchPending(tid)

	assert.Equal(t, PendingMask(0), s.tcbs[tid].Pending)
}

// TestSwitchNowDispatchesPendingForIncomingThread drives the dispatch
// through SwitchNow itself rather than calling dispatchPending
// directly, covering the integration point spec §4.5 describes: the
// handler runs on the new current thread's turn, and Pending is zero
// on the far side of the switch regardless of which bits had
// handlers.
func TestSwitchNowDispatchesPendingForIncomingThread(t *testing.T) {
	s, _ := newTestScheduler(t, 3)
	t1, t2 := setUpCarousel(t, s)

	var fired []Signal
	require.NoError(t, s.RegisterHandler(t2, SigUsr1, func() { fired = append(fired, SigUsr1) }))
	// SigUsr3 left unregistered: its bit must still clear.
	require.NoError(t, s.SendSignal(t2, SigUsr1))
	require.NoError(t, s.SendSignal(t2, SigUsr3))

	s.SwitchNow() // -> t1
	require.Equal(t, t1, s.CurrentTID())
	assert.Empty(t, fired, "handlers must not fire before the target thread's own turn")

	s.SwitchNow() // -> t2, dispatch runs here
	require.Equal(t, t2, s.CurrentTID())
	assert.Equal(t, []Signal{SigUsr1}, fired)
	assert.Equal(t, PendingMask(0), s.tcbs[t2].Pending)
}
