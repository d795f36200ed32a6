package kernel

import "errors"

// ErrInitTIDMismatch is returned by Boot if the very first StartThread
// call — which seeds the init thread — is not assigned tid 0. This
// can only happen if Boot is called on a Scheduler that already has
// threads on it, which Boot never does; it exists as a defensive
// invariant check rather than a reachable caller error.
var ErrInitTIDMismatch = errors.New("kernel: init thread did not receive tid 0")
