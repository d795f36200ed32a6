package kernel

import (
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/pagedheap"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/sched"
)

// Config composes the scheduler's and heap's configuration surfaces
// into the one value Boot needs.
type Config struct {
	Sched sched.Config
	Heap  pagedheap.Config
}

// DefaultConfig returns the reference configuration: three threads
// over sched.DefaultConfig, and a small default heap.
func DefaultConfig() Config {
	return Config{
		Sched: sched.DefaultConfig(),
		Heap:  pagedheap.DefaultConfig(),
	}
}
