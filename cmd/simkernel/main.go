// Command simkernel boots the cooperative kernel over the simulated
// intrinsics backend and drives the reference worked example (three
// threads, a sleep/wake cycle, a self-kill, and a paged allocation
// sequence), printing the schedule as it plays out.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/intrinsics"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/kernel"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/pagedheap"
	"github.com/Evo-Devo-Instrum/RTOS-Mutate-Simpron/sched"
)

func main() {
	steps := flag.Int("steps", 16, "number of context switches to print before exiting")
	flag.Parse()

	sim := intrinsics.NewSim(3)
	sim.Panic = func(tid int, r interface{}) {
		log.Printf("simkernel: thread %d crashed: %v", tid, r)
	}

	trace := make(chan string, 256)

	cfg := kernel.Config{
		Sched: sched.Config{MaxThreads: 3, KernelStackSize: 30},
		Heap:  pagedheap.Config{PageSize: 50, PageCount: 20},
	}

	_, err := kernel.Boot(cfg, sim, 0, func(k *kernel.Kernel) {
		t1, err := k.Sched.StartThread(sched.ThreadSpec{
			TID: sched.AutoTID, Name: "T1", Entry: func() { runTask1(k, trace) },
		})
		if err != nil {
			log.Fatalf("simkernel: start T1: %v", err)
		}
		t2, err := k.Sched.StartThread(sched.ThreadSpec{
			TID: sched.AutoTID, Name: "T2", Entry: func() { runTask2(k, trace) },
		})
		if err != nil {
			log.Fatalf("simkernel: start T2: %v", err)
		}
		// Ready T2 before T1 so the carousel visits threads in
		// ascending tid order: 0, 1, 2, 0, 1, 2, ...
		if err := k.Sched.SetReady(t2); err != nil {
			log.Fatalf("simkernel: ready T2: %v", err)
		}
		if err := k.Sched.SetReady(t1); err != nil {
			log.Fatalf("simkernel: ready T1: %v", err)
		}

		for {
			trace <- fmt.Sprintf("init  : idle tick, tid=%d", k.Sched.CurrentTID())
			k.Sched.SwitchNow()
		}
	})
	if err != nil {
		log.Fatalf("simkernel: boot failed: %v", err)
	}

	for i := 0; i < *steps; i++ {
		select {
		case line := <-trace:
			fmt.Println(line)
		case <-time.After(time.Second):
			fmt.Println("simkernel: no activity, stopping")
			return
		}
	}
}

// runTask1 mallocs twice, sleeps T2, frees its first allocation, then
// kills itself, tracing each step.
func runTask1(k *kernel.Kernel, trace chan<- string) {
	step := 0
	var first []byte
	for {
		switch step {
		case 0:
			first = k.Malloc(100)
			trace <- fmt.Sprintf("T1    : malloc(100) -> %p", first)
		case 1:
			second := k.Malloc(50)
			trace <- fmt.Sprintf("T1    : malloc(50) -> %p", second)
		case 2:
			trace <- "T1    : sending SIGSLEEP to T2"
			_ = k.Sched.SendSignal(2, sched.SigSleep)
		case 3:
			if err := k.Free(first); err != nil {
				trace <- fmt.Sprintf("T1    : free failed: %v", err)
			} else {
				trace <- "T1    : freed first allocation"
			}
		case 4:
			trace <- "T1    : sending SIGWAKE to T2"
			_ = k.Sched.SendSignal(2, sched.SigWake)
		case 5:
			trace <- "T1    : self-kill"
			_ = k.Sched.SendSignal(1, sched.SigKill)
		default:
			trace <- fmt.Sprintf("T1    : tick %d", step)
		}
		step++
		k.Sched.SwitchNow()
	}
}

func runTask2(k *kernel.Kernel, trace chan<- string) {
	step := 0
	for {
		if step == 0 {
			buf := k.Malloc(500)
			trace <- fmt.Sprintf("T2    : malloc(500) -> %p", buf)
		} else {
			trace <- fmt.Sprintf("T2    : tick %d", step)
		}
		step++
		k.Sched.SwitchNow()
	}
}
