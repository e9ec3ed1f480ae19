// Package jobtime times an external command together with every process
// it transitively spawns, reporting wall-clock, user, and kernel CPU
// durations the way time(1) does.
package jobtime

import "time"

// Times is the result of timing one command: elapsed real time plus the
// user-mode and kernel-mode CPU time consumed by the command and all of
// its descendants.
type Times struct {
	Real   time.Duration
	User   time.Duration
	System time.Duration
}

// Process is a command started suspended. It is owned by the caller
// until closed; Resume may be called exactly once.
type Process interface {
	Resume() error
	Close() error
}

// Job tracks the command and all of its descendants as one accounting
// unit. Accounting must be read before Close.
type Job interface {
	// Assign places a still-suspended process into the job.
	Assign(Process) error
	// Wait blocks until the job has no active processes left.
	Wait() error
	// Accounting returns the cumulative user and kernel CPU time across
	// every process that was ever a member.
	Accounting() (user, kernel time.Duration, err error)
	Close() error
}

// System abstracts the platform facilities Run needs: a monotonic
// counter for wall time, process grouping, and suspended launch.
type System interface {
	// CounterFrequency reports the monotonic counter resolution in
	// ticks per second.
	CounterFrequency() (int64, error)
	// Counter samples the monotonic counter.
	Counter() (int64, error)
	NewJob() (Job, error)
	StartSuspended(commandLine string) (Process, error)
}
