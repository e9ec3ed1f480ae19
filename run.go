package jobtime

import (
	"fmt"
	"time"
)

// Run executes commandLine inside a fresh job and blocks until the
// whole process tree it spawned has exited. The ordering is what makes
// the accounting complete: the process is assigned to the job while
// still suspended, so neither it nor any child it spawns can run
// outside the job's membership.
func Run(sys System, commandLine string) (*Times, error) {
	freq, err := sys.CounterFrequency()
	if err != nil {
		return nil, fmt.Errorf("query counter frequency: %w", err)
	}

	job, err := sys.NewJob()
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	defer job.Close()

	proc, err := sys.StartSuspended(commandLine)
	if err != nil {
		return nil, fmt.Errorf("start command: %w", err)
	}
	defer proc.Close()

	if err := job.Assign(proc); err != nil {
		return nil, fmt.Errorf("assign process to job: %w", err)
	}

	start, err := sys.Counter()
	if err != nil {
		return nil, fmt.Errorf("sample counter: %w", err)
	}
	if err := proc.Resume(); err != nil {
		return nil, fmt.Errorf("resume process: %w", err)
	}
	// Job membership, not the process handle, is what keeps the
	// accounting alive; the handle is released before the wait.
	if err := proc.Close(); err != nil {
		return nil, fmt.Errorf("release process handle: %w", err)
	}

	if err := job.Wait(); err != nil {
		return nil, fmt.Errorf("wait for job: %w", err)
	}
	end, err := sys.Counter()
	if err != nil {
		return nil, fmt.Errorf("sample counter: %w", err)
	}

	user, kernel, err := job.Accounting()
	if err != nil {
		return nil, fmt.Errorf("query job accounting: %w", err)
	}

	wall := time.Duration(float64(end-start) / float64(freq) * float64(time.Second))
	return &Times{
		Real:   wall,
		User:   user,
		System: kernel,
	}, nil
}
