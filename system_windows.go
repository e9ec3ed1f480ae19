//go:build windows

package jobtime

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/unkaktus/jobtime/winjob"
)

// NewSystem returns the Windows implementation, backed by a job object
// and the performance counter.
func NewSystem() System {
	return winSystem{}
}

type winSystem struct{}

func (winSystem) CounterFrequency() (int64, error) {
	return winjob.CounterFrequency()
}

func (winSystem) Counter() (int64, error) {
	return winjob.Counter()
}

func (winSystem) NewJob() (Job, error) {
	j, err := winjob.New()
	if err != nil {
		return nil, err
	}
	return winJob{j}, nil
}

func (winSystem) StartSuspended(commandLine string) (Process, error) {
	return winjob.StartSuspended(commandLine)
}

type winJob struct {
	*winjob.Job
}

func (j winJob) Assign(p Process) error {
	wp, ok := p.(*winjob.Process)
	if !ok {
		return fmt.Errorf("cannot assign %T to a job", p)
	}
	return j.Job.Assign(wp)
}

// CommandLine joins argv into a single command line, quoting and
// escaping the way CommandLineToArgvW expects.
func CommandLine(args []string) string {
	return windows.ComposeCommandLine(args)
}
