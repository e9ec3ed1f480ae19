//go:build !windows

package jobtime

import (
	"errors"
	"strings"
)

var errUnsupported = errors.New("job object timing requires Windows")

// NewSystem returns a stub that fails on first use: the suspended
// launch and job accounting this tool is built on are Windows kernel
// facilities with no equivalent here.
func NewSystem() System {
	return stubSystem{}
}

type stubSystem struct{}

func (stubSystem) CounterFrequency() (int64, error) { return 0, errUnsupported }

func (stubSystem) Counter() (int64, error) { return 0, errUnsupported }

func (stubSystem) NewJob() (Job, error) { return nil, errUnsupported }

func (stubSystem) StartSuspended(string) (Process, error) { return nil, errUnsupported }

// CommandLine joins argv into a single command line.
func CommandLine(args []string) string {
	return strings.Join(args, " ")
}
