//go:build windows

package winjob

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Job object information classes (winnt.h).
const (
	jobObjectBasicAccountingInformation  = 1
	jobObjectAssociateCompletionPortInfo = 7
)

// JOBOBJECT_ASSOCIATE_COMPLETION_PORT
type associateCompletionPort struct {
	CompletionKey  windows.Handle
	CompletionPort windows.Handle
}

// JOBOBJECT_BASIC_ACCOUNTING_INFORMATION. The time totals are FILETIME
// intervals of 100 nanoseconds.
type basicAccounting struct {
	TotalUserTime             int64
	TotalKernelTime           int64
	ThisPeriodTotalUserTime   int64
	ThisPeriodTotalKernelTime int64
	TotalPageFaultCount       uint32
	TotalProcesses            uint32
	ActiveProcesses           uint32
	TotalTerminatedProcesses  uint32
}

// Job owns a job object together with the completion port its lifecycle
// notifications are delivered to. The two are created together and must
// be released together, after accounting has been read.
type Job struct {
	job  windows.Handle
	port windows.Handle
}

// New creates an anonymous job object and a fresh I/O completion port,
// and configures the job to post its lifecycle messages to the port.
// The job handle doubles as the completion key.
func New() (*Job, error) {
	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("CreateJobObjectW: %w", err)
	}
	port, err := windows.CreateIoCompletionPort(windows.InvalidHandle, 0, 0, 1)
	if err != nil {
		windows.CloseHandle(job)
		return nil, fmt.Errorf("CreateIoCompletionPort: %w", err)
	}

	assoc := associateCompletionPort{
		CompletionKey:  job,
		CompletionPort: port,
	}
	_, err = windows.SetInformationJobObject(job, jobObjectAssociateCompletionPortInfo,
		uintptr(unsafe.Pointer(&assoc)), uint32(unsafe.Sizeof(assoc)))
	if err != nil {
		windows.CloseHandle(port)
		windows.CloseHandle(job)
		return nil, fmt.Errorf("SetInformationJobObject: %w", err)
	}

	return &Job{job: job, port: port}, nil
}

// Assign places p into the job, so that p and everything it later
// spawns is tracked and accounted as part of it. The process must still
// be suspended: a resumed process may already have children outside the
// job, and those would escape accounting.
func (j *Job) Assign(p *Process) error {
	if err := p.life.markAssigned(); err != nil {
		return err
	}
	if err := windows.AssignProcessToJobObject(j.job, p.process); err != nil {
		return fmt.Errorf("AssignProcessToJobObject: %w", err)
	}
	return nil
}

// Next reads one lifecycle notification from the completion port,
// blocking until the kernel posts one.
func (j *Job) Next() (Event, error) {
	var (
		code       uint32
		key        uintptr
		overlapped *windows.Overlapped
	)
	err := windows.GetQueuedCompletionStatus(j.port, &code, &key, &overlapped, windows.INFINITE)
	if err != nil {
		return Event{}, fmt.Errorf("GetQueuedCompletionStatus: %w", err)
	}
	// For job messages the overlapped pointer carries the member pid.
	pid := uint32(uintptr(unsafe.Pointer(overlapped)))
	return decodeEvent(code, key, pid), nil
}

// Wait blocks until every process in the job, including any spawned
// after the initial assignment, has exited.
func (j *Job) Wait() error {
	return awaitEmpty(j, uintptr(j.job))
}

// Accounting reports the cumulative user and kernel CPU time consumed
// by every process that was ever a member of the job. It must be called
// before Close; the totals are owned by the job object.
func (j *Job) Accounting() (user, kernel time.Duration, err error) {
	var info basicAccounting
	err = windows.QueryInformationJobObject(j.job, jobObjectBasicAccountingInformation,
		uintptr(unsafe.Pointer(&info)), uint32(unsafe.Sizeof(info)), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("QueryInformationJobObject: %w", err)
	}
	return time.Duration(info.TotalUserTime) * 100, time.Duration(info.TotalKernelTime) * 100, nil
}

// Close releases the completion port and the job object. Safe to call
// again; each handle is closed at most once.
func (j *Job) Close() error {
	if j.port != 0 {
		windows.CloseHandle(j.port)
		j.port = 0
	}
	if j.job != 0 {
		err := windows.CloseHandle(j.job)
		j.job = 0
		if err != nil {
			return fmt.Errorf("CloseHandle: %w", err)
		}
	}
	return nil
}
