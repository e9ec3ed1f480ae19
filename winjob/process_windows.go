//go:build windows

package winjob

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Process is a process created suspended: none of its code runs until
// Resume. It owns the process handle and the primary-thread handle.
type Process struct {
	process windows.Handle
	thread  windows.Handle
	life    lifecycle
}

// StartSuspended creates a new process for commandLine with its primary
// thread suspended. Standard streams are inherited from the parent; no
// redirection is performed.
func StartSuspended(commandLine string) (*Process, error) {
	cmdline, err := windows.UTF16PtrFromString(commandLine)
	if err != nil {
		return nil, fmt.Errorf("encode command line: %w", err)
	}

	si := &windows.StartupInfo{}
	si.Cb = uint32(unsafe.Sizeof(*si))
	pi := &windows.ProcessInformation{}
	err = windows.CreateProcess(
		nil,     // application name: taken from the command line
		cmdline, // mutable command line buffer
		nil, nil,
		false,
		windows.CREATE_SUSPENDED,
		nil, // inherit environment
		nil, // inherit working directory
		si, pi,
	)
	if err != nil {
		return nil, fmt.Errorf("CreateProcessW: %w", err)
	}

	return &Process{process: pi.Process, thread: pi.Thread}, nil
}

// Pid returns the process identifier.
func (p *Process) Pid() uint32 {
	pid, err := windows.GetProcessId(p.process)
	if err != nil {
		return 0
	}
	return pid
}

// Resume starts the primary thread and releases the thread handle,
// which is not needed afterwards. It can be called exactly once.
func (p *Process) Resume() error {
	if err := p.life.markResumed(); err != nil {
		return err
	}
	if _, err := windows.ResumeThread(p.thread); err != nil {
		return fmt.Errorf("ResumeThread: %w", err)
	}
	windows.CloseHandle(p.thread)
	p.thread = 0
	return nil
}

// Close releases whatever handles are still held. It is safe to call
// again; each handle is closed at most once.
func (p *Process) Close() error {
	if p.thread != 0 {
		windows.CloseHandle(p.thread)
		p.thread = 0
	}
	if p.process != 0 {
		err := windows.CloseHandle(p.process)
		p.process = 0
		if err != nil {
			return fmt.Errorf("CloseHandle: %w", err)
		}
	}
	return nil
}
