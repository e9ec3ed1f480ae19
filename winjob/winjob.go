// Package winjob measures the CPU consumption of a whole process tree
// through a Windows job object. A command is created suspended, assigned
// to a fresh job, and only then resumed, so that every process it spawns
// is accounted for by the kernel as part of the job.
package winjob

import "errors"

var (
	// ErrNotSuspended is returned when a process is assigned to a job
	// after it has already been resumed.
	ErrNotSuspended = errors.New("winjob: process must still be suspended when assigned to a job")
	// ErrAlreadyResumed is returned on a second resume of the same process.
	ErrAlreadyResumed = errors.New("winjob: process already resumed")
)

// Completion-port message codes posted by a job object (winnt.h).
const (
	msgActiveProcessZero = 4
	msgNewProcess        = 6
	msgExitProcess       = 7
	msgAbnormalExit      = 8
)

// EventKind classifies a job lifecycle notification.
type EventKind int

const (
	// EventOther covers every message kind the drain loop does not care
	// about. The kernel posts an open-ended variety of them.
	EventOther EventKind = iota
	// EventMemberAdded reports a process joining the job.
	EventMemberAdded
	// EventMemberExited reports a member process exiting, normally or not.
	EventMemberExited
	// EventEmptied reports that the job's active process count hit zero.
	EventEmptied
)

// Event is one decoded notification from a job's completion port.
type Event struct {
	Kind EventKind
	// Key is the completion key of the posting job. A port can serve
	// more than one job, so the key is part of the termination check.
	Key uintptr
	// Pid identifies the member process for added/exited events.
	Pid uint32
}

func decodeEvent(code uint32, key uintptr, pid uint32) Event {
	ev := Event{Key: key, Pid: pid}
	switch code {
	case msgActiveProcessZero:
		ev.Kind = EventEmptied
	case msgNewProcess:
		ev.Kind = EventMemberAdded
	case msgExitProcess, msgAbnormalExit:
		ev.Kind = EventMemberExited
	default:
		ev.Kind = EventOther
	}
	return ev
}

// EventSource yields job lifecycle events in the order the kernel
// posted them, blocking until one is available.
type EventSource interface {
	Next() (Event, error)
}

// awaitEmpty consumes events from src until the job identified by key
// reports that it has no active processes left. Events about individual
// members, and events posted for any other key, are discarded without
// ending the wait.
func awaitEmpty(src EventSource, key uintptr) error {
	for {
		ev, err := src.Next()
		if err != nil {
			return err
		}
		if ev.Kind == EventEmptied && ev.Key == key {
			return nil
		}
	}
}

// lifecycle tracks the suspended-to-resumed transition of a launched
// process, so that ordering mistakes surface as errors instead of
// processes silently escaping job accounting.
type lifecycle struct {
	resumed bool
}

func (l *lifecycle) markAssigned() error {
	if l.resumed {
		return ErrNotSuspended
	}
	return nil
}

func (l *lifecycle) markResumed() error {
	if l.resumed {
		return ErrAlreadyResumed
	}
	l.resumed = true
	return nil
}
