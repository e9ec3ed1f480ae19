package winjob

import (
	"errors"
	"testing"
)

func TestDecodeEvent(t *testing.T) {
	cases := []struct {
		name string
		code uint32
		want EventKind
	}{
		{"active process zero", msgActiveProcessZero, EventEmptied},
		{"new process", msgNewProcess, EventMemberAdded},
		{"exit process", msgExitProcess, EventMemberExited},
		{"abnormal exit", msgAbnormalExit, EventMemberExited},
		{"end of job time", 1, EventOther},
		{"unknown", 42, EventOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := decodeEvent(tc.code, 7, 1234)
			if ev.Kind != tc.want {
				t.Fatalf("decodeEvent(%d) kind = %v, want %v", tc.code, ev.Kind, tc.want)
			}
			if ev.Key != 7 || ev.Pid != 1234 {
				t.Fatalf("decodeEvent(%d) = %+v, key/pid not carried through", tc.code, ev)
			}
		})
	}
}

type queueSource struct {
	events []Event
	err    error
}

func (q *queueSource) Next() (Event, error) {
	if len(q.events) == 0 {
		if q.err != nil {
			return Event{}, q.err
		}
		// A drained fake means the loop asked for more events than the
		// scenario provides, i.e. it missed its termination condition.
		return Event{}, errors.New("queue exhausted")
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, nil
}

func TestAwaitEmptyIgnoresSpuriousEvents(t *testing.T) {
	const key = uintptr(11)
	src := &queueSource{events: []Event{
		{Kind: EventMemberAdded, Key: key, Pid: 100},
		{Kind: EventMemberAdded, Key: key, Pid: 101},
		{Kind: EventOther, Key: key},
		{Kind: EventMemberExited, Key: key, Pid: 101},
		{Kind: EventMemberExited, Key: key, Pid: 100},
		{Kind: EventEmptied, Key: key},
		{Kind: EventMemberAdded, Key: key, Pid: 102},
	}}
	if err := awaitEmpty(src, key); err != nil {
		t.Fatalf("awaitEmpty: %v", err)
	}
	if len(src.events) != 1 {
		t.Fatalf("loop consumed %d events past termination", 1-len(src.events))
	}
}

func TestAwaitEmptyIgnoresOtherJobsEvents(t *testing.T) {
	const key = uintptr(11)
	src := &queueSource{events: []Event{
		{Kind: EventEmptied, Key: 99},
		{Kind: EventMemberExited, Key: key, Pid: 100},
		{Kind: EventEmptied, Key: key},
	}}
	if err := awaitEmpty(src, key); err != nil {
		t.Fatalf("awaitEmpty: %v", err)
	}
	if len(src.events) != 0 {
		t.Fatalf("emptied event for a foreign key must not end the wait")
	}
}

func TestAwaitEmptyPropagatesSourceError(t *testing.T) {
	want := errors.New("port closed")
	src := &queueSource{err: want}
	if err := awaitEmpty(src, 1); !errors.Is(err, want) {
		t.Fatalf("awaitEmpty error = %v, want %v", err, want)
	}
}

func TestLifecycleAssignAfterResume(t *testing.T) {
	l := &lifecycle{}
	if err := l.markResumed(); err != nil {
		t.Fatalf("markResumed: %v", err)
	}
	if err := l.markAssigned(); !errors.Is(err, ErrNotSuspended) {
		t.Fatalf("markAssigned after resume = %v, want ErrNotSuspended", err)
	}
}

func TestLifecycleAssignThenResume(t *testing.T) {
	l := &lifecycle{}
	if err := l.markAssigned(); err != nil {
		t.Fatalf("markAssigned: %v", err)
	}
	if err := l.markResumed(); err != nil {
		t.Fatalf("markResumed: %v", err)
	}
	if err := l.markResumed(); !errors.Is(err, ErrAlreadyResumed) {
		t.Fatalf("second markResumed = %v, want ErrAlreadyResumed", err)
	}
}
