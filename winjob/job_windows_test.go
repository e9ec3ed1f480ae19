//go:build windows

package winjob

import (
	"errors"
	"testing"
)

func TestJobAccountingAfterDrain(t *testing.T) {
	job, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer job.Close()

	proc, err := StartSuspended("cmd.exe /c exit 0")
	if err != nil {
		t.Fatalf("StartSuspended: %v", err)
	}
	defer proc.Close()

	if err := job.Assign(proc); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := proc.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if err := job.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	user, kernel, err := job.Accounting()
	if err != nil {
		t.Fatalf("Accounting: %v", err)
	}
	if user < 0 || kernel < 0 {
		t.Fatalf("negative accounting: user=%v kernel=%v", user, kernel)
	}
}

func TestJobAssignAfterResume(t *testing.T) {
	job, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer job.Close()

	proc, err := StartSuspended("cmd.exe /c exit 0")
	if err != nil {
		t.Fatalf("StartSuspended: %v", err)
	}
	defer proc.Close()

	if err := proc.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if err := job.Assign(proc); !errors.Is(err, ErrNotSuspended) {
		t.Fatalf("Assign after resume = %v, want ErrNotSuspended", err)
	}
}
