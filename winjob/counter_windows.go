//go:build windows

package winjob

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                   = windows.NewLazySystemDLL("kernel32.dll")
	procQueryPerformanceCounter   = modkernel32.NewProc("QueryPerformanceCounter")
	procQueryPerformanceFrequency = modkernel32.NewProc("QueryPerformanceFrequency")
)

// Counter reads the monotonic high-resolution performance counter.
func Counter() (int64, error) {
	var ticks int64
	ret, _, err := procQueryPerformanceCounter.Call(uintptr(unsafe.Pointer(&ticks)))
	if ret == 0 {
		return 0, fmt.Errorf("QueryPerformanceCounter: %w", err)
	}
	return ticks, nil
}

// CounterFrequency reports the performance counter resolution in ticks
// per second. The value is fixed at boot but is not 1 Hz; wall-time
// differences must be divided by it.
func CounterFrequency() (int64, error) {
	var freq int64
	ret, _, err := procQueryPerformanceFrequency.Call(uintptr(unsafe.Pointer(&freq)))
	if ret == 0 {
		return 0, fmt.Errorf("QueryPerformanceFrequency: %w", err)
	}
	return freq, nil
}
