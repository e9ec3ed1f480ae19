package jobtime

import (
	"fmt"
	"io"
	"os"
	"time"
)

// FormatDuration renders d in the classic time(1) form,
// "<minutes>m<seconds>s" with millisecond precision.
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	minutes := int64(seconds) / 60
	seconds -= float64(minutes) * 60
	return fmt.Sprintf("%dm%.3fs", minutes, seconds)
}

// WriteTimes writes the three labeled duration lines to w.
func WriteTimes(w io.Writer, t *Times) error {
	lines := []struct {
		label string
		d     time.Duration
	}{
		{"real", t.Real},
		{"user", t.User},
		{"sys", t.System},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", line.label, FormatDuration(line.d)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// OpenOutput returns the destination for the timing report: the named
// file, or standard error when path is empty. An existing file is
// truncated unless appendFile is set.
func OpenOutput(path string, appendFile bool) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stderr}, nil
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendFile {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	return f, nil
}
