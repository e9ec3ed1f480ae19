package jobtime

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	cpuid "github.com/klauspost/cpuid/v2"
)

const dirEnv = "JOBTIME_DIR"

func getJobtimeDir() (string, error) {
	if dir := os.Getenv(dirEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	jobtimeDir := path.Join(homeDir, ".jobtime")
	if err := os.MkdirAll(jobtimeDir, 0755); err != nil {
		return "", fmt.Errorf("create jobtime directory: %w", err)
	}
	return jobtimeDir, nil
}

// LogFilename returns the path of the usage log file.
func LogFilename() (string, error) {
	jobtimeDir, err := getJobtimeDir()
	if err != nil {
		return "", fmt.Errorf("get jobtime directory: %w", err)
	}
	return filepath.Join(jobtimeDir, "log.csv"), nil
}

// WriteLog appends one run record to the usage log: timestamp, CPU
// brand string, tag, and the three durations in seconds.
func WriteLog(tag string, t *Times) error {
	logFilename, err := LogFilename()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logFilename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	record := strings.Join([]string{
		time.Now().Format(time.DateTime),
		"\"" + cpuid.CPU.BrandName + "\"",
		tag,
		fmt.Sprintf("%.3f", t.Real.Seconds()),
		fmt.Sprintf("%.3f", t.User.Seconds()),
		fmt.Sprintf("%.3f", t.System.Seconds()),
	}, ",")

	_, err = fmt.Fprintf(logFile, "%s\n", record)
	if err != nil {
		return fmt.Errorf("write log record: %w", err)
	}
	return nil
}
