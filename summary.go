package jobtime

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Consumption aggregates the runs recorded under one tag.
type Consumption struct {
	Runs   int
	Real   float64 // [s]
	User   float64 // [s]
	System float64 // [s]
}

// Report is the JSON document produced by MakeReport.
type Report struct {
	Timestamp string
	Software  string
	Units     map[string]string
	Tags      map[string]*Consumption
}

func summarize(records [][]string) (map[string]*Consumption, error) {
	tags := map[string]*Consumption{}
	for _, row := range records {
		if len(row) < 6 {
			return nil, fmt.Errorf("invalid row length")
		}
		tag := row[2]

		if _, ok := tags[tag]; !ok {
			tags[tag] = &Consumption{}
		}

		real, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parse real time: %w", err)
		}
		user, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("parse user CPU time: %w", err)
		}
		system, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("parse system CPU time: %w", err)
		}

		tags[tag].Runs++
		tags[tag].Real += real
		tags[tag].User += user
		tags[tag].System += system
	}
	return tags, nil
}

// MakeReport reads the usage log and writes per-tag aggregates to w as
// JSON. An empty logFilename means the default log location.
func MakeReport(w io.Writer, logFilename string) error {
	if logFilename == "" {
		var err error
		logFilename, err = LogFilename()
		if err != nil {
			return err
		}
	}
	logFile, err := os.Open(logFilename)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	csvReader := csv.NewReader(logFile)
	records, err := csvReader.ReadAll()
	if err != nil {
		return fmt.Errorf("read log file: %w", err)
	}

	tags, err := summarize(records)
	if err != nil {
		return err
	}

	report := Report{
		Software:  "github.com/unkaktus/jobtime",
		Timestamp: time.Now().Format(time.DateTime),
		Tags:      tags,
		Units: map[string]string{
			"Real":   "s",
			"User":   "s",
			"System": "s",
		},
	}

	jsonData, _ := json.MarshalIndent(report, "", "     ")
	fmt.Fprintf(w, "%s\n", jsonData)

	return nil
}
