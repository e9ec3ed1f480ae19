package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/minio/selfupdate"
	"github.com/unkaktus/jobtime"
	"github.com/urfave/cli/v2"
)

var version string

func run() error {
	app := &cli.App{
		Name:     "jobtime",
		HelpName: "jobtime",
		Usage:    "Time a command and everything it spawns",
		Version:  version,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "Run the given command and report its CPU times",
				ArgsUsage: "command [argument ...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the report to this file instead of standard error",
					},
					&cli.BoolFlag{
						Name:    "append",
						Aliases: []string{"a"},
						Usage:   "Append to the output file instead of truncating it",
					},
					&cli.StringFlag{
						Name:    "tag",
						Aliases: []string{"t"},
						Usage:   "Log CPU consumption under this tag",
					},
				},
				Action: func(cCtx *cli.Context) error {
					if cCtx.Args().First() == "" {
						return fmt.Errorf("no command given")
					}
					cmdline := append([]string{cCtx.Args().First()}, cCtx.Args().Tail()...)

					times, err := jobtime.Run(jobtime.NewSystem(), jobtime.CommandLine(cmdline))
					if err != nil {
						return fmt.Errorf("time command: %w", err)
					}

					outputFilename := cCtx.String("output")
					out, err := jobtime.OpenOutput(outputFilename, cCtx.Bool("append"))
					if err != nil {
						return err
					}
					defer out.Close()
					if outputFilename == "" {
						// Separate the report from the command's own output.
						fmt.Fprintln(out)
					}
					if err := jobtime.WriteTimes(out, times); err != nil {
						return err
					}

					if tag := cCtx.String("tag"); tag != "" {
						if err := jobtime.WriteLog(tag, times); err != nil {
							log.Printf("write log: %v", err)
						}
					}

					return nil
				},
			},
			{
				Name:  "report",
				Usage: "Report on the aggregated CPU consumption",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "logfile",
						Usage: "Filename of the log file",
					},
				},
				Action: func(cCtx *cli.Context) error {
					return jobtime.MakeReport(os.Stdout, cCtx.String("logfile"))
				},
			},
			{
				Name:  "update",
				Usage: "Update itself",
				Action: func(cCtx *cli.Context) error {
					binaryName := fmt.Sprintf("jobtime-%s-%s", runtime.GOOS, runtime.GOARCH)
					if runtime.GOOS == "windows" {
						binaryName += ".exe"
					}
					jobtimeURL := "https://github.com/unkaktus/jobtime/releases/latest/download/" + binaryName
					resp, err := http.Get(jobtimeURL)
					if err != nil {
						return fmt.Errorf("download release binary: %w", err)
					}
					defer resp.Body.Close()
					if resp.StatusCode != http.StatusOK {
						return fmt.Errorf("unsuccessful download: status %s", resp.Status)
					}
					fmt.Printf("Downloaded new binary.\n")
					err = selfupdate.Apply(resp.Body, selfupdate.Options{})
					if err != nil {
						return fmt.Errorf("apply update: %w", err)
					}
					fmt.Printf("Successfully applied the update.\n")
					return nil
				},
			},
		},
	}
	return app.Run(os.Args)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(2)
	}
}
