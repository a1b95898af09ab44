// Command striad-summary prints a table of the records in a striad result log
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/LynnColeArt/striad"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("striad-summary", flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		logDir  = fs.String("dir", striad.DefaultLogDir, "Directory holding result logs")
		logFile = fs.String("file", "", "Result log to summarize (default: latest in -dir)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	file := *logFile
	if file == "" {
		var err error
		if file, err = striad.LatestLogFile(*logDir); err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}
	}

	if err := striad.PrintSummary(stdout, file); err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}
	return 0
}
