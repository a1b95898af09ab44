// Copyright ©2024 The GUDA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command striad runs the STREAM triad benchmark and prints the data size in
// kB and the achieved MFLOP/s on one line.
//
// Usage:
//
//	striad [flags] <test type> <N>
//
// The worker count for the parallel test types follows GOMAXPROCS.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/LynnColeArt/striad"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	prog := filepath.Base(args[0])

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stdout)
	var (
		verbose  = fs.Bool("v", false, "Verbose output")
		validate = fs.Bool("validate", false, "Check the result array after the trials")
		counters = fs.Bool("counters", false, "Collect hardware performance counters (Linux)")
		logDir   = fs.String("log", "", "Append a JSON result record to a session file in this directory")
		version  = fs.Bool("version", false, "Print the version and exit")
	)
	fs.Usage = func() { usage(stdout, prog, fs) }

	flagArgs, positional := splitArgs(fs, args[1:])
	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	positional = append(positional, fs.Args()...)

	if *version {
		v, sum := striad.Version()
		if v == "" {
			v = "(unknown)"
		}
		fmt.Fprintf(stdout, "striad %s %s %s\n", v, sum, runtime.Version())
		return 0
	}

	if len(positional) < 2 {
		usage(stdout, prog, fs)
		return 0
	}

	typ, err := strconv.Atoi(positional[0])
	if err != nil {
		fmt.Fprintf(stdout, "Invalid test type %q: not an integer\n", positional[0])
		return 1
	}
	n, err := strconv.Atoi(positional[1])
	if err != nil {
		fmt.Fprintf(stdout, "Invalid N %q: not an integer\n", positional[1])
		return 1
	}

	testType, err := striad.ParseTestType(typ)
	if err != nil {
		fmt.Fprintf(stdout, "Unknown test type: %d\n", typ)
		return 1
	}
	if n <= 0 {
		fmt.Fprintln(stdout, "<N> must be greater than zero")
		return 1
	}

	cfg := striad.DefaultConfig()
	cfg.Type = testType
	cfg.N = n
	cfg.Validate = *validate
	cfg.Counters = *counters
	if *verbose {
		cfg.Logger = log.New(stdout, "", 0)
	}

	var results *striad.ResultLog
	if *logDir != "" {
		results, err = striad.NewResultLog(*logDir, "striad")
		if err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}
	}

	res, err := striad.Run(cfg)
	if err != nil {
		fmt.Fprintln(stdout, err)
		if results != nil {
			results.LogFail(testType.String(), err)
		}
		return 1
	}

	fmt.Fprintln(stdout, res)
	if results != nil {
		if err := results.LogPass(res); err != nil {
			fmt.Fprintln(stdout, err)
			return 1
		}
	}
	return 0
}

// splitArgs separates flags from positional arguments. Integers, negative
// ones included, are always positional, and flags may follow them.
func splitArgs(fs *flag.FlagSet, args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return flags, append(positional, args[i+1:]...)
		}
		if _, err := strconv.Atoi(a); err == nil || !strings.HasPrefix(a, "-") || a == "-" {
			positional = append(positional, a)
			continue
		}

		flags = append(flags, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		if i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}
	return flags, positional
}

func usage(w io.Writer, prog string, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s <test type>  <N>\n", prog)
	fmt.Fprintln(w, "Test types: 0 - sequential, 1 - parallel throughput, 2 - parallel worksharing")
	fmt.Fprintln(w, "Set the number of workers for types 1 and 2 with GOMAXPROCS.")
	fmt.Fprintln(w, "Flags:")
	fs.PrintDefaults()
}
