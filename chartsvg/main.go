// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chartsvg renders a chart described in YAML as SVG.
//
// The input describes the chart's scales and one or more series:
//
//	title: Latency
//	x: {scale: time}
//	y: {scale: log}
//	series:
//	- name: p50
//	  kind: line
//	  data:
//	  - {x: 2016-01-01T00:00:00Z, y: 12}
//	  - {x: 2016-01-02T00:00:00Z, y: 15}
//
// Series kinds are scatter, line and bar. Scales are linear, log,
// time and band. A legend is drawn when there is more than one series
// unless legend is false.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"golang.org/x/crypto/ssh/terminal"
)

func main() {
	log.SetPrefix("chartsvg: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
		flagWidth      = flag.Float64("w", 0, "override the chart's `width`")
		flagHeight     = flag.Float64("h", 0, "override the chart's `height`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	in := os.Stdin
	if path := flag.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}
	chart, err := parseChart(in)
	if err != nil {
		log.Fatal(err)
	}
	if *flagWidth > 0 {
		chart.Width = *flagWidth
	}
	if *flagHeight > 0 {
		chart.Height = *flagHeight
	}

	out := os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		out = f
	} else if terminal.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write SVG to a terminal; use -o")
	}

	if err := renderChart(chart, out); err != nil {
		log.Fatal(err)
	}
}
