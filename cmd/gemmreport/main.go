// Copyright ©2025 The sgemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gemmreport summarizes session logs written by gemmbench --json,
// ranking the recorded runs by throughput.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/fernwell/sgemm/bench"
)

func main() {
	var jsonFile string
	flag.StringVar(&jsonFile, "file", "", "session log written by gemmbench --json")
	flag.Parse()

	if jsonFile == "" {
		fmt.Println("Usage: gemmreport -file <sessions.json>")
		os.Exit(1)
	}

	data, err := os.ReadFile(jsonFile)
	if err != nil {
		log.Fatal(err)
	}

	var sessions []bench.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Fatalf("parse %s: %v", jsonFile, err)
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions recorded")
		return
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].BestGFLOPS > sessions[j].BestGFLOPS
	})

	fmt.Println("Benchmark Sessions")
	fmt.Println("==================")
	fmt.Printf("%-30s %6s %13s %13s %7s\n", "Session", "Iters", "Best GFLOPS", "Mean GFLOPS", "Alloc")
	fmt.Println(strings.Repeat("-", 73))

	for _, s := range sessions {
		alloc := "-"
		if s.IncludeAlloc {
			alloc = "timed"
		}
		fmt.Printf("%-30s %6d %13.2f %13.2f %7s\n",
			s.Name, len(s.Iterations), s.BestGFLOPS, s.MeanGFLOPS, alloc)
	}

	fmt.Printf("\nmachine: %s, vector width %d, GOMAXPROCS %d\n",
		sessions[0].CPUFeatures, sessions[0].VectorWidth, sessions[0].GoMaxProcs)
}
