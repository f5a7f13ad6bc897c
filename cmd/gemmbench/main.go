// Copyright ©2025 The sgemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gemmbench times the sgemm kernels and prints per-iteration
// throughput.
//
// Typical use:
//
//	gemmbench --size 2048 --iterations 10 --seed 42
//	gemmbench --kernel parallel --workers 8 --size 4096
//	gemmbench --transpose --size 4096
package main

import (
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/fernwell/sgemm"
	"github.com/fernwell/sgemm/bench"
)

func main() {
	var (
		size       = flag.Int("size", 2048, "square matrix edge; A and B are both size x size")
		iterations = flag.Int("iterations", 10, "timed kernel invocations")
		seed       = flag.Int64("seed", 1, "seed for matrix A; matrix B uses seed+1")
		kernelName = flag.String("kernel", "auto", "kernel: naive, blocked, oblivious, vector, parallel, blas, tensor, auto")
		workers    = flag.Int("workers", 0, "worker count for the parallel kernel, 0 means all CPUs")
		alloc      = flag.Bool("alloc", false, "include output allocation in the timed window")
		verify     = flag.Bool("verify", false, "check the result against the naive kernel after timing")
		transpose  = flag.Bool("transpose", false, "benchmark the blocked transpose instead of a multiply")
		jsonPath   = flag.String("json", "", "write a JSON session log to this file")
		quiet      = flag.Bool("quiet", false, "only print the summary line")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *quiet {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).With().Timestamp().Logger()

	log.Info().
		Str("go", runtime.Version()).
		Str("arch", runtime.GOARCH).
		Int("cpus", runtime.NumCPU()).
		Str("features", sgemm.Features().String()).
		Int("vector_width", sgemm.VectorWidth()).
		Msg("gemmbench")

	opts := bench.Options{
		IncludeAlloc: *alloc,
		Verify:       *verify,
		Logger:       &log,
	}
	if *jsonPath != "" {
		sl, err := bench.NewSessionLogger(*jsonPath)
		if err != nil {
			log.Fatal().Err(err).Msg("session log unavailable")
		}
		opts.Session = sl
	}
	runner := bench.NewRunner(opts)

	if *transpose {
		runTranspose(log, runner, *size, *seed, *iterations, *alloc)
		return
	}
	runMultiply(log, runner, *kernelName, *workers, *size, *seed, *iterations, *alloc)
}

func runMultiply(log zerolog.Logger, runner *bench.Runner, kernelName string, workers, size int, seed int64, iterations int, alloc bool) {
	a, err := sgemm.NewMatrix(size, size, sgemm.RandomNormal(seed))
	if err != nil {
		log.Fatal().Err(err).Msg("matrix A rejected")
	}
	b, err := sgemm.NewMatrix(size, size, sgemm.RandomNormal(seed+1))
	if err != nil {
		log.Fatal().Err(err).Msg("matrix B rejected")
	}

	var kern sgemm.Kernel
	if kernelName == "parallel" && workers != 0 {
		kern = sgemm.NewParallelKernel(workers)
	} else {
		kern, err = sgemm.KernelByName(kernelName)
		if err != nil {
			log.Fatal().Err(err).Msg("kernel selection failed")
		}
	}

	log.Info().
		Str("kernel", kern.Name()).
		Int("size", size).
		Int("iterations", iterations).
		Int64("seed", seed).
		Msg("multiply benchmark")

	ms, err := runner.Run(kern, a, b, iterations)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
	report(log, kern.Name(), size, size, size, alloc, ms)
}

func runTranspose(log zerolog.Logger, runner *bench.Runner, size int, seed int64, iterations int, alloc bool) {
	a, err := sgemm.NewMatrix(size, size, sgemm.RandomNormal(seed))
	if err != nil {
		log.Fatal().Err(err).Msg("matrix rejected")
	}

	log.Info().
		Int("size", size).
		Int("iterations", iterations).
		Int64("seed", seed).
		Msg("transpose benchmark")

	ms, err := runner.RunTranspose(a, iterations)
	if err != nil {
		log.Fatal().Err(err).Msg("benchmark failed")
	}
	report(log, "transpose", size, 0, size, alloc, ms)
}

func report(log zerolog.Logger, kernel string, m, k, n int, alloc bool, ms []bench.Measurement) {
	for i, mm := range ms {
		log.Info().
			Int("iteration", i).
			Dur("elapsed", mm.Elapsed).
			Float64("gflops", mm.GFLOPS).
			Msg(kernel)
	}
	s := bench.NewSession(kernel, m, k, n, alloc, ms)
	log.Info().
		Float64("best_gflops", s.BestGFLOPS).
		Float64("mean_gflops", s.MeanGFLOPS).
		Int("iterations", len(ms)).
		Msg("summary")
}
