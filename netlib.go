//go:build netlib

package sgemm

// This file is only included when building with -tags netlib (cgo
// required). It swaps the system CBLAS (Accelerate on macOS, OpenBLAS or
// MKL on Linux) in behind BLASKernel.

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/netlib/blas/netlib"
)

func init() {
	blas32.Use(netlib.Implementation{})
	log.Debug().Msg("netlib CBLAS registered for the blas kernel")
}
