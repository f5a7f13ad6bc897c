// Copyright ©2025 The sgemm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sgemm implements dense single-precision matrix multiplication
// on the CPU, together with the pieces a benchmark of it needs: a
// row-major float32 matrix buffer, a family of interchangeable kernels,
// a blocked transpose, and tolerance-based verification.
//
// The kernel family covers the usual ladder of implementations:
//   - naive reference loops, the correctness oracle
//   - cache-blocked and cache-oblivious tilings
//   - a portable-SIMD micro-kernel with register accumulation
//   - row-strip parallel execution with an explicit worker count
//   - library-backed paths through gonum BLAS and gorgonia tensor
//
// All kernels compute C = A*B for row-major float32 operands and share
// one validation contract. Reordered accumulation across kernels changes
// rounding only; comparisons use the tolerance helpers in this package.
//
// The bench subpackage times kernels and reports GFLOPS; cmd/gemmbench
// is the command-line front end.
package sgemm
