package bench_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fernwell/sgemm/bench"
)

func TestNewSessionName(t *testing.T) {
	ms := []bench.Measurement{{Elapsed: time.Millisecond, GFLOPS: 1}}

	s := bench.NewSession("vector", 512, 256, 128, false, ms)
	require.Equal(t, "vector_512x256x128", s.Name)

	// K of zero marks a transpose session
	tr := bench.NewSession("transpose", 512, 0, 512, false, ms)
	require.Equal(t, "transpose_512x512", tr.Name)
}

func TestNewSessionStats(t *testing.T) {
	ms := []bench.Measurement{
		{Elapsed: time.Millisecond, GFLOPS: 1},
		{Elapsed: time.Millisecond, GFLOPS: 3},
		{Elapsed: time.Millisecond, GFLOPS: 2},
	}

	s := bench.NewSession("naive", 64, 64, 64, true, ms)
	require.Equal(t, 3.0, s.BestGFLOPS)
	require.InDelta(t, 2.0, s.MeanGFLOPS, 1e-12)
	require.True(t, s.IncludeAlloc)
	require.Len(t, s.Iterations, 3)
	require.NotEmpty(t, s.CPUFeatures)
	require.GreaterOrEqual(t, s.VectorWidth, 1)
	require.GreaterOrEqual(t, s.GoMaxProcs, 1)
	require.False(t, s.Timestamp.IsZero())
}

func TestNewSessionEmpty(t *testing.T) {
	s := bench.NewSession("naive", 8, 8, 8, false, nil)
	require.Zero(t, s.BestGFLOPS)
	require.Zero(t, s.MeanGFLOPS)
}

func TestSessionLoggerWritesImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	_, err := bench.NewSessionLogger(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(data))
}

func TestSessionLoggerCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "log.json")
	sl, err := bench.NewSessionLogger(path)
	require.NoError(t, err)
	require.Equal(t, path, sl.Path())

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSessionLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.json")
	sl, err := bench.NewSessionLogger(path)
	require.NoError(t, err)

	ms := []bench.Measurement{{Elapsed: 2 * time.Millisecond, GFLOPS: 5}}
	require.NoError(t, sl.Log(bench.NewSession("vector", 64, 64, 64, false, ms)))
	require.NoError(t, sl.Log(bench.NewSession("blas", 128, 128, 128, false, ms)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var sessions []bench.Session
	require.NoError(t, json.Unmarshal(data, &sessions))
	require.Len(t, sessions, 2)
	require.Equal(t, "vector_64x64x64", sessions[0].Name)
	require.Equal(t, "blas_128x128x128", sessions[1].Name)

	// Measurements survive the round trip
	require.Equal(t, 2*time.Millisecond, sessions[0].Iterations[0].Elapsed)
	require.Equal(t, 5.0, sessions[0].Iterations[0].GFLOPS)
}
