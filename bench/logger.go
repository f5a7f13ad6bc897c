package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fernwell/sgemm"
)

// Session captures one benchmark run for the JSON session log: the
// problem, the machine it ran on, and every measurement.
type Session struct {
	Name         string        `json:"name"`
	Kernel       string        `json:"kernel"`
	M            int           `json:"m"`
	K            int           `json:"k,omitempty"`
	N            int           `json:"n"`
	IncludeAlloc bool          `json:"include_alloc"`
	CPUFeatures  string        `json:"cpu_features"`
	VectorWidth  int           `json:"vector_width"`
	GoMaxProcs   int           `json:"gomaxprocs"`
	Timestamp    time.Time     `json:"timestamp"`
	Iterations   []Measurement `json:"iterations"`
	BestGFLOPS   float64       `json:"best_gflops"`
	MeanGFLOPS   float64       `json:"mean_gflops"`
}

// NewSession summarizes a finished run. K of zero marks a transpose
// session (no inner dimension).
func NewSession(kernel string, m, k, n int, includeAlloc bool, ms []Measurement) Session {
	name := fmt.Sprintf("%s_%dx%dx%d", kernel, m, k, n)
	if k == 0 {
		name = fmt.Sprintf("%s_%dx%d", kernel, m, n)
	}
	s := Session{
		Name:         name,
		Kernel:       kernel,
		M:            m,
		K:            k,
		N:            n,
		IncludeAlloc: includeAlloc,
		CPUFeatures:  sgemm.Features().String(),
		VectorWidth:  sgemm.VectorWidth(),
		GoMaxProcs:   runtime.GOMAXPROCS(0),
		Timestamp:    time.Now(),
		Iterations:   ms,
	}
	var sum float64
	for _, mm := range ms {
		if mm.GFLOPS > s.BestGFLOPS {
			s.BestGFLOPS = mm.GFLOPS
		}
		sum += mm.GFLOPS
	}
	if len(ms) > 0 {
		s.MeanGFLOPS = sum / float64(len(ms))
	}
	return s
}

// SessionLogger appends sessions to a JSON file. It flushes after every
// log so an interrupted benchmark loses nothing.
type SessionLogger struct {
	mu       sync.Mutex
	path     string
	sessions []Session
}

// NewSessionLogger logs to the given file path, creating parent
// directories as needed. The file is written immediately so a path
// problem surfaces before any benchmark time is spent.
func NewSessionLogger(path string) (*SessionLogger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("bench: create session log directory: %w", err)
		}
	}
	sl := &SessionLogger{path: path, sessions: make([]Session, 0)}
	if err := sl.flush(); err != nil {
		return nil, err
	}
	return sl, nil
}

// Log appends one session and flushes the file.
func (sl *SessionLogger) Log(s Session) error {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.sessions = append(sl.sessions, s)
	return sl.flush()
}

// Path returns the session file location.
func (sl *SessionLogger) Path() string {
	return sl.path
}

func (sl *SessionLogger) flush() error {
	data, err := json.MarshalIndent(sl.sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("bench: marshal session log: %w", err)
	}
	return os.WriteFile(sl.path, data, 0644)
}
