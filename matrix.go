package sgemm

import (
	"fmt"
	"math/rand"
)

// FillPolicy initializes the backing storage of a new Matrix.
type FillPolicy interface {
	fill(data []float32) error
}

type zeroFill struct{}

func (zeroFill) fill([]float32) error { return nil }

// Zeros leaves every element at zero.
func Zeros() FillPolicy { return zeroFill{} }

type valuesFill struct {
	values []float32
}

func (f valuesFill) fill(data []float32) error {
	if len(f.values) != len(data) {
		return NewLengthMismatchError("NewMatrix", len(data), len(f.values))
	}
	copy(data, f.values)
	return nil
}

// FromValues copies the given row-major values into the new matrix. The
// length must be exactly rows*cols.
func FromValues(values []float32) FillPolicy {
	return valuesFill{values: values}
}

type normalFill struct {
	seed int64
}

func (f normalFill) fill(data []float32) error {
	rng := rand.New(rand.NewSource(f.seed))
	for i := range data {
		data[i] = float32(rng.NormFloat64())
	}
	return nil
}

// RandomNormal fills the new matrix with standard-normal values from a
// seeded generator. Equal seeds produce equal matrices, so callers that
// want distinct operands must seed each matrix differently.
func RandomNormal(seed int64) FillPolicy {
	return normalFill{seed: seed}
}

// Matrix is a dense row-major matrix of float32 values. The element at
// (i, j) lives at data[i*cols+j]. The backing storage is allocated
// 64-byte aligned and its length is always rows*cols.
//
// A Matrix is fully initialized at construction. The multiply and
// transpose kernels never mutate their inputs; they allocate and return a
// fresh output (or write into a caller-owned destination).
type Matrix struct {
	rows, cols int
	data       []float32
}

// NewMatrix allocates a rows x cols matrix and initializes it with fill.
// Fails with ErrInvalidDimension when either count is negative and with
// ErrLengthMismatch when FromValues supplies the wrong number of values.
func NewMatrix(rows, cols int, fill FillPolicy) (*Matrix, error) {
	if rows < 0 || cols < 0 {
		return nil, NewInvalidDimensionError("NewMatrix", rows, cols)
	}
	n := rows * cols
	if rows != 0 && n/rows != cols {
		return nil, &Error{
			Kind: ErrInvalidDimension,
			Op:   "NewMatrix",
			Msg:  fmt.Sprintf("rows=%d cols=%d, element count overflows", rows, cols),
		}
	}
	m := &Matrix{rows: rows, cols: cols, data: alignedSlice(n)}
	if err := fill.fill(m.data); err != nil {
		return nil, err
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) { return m.rows, m.cols }

// At returns the element at (i, j). Fails with ErrIndexOutOfRange when the
// index lies outside the matrix.
func (m *Matrix) At(i, j int) (float32, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, NewIndexOutOfRangeError("At", i, j, m.rows, m.cols)
	}
	return m.data[i*m.cols+j], nil
}

// Set stores v at (i, j). Fails with ErrIndexOutOfRange when the index
// lies outside the matrix.
func (m *Matrix) Set(i, j int, v float32) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return NewIndexOutOfRangeError("Set", i, j, m.rows, m.cols)
	}
	m.data[i*m.cols+j] = v
	return nil
}

// Data returns the backing storage in row-major order without copying.
// Mutations through the returned slice are visible in the matrix. Bulk
// consumers (kernels, transpose, serialization) use this instead of
// element-wise access.
func (m *Matrix) Data() []float32 { return m.data }

// Clone returns a deep copy with freshly aligned storage.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: alignedSlice(len(m.data))}
	copy(c.data, m.data)
	return c
}
