package sgemm

import (
	"math"
	"testing"
)

func TestFloat32NearEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float32
		tol      ToleranceConfig
		expected bool
	}{
		// Exact equality
		{
			name:     "Exact_Equal",
			a:        1.0,
			b:        1.0,
			tol:      DefaultTolerance(),
			expected: true,
		},
		// Within absolute tolerance
		{
			name:     "Within_AbsTol",
			a:        1e-8,
			b:        2e-8,
			tol:      DefaultTolerance(),
			expected: true,
		},
		// Outside both tolerances
		{
			name:     "Outside_Tolerance",
			a:        1.0,
			b:        1.1,
			tol:      DefaultTolerance(),
			expected: false,
		},
		// Within relative tolerance
		{
			name:     "Within_RelTol",
			a:        1000.0,
			b:        1000.001,
			tol:      DefaultTolerance(),
			expected: true,
		},
		// Zero handling
		{
			name:     "Both_Zero",
			a:        0.0,
			b:        float32(math.Copysign(0, -1)),
			tol:      DefaultTolerance(),
			expected: true,
		},
		// NaN handling
		{
			name:     "Both_NaN",
			a:        float32(math.NaN()),
			b:        float32(math.NaN()),
			tol:      DefaultTolerance(),
			expected: true,
		},
		{
			name:     "NaN_Against_Number",
			a:        float32(math.NaN()),
			b:        1.0,
			tol:      DefaultTolerance(),
			expected: false,
		},
		// Infinity handling
		{
			name:     "Both_PosInf",
			a:        float32(math.Inf(1)),
			b:        float32(math.Inf(1)),
			tol:      DefaultTolerance(),
			expected: true,
		},
		{
			name:     "Both_NegInf",
			a:        float32(math.Inf(-1)),
			b:        float32(math.Inf(-1)),
			tol:      DefaultTolerance(),
			expected: true,
		},
		{
			name:     "Mixed_Inf",
			a:        float32(math.Inf(1)),
			b:        float32(math.Inf(-1)),
			tol:      DefaultTolerance(),
			expected: false,
		},
		// ULP tolerance
		{
			name:     "Within_ULP",
			a:        1.0,
			b:        math.Float32frombits(math.Float32bits(1.0) + 2),
			tol:      DefaultTolerance(),
			expected: true,
		},
		{
			name:     "Outside_ULP",
			a:        1.0,
			b:        math.Float32frombits(math.Float32bits(1.0) + 5),
			tol:      ToleranceConfig{AbsTol: 1e-9, RelTol: 1e-9, ULPTol: 4},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Float32NearEqual(tt.a, tt.b, tt.tol)
			if result != tt.expected {
				t.Errorf("Float32NearEqual(%v, %v) = %v, want %v",
					tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestFloat32ULPDiff(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float32
		expected int
	}{
		{
			name:     "Same_Value",
			a:        1.0,
			b:        1.0,
			expected: 0,
		},
		{
			name:     "Adjacent_Values",
			a:        1.0,
			b:        math.Float32frombits(math.Float32bits(1.0) + 1),
			expected: 1,
		},
		{
			name:     "Two_ULPs",
			a:        1.0,
			b:        math.Float32frombits(math.Float32bits(1.0) + 2),
			expected: 2,
		},
		{
			name:     "Different_Signs",
			a:        1.0,
			b:        -1.0,
			expected: math.MaxInt32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Float32ULPDiff(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Float32ULPDiff(%v, %v) = %v, want %v",
					tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestVerifyFloat32Array(t *testing.T) {
	tests := []struct {
		name     string
		expected []float32
		actual   []float32
		tol      ToleranceConfig
		wantPass bool
	}{
		{
			name:     "All_Match",
			expected: []float32{1.0, 2.0, 3.0, 4.0},
			actual:   []float32{1.0, 2.0, 3.0, 4.0},
			tol:      DefaultTolerance(),
			wantPass: true,
		},
		{
			name:     "Within_Tolerance",
			expected: []float32{1.0, 2.0, 3.0, 4.0},
			actual:   []float32{1.000001, 2.000001, 3.000001, 4.000001},
			tol:      DefaultTolerance(),
			wantPass: true,
		},
		{
			name:     "Outside_Tolerance",
			expected: []float32{1.0, 2.0, 3.0, 4.0},
			actual:   []float32{1.1, 2.0, 3.0, 4.0},
			tol:      DefaultTolerance(),
			wantPass: false,
		},
		{
			name:     "Different_Lengths",
			expected: []float32{1.0, 2.0, 3.0},
			actual:   []float32{1.0, 2.0},
			tol:      DefaultTolerance(),
			wantPass: false,
		},
		{
			name:     "With_NaN",
			expected: []float32{1.0, float32(math.NaN()), 3.0},
			actual:   []float32{1.0, float32(math.NaN()), 3.0},
			tol:      DefaultTolerance(),
			wantPass: true,
		},
		{
			name:     "Accumulated_Error",
			expected: []float32{1000.0},
			actual:   []float32{1000.5},
			tol:      RelaxedTolerance(),
			wantPass: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := VerifyFloat32Array(tt.expected, tt.actual, tt.tol)

			if result.Pass() != tt.wantPass {
				t.Errorf("VerifyFloat32Array: got pass=%v, want pass=%v\n%s",
					result.Pass(), tt.wantPass, result.String())
			}

			if tt.name == "All_Match" && result.NumErrors != 0 {
				t.Errorf("Expected 0 errors, got %d", result.NumErrors)
			}

			if tt.name == "Different_Lengths" && result.NumErrors != len(tt.expected) {
				t.Errorf("Expected %d errors for different lengths, got %d",
					len(tt.expected), result.NumErrors)
			}
		})
	}
}

func TestVerifyFloat32ArrayFirstError(t *testing.T) {
	expected := []float32{1, 2, 3, 4}
	actual := []float32{1, 2, 9, 9}

	result := VerifyFloat32Array(expected, actual, DefaultTolerance())
	if result.NumErrors != 2 {
		t.Errorf("NumErrors = %d, want 2", result.NumErrors)
	}
	if result.FirstError != 2 {
		t.Errorf("FirstError = %d, want 2", result.FirstError)
	}
	if result.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", result.TotalItems)
	}
}

func TestVerifyMatrices(t *testing.T) {
	a := mustMatrix(t, 2, 3, FromValues([]float32{1, 2, 3, 4, 5, 6}))
	b := a.Clone()

	if res := VerifyMatrices(a, b, DefaultTolerance()); !res.Pass() {
		t.Errorf("identical matrices failed verification:\n%s", res.String())
	}

	b.Data()[4] = -5
	res := VerifyMatrices(a, b, DefaultTolerance())
	if res.Pass() {
		t.Error("differing matrices passed verification")
	}
	if res.FirstError != 4 {
		t.Errorf("FirstError = %d, want 4", res.FirstError)
	}

	// Shape mismatch counts every element as an error
	c := mustMatrix(t, 3, 2, FromValues([]float32{1, 2, 3, 4, 5, 6}))
	res = VerifyMatrices(a, c, DefaultTolerance())
	if res.Pass() {
		t.Error("shape mismatch passed verification")
	}
	if res.NumErrors != 6 {
		t.Errorf("NumErrors = %d for shape mismatch, want 6", res.NumErrors)
	}
}

func TestTolerancePresets(t *testing.T) {
	def := DefaultTolerance()
	rel := RelaxedTolerance()

	if def.AbsTol >= rel.AbsTol {
		t.Errorf("default AbsTol %e should be tighter than relaxed %e", def.AbsTol, rel.AbsTol)
	}
	if def.RelTol >= rel.RelTol {
		t.Errorf("default RelTol %e should be tighter than relaxed %e", def.RelTol, rel.RelTol)
	}
	if def.ULPTol >= rel.ULPTol {
		t.Errorf("default ULPTol %d should be tighter than relaxed %d", def.ULPTol, rel.ULPTol)
	}
}
