package sgemm

import (
	"errors"
	"fmt"
	"testing"
)

func TestTransposeKnown(t *testing.T) {
	a := mustMatrix(t, 2, 3, FromValues([]float32{
		1, 2, 3,
		4, 5, 6,
	}))

	at := Transpose(a)
	if r, c := at.Dims(); r != 3 || c != 2 {
		t.Fatalf("transpose is %dx%d, want 3x2", r, c)
	}
	want := []float32{
		1, 4,
		2, 5,
		3, 6,
	}
	for i, v := range at.Data() {
		if v != want[i] {
			t.Errorf("at[%d] = %v, want %v", i, v, want[i])
		}
	}
}

// TestTransposeRoundTrip checks that transposing twice restores the
// original exactly. A transpose only moves elements, it never rounds.
func TestTransposeRoundTrip(t *testing.T) {
	sizes := []struct {
		rows, cols int
	}{
		{1, 1},
		{1, 9},
		{9, 1},
		{7, 7},
		{8, 8},
		{33, 17},
		{64, 100},
	}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d", size.rows, size.cols), func(t *testing.T) {
			a := mustMatrix(t, size.rows, size.cols, RandomNormal(int64(size.rows*31+size.cols)))

			back := Transpose(Transpose(a))
			if r, c := back.Dims(); r != size.rows || c != size.cols {
				t.Fatalf("round trip is %dx%d, want %dx%d", r, c, size.rows, size.cols)
			}
			for i := range a.Data() {
				if a.Data()[i] != back.Data()[i] {
					t.Fatalf("round trip differs at %d", i)
				}
			}
		})
	}
}

func TestTransposeElements(t *testing.T) {
	a := mustMatrix(t, 13, 21, RandomNormal(77))
	at := Transpose(a)

	for i := 0; i < 13; i++ {
		for j := 0; j < 21; j++ {
			orig, err := a.At(i, j)
			if err != nil {
				t.Fatalf("At failed: %v", err)
			}
			swapped, err := at.At(j, i)
			if err != nil {
				t.Fatalf("At failed: %v", err)
			}
			if orig != swapped {
				t.Errorf("a[%d,%d] = %v but at[%d,%d] = %v", i, j, orig, j, i, swapped)
			}
		}
	}
}

func TestTransposeInto(t *testing.T) {
	a := mustMatrix(t, 5, 8, RandomNormal(3))

	dst := mustMatrix(t, 8, 5, Zeros())
	if err := TransposeInto(dst, a); err != nil {
		t.Fatalf("TransposeInto failed: %v", err)
	}
	want := Transpose(a)
	for i := range want.Data() {
		if dst.Data()[i] != want.Data()[i] {
			t.Fatalf("TransposeInto differs from Transpose at %d", i)
		}
	}

	bad := mustMatrix(t, 5, 8, Zeros())
	if err := TransposeInto(bad, a); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("wrong dst shape error = %v, want ErrDimensionMismatch", err)
	}
}

func TestTransposeEmpty(t *testing.T) {
	a := mustMatrix(t, 0, 5, Zeros())
	at := Transpose(a)
	if r, c := at.Dims(); r != 5 || c != 0 {
		t.Errorf("transpose is %dx%d, want 5x0", r, c)
	}
	if len(at.Data()) != 0 {
		t.Errorf("len(Data()) = %d, want 0", len(at.Data()))
	}
}
