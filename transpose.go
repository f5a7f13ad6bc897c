package sgemm

// Transpose allocates and returns the transpose of a.
func Transpose(a *Matrix) *Matrix {
	dst := &Matrix{rows: a.cols, cols: a.rows, data: alignedSlice(len(a.data))}
	transposeBlocked(a.data, dst.data, a.rows, a.cols)
	return dst
}

// TransposeInto writes the transpose of a into dst, which must have
// shape (a.Cols(), a.Rows()) and must not alias a; the copy is strictly
// out of place.
func TransposeInto(dst, a *Matrix) error {
	if dst.rows != a.cols || dst.cols != a.rows {
		return NewShapeError("TransposeInto", a.cols, a.rows, dst.rows, dst.cols)
	}
	transposeBlocked(a.data, dst.data, a.rows, a.cols)
	return nil
}

// transposeBlocked copies src (rows x cols) into dst (cols x rows) in
// square tiles. One side of a transpose always walks with a large
// stride; the tiles keep both the source rows and the destination
// columns it touches resident until they are done.
func transposeBlocked(src, dst []float32, rows, cols int) {
	for i0 := 0; i0 < rows; i0 += TransposeTileSize {
		iEnd := min(i0+TransposeTileSize, rows)
		for j0 := 0; j0 < cols; j0 += TransposeTileSize {
			jEnd := min(j0+TransposeTileSize, cols)
			for i := i0; i < iEnd; i++ {
				for j := j0; j < jEnd; j++ {
					dst[j*rows+i] = src[i*cols+j]
				}
			}
		}
	}
}
