// Package grid converts between row-major buffer indices and (x, y) cells.
package grid

// GetGridCoords returns the column and row of index in a grid cols wide.
func GetGridCoords(index, cols int) (x, y int) {
	return index % cols, index / cols
}

// GetGridIndex returns the row-major index of (x, y) in a grid cols wide.
func GetGridIndex(x, y, cols int) int {
	return y*cols + x
}

// Wrap reduces v into [0, n), also for negative values.
func Wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
