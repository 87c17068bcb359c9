// Package pix implements the analysis core for pixelated radiation
// detectors: sparse frame/cluster grids, 8-connected cluster finding, a
// named attribute table for plotting and training, and training-row
// export for external classifiers.
//
// Definitions used throughout:
//
//	Hit:   any pixel with a non-zero value
//	Pixel: an (x,y) integer coordinate, usually of a hit
//	Count: the integer value of a hit
package pix

import "strconv"

// Pixel is an integer (x, y) coordinate in detector space.
type Pixel struct {
	X, Y int
}

// Hit records a single activated pixel. A Hit is shared by identity
// between its frame's grid and exactly one cluster's grid; it is never
// copied between the two.
type Hit struct {
	// Value is the count recorded by the pixel. A value of zero means
	// the pixel is not a hit; zero-value hits are synthesised on lookup
	// and never stored in a grid.
	Value int

	// Cluster is the cluster that absorbed this hit. It is set exactly
	// once, during clustering, and is nil before a frame's clusters
	// have been computed.
	Cluster *Cluster
}

// String returns the hit's count. Debug aid only.
func (h *Hit) String() string {
	return strconv.Itoa(h.Value)
}
