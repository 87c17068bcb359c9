package pix

import (
	"errors"
	"fmt"
)

// Sentinel errors for grid queries. Both signal caller error: an invalid
// coordinate, or an extremum query against an entity with no hits. They
// are deterministic and non-retryable.
var (
	// ErrOutOfBounds is returned by Get for coordinates outside
	// [0,width) x [0,height).
	ErrOutOfBounds = errors.New("pixel outside of grid")

	// ErrEmptyGrid is returned by bounding-box queries on a grid with
	// zero hits.
	ErrEmptyGrid = errors.New("grid has no hits")
)

// Bounds describes an inclusive bounding box in grid coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// PixelGrid is a bounded 2D coordinate space backed by a sparse mapping
// from pixel coordinates to hits. Most of a 256x256 detector frame is
// empty, so only non-zero pixels are materialised; an in-bounds lookup of
// an absent pixel yields a synthetic zero-value Hit without inserting it.
//
// The mapping preserves insertion order. That order is an observable
// contract: clustering visits pixels in it, and a cluster's own pixel
// order records the order in which hits were absorbed.
type PixelGrid struct {
	Width  int
	Height int

	hits  map[Pixel]*Hit
	order []Pixel
}

// NewPixelGrid returns an empty grid spanning [0,width) x [0,height).
func NewPixelGrid(width, height int) *PixelGrid {
	return &PixelGrid{
		Width:  width,
		Height: height,
		hits:   make(map[Pixel]*Hit),
	}
}

// InGrid reports whether pixel lies within the grid bounds.
func (g *PixelGrid) InGrid(p Pixel) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Get returns the hit stored at p. If p is in bounds but has no stored
// hit, a fresh zero-value Hit is returned and the mapping is left
// untouched. Coordinates outside the grid fail with ErrOutOfBounds.
func (g *PixelGrid) Get(p Pixel) (*Hit, error) {
	if h, ok := g.hits[p]; ok {
		return h, nil
	}
	if !g.InGrid(p) {
		return nil, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, p.X, p.Y, g.Width, g.Height)
	}
	return &Hit{}, nil
}

// Set stores hit at p. Writing to a pixel that already holds a hit
// replaces the hit but keeps the pixel's original position in the
// insertion order. The write path performs no bounds check, matching the
// read-side-only enforcement of the reference detector software.
func (g *PixelGrid) Set(p Pixel, hit *Hit) {
	if _, ok := g.hits[p]; !ok {
		g.order = append(g.order, p)
	}
	g.hits[p] = hit
}

// HitPixels returns the coordinates of every stored hit in insertion
// order. The returned slice is shared; callers must not modify it.
func (g *PixelGrid) HitPixels() []Pixel {
	return g.order
}

// NumHits returns the number of stored hits.
func (g *PixelGrid) NumHits() int {
	return len(g.order)
}

// Counts returns the value of every stored hit, in the same order as
// HitPixels.
func (g *PixelGrid) Counts() []int {
	counts := make([]int, len(g.order))
	for i, p := range g.order {
		counts[i] = g.hits[p].Value
	}
	return counts
}

// MinX returns the smallest x coordinate over all hits.
func (g *PixelGrid) MinX() (int, error) {
	return g.extremum(func(p Pixel) int { return p.X }, func(v, best int) bool { return v < best })
}

// MaxX returns the largest x coordinate over all hits.
func (g *PixelGrid) MaxX() (int, error) {
	return g.extremum(func(p Pixel) int { return p.X }, func(v, best int) bool { return v > best })
}

// MinY returns the smallest y coordinate over all hits.
func (g *PixelGrid) MinY() (int, error) {
	return g.extremum(func(p Pixel) int { return p.Y }, func(v, best int) bool { return v < best })
}

// MaxY returns the largest y coordinate over all hits.
func (g *PixelGrid) MaxY() (int, error) {
	return g.extremum(func(p Pixel) int { return p.Y }, func(v, best int) bool { return v > best })
}

func (g *PixelGrid) extremum(coord func(Pixel) int, better func(v, best int) bool) (int, error) {
	if len(g.order) == 0 {
		return 0, ErrEmptyGrid
	}
	best := coord(g.order[0])
	for _, p := range g.order[1:] {
		if v := coord(p); better(v, best) {
			best = v
		}
	}
	return best, nil
}

// HitBounds returns the bounding box of all stored hits.
func (g *PixelGrid) HitBounds() (Bounds, error) {
	if len(g.order) == 0 {
		return Bounds{}, ErrEmptyGrid
	}
	b := Bounds{MinX: g.order[0].X, MaxX: g.order[0].X, MinY: g.order[0].Y, MaxY: g.order[0].Y}
	for _, p := range g.order[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b, nil
}

// NumberOfNeighbours counts how many of the 8 surrounding pixels of p
// hold a non-zero value. Pixels outside the grid are skipped; p itself is
// excluded. Expected O(1): at most 9 map lookups.
func (g *PixelGrid) NumberOfNeighbours(p Pixel) int {
	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			q := Pixel{p.X + dx, p.Y + dy}
			if q == p || !g.InGrid(q) {
				continue
			}
			if h, ok := g.hits[q]; ok && h.Value != 0 {
				n++
			}
		}
	}
	return n
}

// MaxNeighbours computes the neighbour count of every hit pixel and
// returns the largest count together with every pixel attaining it, in
// the order the pixels were discovered. Ties are all included.
func (g *PixelGrid) MaxNeighbours() (int, []Pixel, error) {
	if len(g.order) == 0 {
		return 0, nil, ErrEmptyGrid
	}
	max := -1
	var pixels []Pixel
	for _, p := range g.order {
		n := g.NumberOfNeighbours(p)
		switch {
		case n > max:
			max = n
			pixels = append(pixels[:0], p)
		case n == max:
			pixels = append(pixels, p)
		}
	}
	return max, pixels, nil
}

// RenderEnergy produces a dense height x width matrix of counts, with
// absent pixels rendered as zero. Rows are indexed by y, columns by x.
// Allocation is O(width*height) regardless of sparsity.
func (g *PixelGrid) RenderEnergy() [][]int {
	grid := make([][]int, g.Height)
	for y := range grid {
		grid[y] = make([]int, g.Width)
	}
	for _, p := range g.order {
		grid[p.Y][p.X] = g.hits[p].Value
	}
	return grid
}

// RenderEnergyZoomed produces the same dense rendering as RenderEnergy
// but restricted to an inclusive bounding box. A nil bounds selects the
// bounding box of the stored hits, which fails with ErrEmptyGrid when the
// grid has none.
func (g *PixelGrid) RenderEnergyZoomed(bounds *Bounds) ([][]int, error) {
	b := Bounds{}
	if bounds != nil {
		b = *bounds
	} else {
		var err error
		if b, err = g.HitBounds(); err != nil {
			return nil, err
		}
	}
	grid := make([][]int, b.MaxY-b.MinY+1)
	for i := range grid {
		grid[i] = make([]int, b.MaxX-b.MinX+1)
	}
	for _, p := range g.order {
		if p.X < b.MinX || p.X > b.MaxX || p.Y < b.MinY || p.Y > b.MaxY {
			continue
		}
		grid[p.Y-b.MinY][p.X-b.MinX] = g.hits[p].Value
	}
	return grid, nil
}

// hitAt returns the stored hit at p, or nil when p holds none. Internal
// fast path that skips the synthetic zero-value Hit of Get.
func (g *PixelGrid) hitAt(p Pixel) *Hit {
	return g.hits[p]
}

// AreNeighbours reports whether two pixels are 8-adjacent, i.e. both
// coordinates differ by at most one. A pixel neighbours itself.
func AreNeighbours(p1, p2 Pixel) bool {
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}
