package pix

// Default Timepix sensor geometry.
const (
	DefaultFrameWidth  = 256
	DefaultFrameHeight = 256
)

// Frame is the sparse grid of a full sensor readout plus the clusters
// derived from it. Clusters are computed at most once per frame; the
// frame's grid and its clusters must be treated as read-only with
// respect to hit membership once clustering has run. There is no
// invalidation path for mutation after clustering.
type Frame struct {
	PixelGrid

	clusters []*Cluster
}

// NewFrame returns an empty frame with the default 256x256 sensor
// geometry.
func NewFrame() *Frame {
	return NewFrameSize(DefaultFrameWidth, DefaultFrameHeight)
}

// NewFrameSize returns an empty frame spanning [0,width) x [0,height).
func NewFrameSize(width, height int) *Frame {
	return &Frame{PixelGrid: *NewPixelGrid(width, height)}
}

// Kind implements Entity.
func (f *Frame) Kind() Kind { return KindFrame }

// Grid implements Entity.
func (f *Frame) Grid() *PixelGrid { return &f.PixelGrid }

// Clusters partitions the frame's hits into maximal 8-connected
// components and returns them in discovery order. The partition is
// computed once and cached: repeated calls return the identical slice
// without recomputation.
//
// The flood fill uses an explicit worklist rather than recursion, so
// component size is bounded only by memory, not by stack depth. Each hit
// is absorbed into a cluster before its neighbourhood is expanded, so no
// hit is visited twice and the whole partition costs O(hits) lookups.
// Zero-value pixels are never hits and never join a cluster.
func (f *Frame) Clusters() []*Cluster {
	if f.clusters != nil {
		return f.clusters
	}
	f.clusters = []*Cluster{}
	for _, p := range f.HitPixels() {
		hit := f.hitAt(p)
		if hit.Value == 0 || hit.Cluster != nil {
			continue
		}
		cluster := newCluster(f.Width, f.Height)
		cluster.Add(p, hit)
		f.absorbNeighbours(p, cluster)
		f.clusters = append(f.clusters, cluster)
	}
	return f.clusters
}

// absorbNeighbours grows cluster outward from seed until no unclustered
// non-zero neighbour remains reachable.
func (f *Frame) absorbNeighbours(seed Pixel, cluster *Cluster) {
	pending := []Pixel{seed}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				q := Pixel{p.X + dx, p.Y + dy}
				if !f.InGrid(q) {
					continue
				}
				hit := f.hitAt(q)
				if hit == nil || hit.Value == 0 || hit.Cluster != nil {
					continue
				}
				cluster.Add(q, hit)
				pending = append(pending, q)
			}
		}
	}
}

// ClosestCluster triggers clustering if needed and returns the cluster
// owning the hit nearest to point by squared Euclidean distance. Ties go
// to the hit encountered first in the frame's pixel order. Brute force
// O(hits) per call; the frame keeps no spatial index. Fails with
// ErrEmptyGrid when the frame has no hits.
func (f *Frame) ClosestCluster(point Pixel) (*Cluster, error) {
	f.Clusters()
	if f.NumHits() == 0 {
		return nil, ErrEmptyGrid
	}
	var best *Cluster
	bestDist := -1
	for _, p := range f.HitPixels() {
		dx := p.X - point.X
		dy := p.Y - point.Y
		d := dx*dx + dy*dy
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = f.hitAt(p).Cluster
		}
	}
	return best, nil
}
