package pix

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Unclassified is the default classification label for a cluster that no
// one (and no algorithm) has labelled yet.
const Unclassified = "unclassified"

// Cluster is one maximal 8-connected group of hits within a frame. Its
// grid shares the frame's coordinate system; hit coordinates are not
// re-based to a local origin. Use ClusterWidth and ClusterHeight for the
// bounding-box size of the cluster itself.
//
// Clusters are created only by Frame.Clusters and never merge after
// creation. Across a frame, clusters form a disjoint partition of the
// frame's hits and every cluster is non-empty.
type Cluster struct {
	PixelGrid

	// ID is a stable identity token, independent of memory address,
	// used to correlate exported training rows with externally supplied
	// labels.
	ID string

	// ManualClass is the externally supplied ground-truth label.
	ManualClass string

	// AlgorithmClass is reserved for an automatic classifier; the
	// analysis core never sets it.
	AlgorithmClass string
}

func newCluster(width, height int) *Cluster {
	return &Cluster{
		PixelGrid:      *NewPixelGrid(width, height),
		ID:             uuid.NewString(),
		ManualClass:    Unclassified,
		AlgorithmClass: Unclassified,
	}
}

// Kind implements Entity.
func (c *Cluster) Kind() Kind { return KindCluster }

// Grid implements Entity.
func (c *Cluster) Grid() *PixelGrid { return &c.PixelGrid }

// Add absorbs hit into the cluster at pixel p and records the back
// reference on the hit. The hit object is shared with the owning frame's
// grid, not copied.
func (c *Cluster) Add(p Pixel, hit *Hit) {
	hit.Cluster = c
	c.Set(p, hit)
}

// ClusterWidth is the bounding-box width of the cluster's hits.
func (c *Cluster) ClusterWidth() (int, error) {
	b, err := c.HitBounds()
	if err != nil {
		return 0, err
	}
	return b.MaxX - b.MinX + 1, nil
}

// ClusterHeight is the bounding-box height of the cluster's hits.
func (c *Cluster) ClusterHeight() (int, error) {
	b, err := c.HitBounds()
	if err != nil {
		return 0, err
	}
	return b.MaxY - b.MinY + 1, nil
}

// ASCIIGrid renders the cluster's bounding box as text: columns
// separated by tabs, rows by newlines. Rows are emitted top-to-bottom
// with the lowest y row last, following the CERN@school/Pixelman
// convention of an origin in the bottom-left corner.
func (c *Cluster) ASCIIGrid() (string, error) {
	b, err := c.HitBounds()
	if err != nil {
		return "", err
	}
	grid, err := c.RenderEnergyZoomed(&b)
	if err != nil {
		return "", err
	}
	rows := make([]string, len(grid))
	for i, row := range grid {
		cols := make([]string, len(row))
		for j, v := range row {
			cols[j] = strconv.Itoa(v)
		}
		// Row 0 of the rendering is the lowest y; print it last.
		rows[len(grid)-1-i] = strings.Join(cols, "\t")
	}
	return strings.Join(rows, "\n"), nil
}
