package pix

import (
	"errors"
	"testing"
)

func singleCluster(t *testing.T, pixels map[Pixel]int) *Cluster {
	t.Helper()
	f := NewFrame()
	for p, v := range pixels {
		f.Set(p, &Hit{Value: v})
	}
	clusters := f.Clusters()
	if len(clusters) != 1 {
		t.Fatalf("fixture produced %d clusters, want 1", len(clusters))
	}
	return clusters[0]
}

func TestClusterDefaults(t *testing.T) {
	c := singleCluster(t, map[Pixel]int{{3, 3}: 1})
	if c.ID == "" {
		t.Error("cluster has no identity token")
	}
	if c.ManualClass != Unclassified {
		t.Errorf("ManualClass = %q, want %q", c.ManualClass, Unclassified)
	}
	if c.AlgorithmClass != Unclassified {
		t.Errorf("AlgorithmClass = %q, want %q", c.AlgorithmClass, Unclassified)
	}
}

func TestClusterIdentityTokensDistinct(t *testing.T) {
	f := NewFrame()
	f.Set(Pixel{0, 0}, &Hit{Value: 1})
	f.Set(Pixel{10, 10}, &Hit{Value: 1})
	clusters := f.Clusters()
	if clusters[0].ID == clusters[1].ID {
		t.Error("two clusters share an identity token")
	}
}

func TestClusterKeepsFrameCoordinates(t *testing.T) {
	c := singleCluster(t, map[Pixel]int{{40, 50}: 1, {41, 50}: 2})
	if c.Width != DefaultFrameWidth || c.Height != DefaultFrameHeight {
		t.Errorf("cluster grid is %dx%d, want the frame's %dx%d",
			c.Width, c.Height, DefaultFrameWidth, DefaultFrameHeight)
	}
	minX, err := c.MinX()
	if err != nil {
		t.Fatalf("MinX: %v", err)
	}
	if minX != 40 {
		t.Errorf("hits re-based: MinX = %d, want 40", minX)
	}
}

func TestClusterWidthHeight(t *testing.T) {
	c := singleCluster(t, map[Pixel]int{
		{5, 10}: 1, {6, 10}: 1, {7, 11}: 1,
	})
	w, err := c.ClusterWidth()
	if err != nil {
		t.Fatalf("ClusterWidth: %v", err)
	}
	if w != 3 {
		t.Errorf("ClusterWidth = %d, want 3", w)
	}
	h, err := c.ClusterHeight()
	if err != nil {
		t.Fatalf("ClusterHeight: %v", err)
	}
	if h != 2 {
		t.Errorf("ClusterHeight = %d, want 2", h)
	}
}

func TestClusterDimensionsEmptyGrid(t *testing.T) {
	c := newCluster(DefaultFrameWidth, DefaultFrameHeight)
	if _, err := c.ClusterWidth(); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("ClusterWidth on empty cluster: want ErrEmptyGrid, got %v", err)
	}
	if _, err := c.ASCIIGrid(); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("ASCIIGrid on empty cluster: want ErrEmptyGrid, got %v", err)
	}
}

func TestASCIIGrid(t *testing.T) {
	// Hits: (0,0)=5, (1,0)=3, (1,1)=7. Lowest y row prints last, so the
	// y=1 row comes first.
	c := singleCluster(t, map[Pixel]int{
		{0, 0}: 5, {1, 0}: 3, {1, 1}: 7,
	})
	got, err := c.ASCIIGrid()
	if err != nil {
		t.Fatalf("ASCIIGrid: %v", err)
	}
	want := "0\t7\n5\t3"
	if got != want {
		t.Errorf("ASCIIGrid = %q, want %q", got, want)
	}
}

func TestASCIIGridOffsetCluster(t *testing.T) {
	// The rendering is clipped to the bounding box, not the frame.
	c := singleCluster(t, map[Pixel]int{
		{100, 200}: 1, {101, 201}: 2,
	})
	got, err := c.ASCIIGrid()
	if err != nil {
		t.Fatalf("ASCIIGrid: %v", err)
	}
	want := "0\t2\n1\t0"
	if got != want {
		t.Errorf("ASCIIGrid = %q, want %q", got, want)
	}
}
