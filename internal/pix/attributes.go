package pix

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// The standard attribute set. Registered at process start so that every
// consumer (plotting UIs, training export, the CLI) sees the same table
// in the same order.
func init() {
	Register(KindAny, "Number of Hits", numberOfHits, Plottable())
	Register(KindAny, "Total Counts", totalCounts, Plottable())
	Register(KindAny, "Max Count", maxCount, Plottable())
	Register(KindAny, "Mean Count", meanCount, Plottable())
	Register(KindAny, "Count Std Dev", countStdDev, Plottable())
	Register(KindAny, "Most Neighbours", mostNeighbours, Plottable())
	Register(KindCluster, "Cluster Width", clusterWidth, Plottable())
	Register(KindCluster, "Cluster Height", clusterHeight, Plottable())
	Register(KindCluster, "Hit Density", hitDensity, Plottable())
	Register(KindCluster, "Mean Radius", meanRadius, Plottable())
	Register(KindCluster, "Manual Class", manualClass, Trainable(false))
}

func numberOfHits(e Entity) any {
	return e.Grid().NumHits()
}

func totalCounts(e Entity) any {
	total := 0
	for _, c := range e.Grid().Counts() {
		total += c
	}
	return total
}

func maxCount(e Entity) any {
	max := 0
	for _, c := range e.Grid().Counts() {
		if c > max {
			max = c
		}
	}
	return max
}

func floatCounts(e Entity) []float64 {
	counts := e.Grid().Counts()
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}

func meanCount(e Entity) any {
	counts := floatCounts(e)
	if len(counts) == 0 {
		return 0.0
	}
	return stat.Mean(counts, nil)
}

func countStdDev(e Entity) any {
	counts := floatCounts(e)
	if len(counts) < 2 {
		return 0.0
	}
	return stat.StdDev(counts, nil)
}

func mostNeighbours(e Entity) any {
	max, _, err := e.Grid().MaxNeighbours()
	if err != nil {
		return 0
	}
	return max
}

func clusterWidth(e Entity) any {
	w, err := e.(*Cluster).ClusterWidth()
	if err != nil {
		return 0
	}
	return w
}

func clusterHeight(e Entity) any {
	h, err := e.(*Cluster).ClusterHeight()
	if err != nil {
		return 0
	}
	return h
}

// hitDensity is the fraction of the cluster's bounding box occupied by
// hits. A straight track is sparse; a heavy blob approaches 1.
func hitDensity(e Entity) any {
	c := e.(*Cluster)
	w, err := c.ClusterWidth()
	if err != nil {
		return 0.0
	}
	h, _ := c.ClusterHeight()
	return float64(c.NumHits()) / float64(w*h)
}

// meanRadius is the mean distance of the cluster's hits from their
// count-weighted centroid, a scale measure that separates point-like
// depositions from extended tracks.
func meanRadius(e Entity) any {
	g := e.Grid()
	pixels := g.HitPixels()
	if len(pixels) == 0 {
		return 0.0
	}
	counts := g.Counts()
	var cx, cy, total float64
	for i, p := range pixels {
		w := float64(counts[i])
		cx += float64(p.X) * w
		cy += float64(p.Y) * w
		total += w
	}
	if total == 0 {
		return 0.0
	}
	cx /= total
	cy /= total
	var sum float64
	for _, p := range pixels {
		dx := float64(p.X) - cx
		dy := float64(p.Y) - cy
		sum += math.Hypot(dx, dy)
	}
	return sum / float64(len(pixels))
}

func manualClass(e Entity) any {
	return e.(*Cluster).ManualClass
}
