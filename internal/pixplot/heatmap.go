// Package pixplot renders analysis output for external viewing: energy
// heatmap PNGs via gonum/plot and interactive attribute scatter pages
// via go-echarts. Nothing here is a GUI; the outputs are files handed to
// whatever viewer the operator prefers.
package pixplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
)

// energyGrid adapts a dense count matrix to plotter.GridXYZ. Row 0 of
// the matrix is the lowest y, so no flipping is needed: gonum plots y
// increasing upward, matching the detector's bottom-left origin.
type energyGrid struct {
	counts [][]int
	minX   int
	minY   int
}

func (g energyGrid) Dims() (c, r int) {
	if len(g.counts) == 0 {
		return 0, 0
	}
	return len(g.counts[0]), len(g.counts)
}

func (g energyGrid) Z(c, r int) float64 { return float64(g.counts[r][c]) }
func (g energyGrid) X(c int) float64    { return float64(g.minX + c) }
func (g energyGrid) Y(r int) float64    { return float64(g.minY + r) }

// EnergyHeatmap writes a PNG heatmap of the grid's full energy rendering
// to path.
func EnergyHeatmap(g *pix.PixelGrid, title, path string) error {
	return heatmap(energyGrid{counts: g.RenderEnergy()}, title, path)
}

// EnergyHeatmapZoomed writes a PNG heatmap restricted to bounds, or to
// the grid's hit bounding box when bounds is nil.
func EnergyHeatmapZoomed(g *pix.PixelGrid, bounds *pix.Bounds, title, path string) error {
	b := pix.Bounds{}
	if bounds != nil {
		b = *bounds
	} else {
		var err error
		if b, err = g.HitBounds(); err != nil {
			return err
		}
	}
	counts, err := g.RenderEnergyZoomed(&b)
	if err != nil {
		return err
	}
	return heatmap(energyGrid{counts: counts, minX: b.MinX, minY: b.MinY}, title, path)
}

func heatmap(grid energyGrid, title, path string) error {
	cols, rows := grid.Dims()
	if cols == 0 || rows == 0 {
		return fmt.Errorf("nothing to plot: empty energy grid")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (pixel)"
	p.Y.Label.Text = "y (pixel)"

	hm := plotter.NewHeatMap(grid, palette.Heat(64, 1))
	p.Add(hm)

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}
