package pixplot

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/InstituteForResearchInSchools/crayfish/internal/pix"
)

// ClusterScatterHTML writes a standalone HTML page scattering two
// plottable attributes against each other across a frame's clusters.
// Point tooltips carry the cluster identity so an interesting outlier
// can be traced back to its training row.
func ClusterScatterHTML(frame *pix.Frame, xAttr, yAttr string, w io.Writer) error {
	ax, err := plottableAttribute(xAttr)
	if err != nil {
		return err
	}
	ay, err := plottableAttribute(yAttr)
	if err != nil {
		return err
	}

	clusters := frame.Clusters()
	data := make([]opts.ScatterData, 0, len(clusters))
	for _, cluster := range clusters {
		x, err := attributeAsFloat(ax, cluster)
		if err != nil {
			return err
		}
		y, err := attributeAsFloat(ay, cluster)
		if err != nil {
			return err
		}
		data = append(data, opts.ScatterData{
			Name:  cluster.ID,
			Value: []interface{}{x, y},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s vs %s", yAttr, xAttr),
			Subtitle: fmt.Sprintf("%d clusters", len(clusters)),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: xAttr}),
		charts.WithYAxisOpts(opts.YAxis{Name: yAttr}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	scatter.AddSeries("clusters", data)

	return scatter.Render(w)
}

func plottableAttribute(name string) (*pix.Attribute, error) {
	a, ok := pix.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("no attribute registered under %q", name)
	}
	if !a.Plottable {
		return nil, fmt.Errorf("attribute %q is not plottable", name)
	}
	if a.Applies&pix.KindCluster == 0 {
		return nil, fmt.Errorf("attribute %q does not apply to clusters", name)
	}
	return a, nil
}

func attributeAsFloat(a *pix.Attribute, cluster *pix.Cluster) (float64, error) {
	switch v := a.Compute(cluster).(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("attribute %q is not numeric (got %T)", a.Name, v)
	}
}
