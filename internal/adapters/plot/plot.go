// Package plot renders clustering results as an interactive HTML scatter plot.
package plot

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/okian/forel/internal/domain/forel"
	"github.com/okian/forel/internal/domain/geometry"
)

const defaultTitle = "FOREL clustering"

// Option applies a configuration option to a scatter plot.
type Option func(*settings)

type settings struct {
	title       string
	showCenters bool
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(s *settings) {
		if title != "" {
			s.title = title
		}
	}
}

// WithCenters toggles the series of converged cluster centers.
func WithCenters(show bool) Option {
	return func(s *settings) {
		s.showCenters = show
	}
}

// RenderScatter writes an HTML page with one scatter series per cluster.
// Points with more than two coordinates are projected onto two axes.
func RenderScatter(w io.Writer, clusters []forel.Cluster, options ...Option) error {
	s := settings{title: defaultTitle, showCenters: true}
	for _, opt := range options {
		opt(&s)
	}

	es := charts.NewScatter()
	es.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: s.title}),
		charts.WithLegendOpts(opts.Legend{Show: true, Top: "5%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{a}: {b}"}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{Show: true, Type: "png", Title: "forel_scatter"},
			},
		}),
	)

	centers := make([]opts.ScatterData, 0, len(clusters))
	for _, c := range clusters {
		data := make([]opts.ScatterData, 0, len(c.Points))
		for i, p := range c.Points {
			name := fmt.Sprintf("point %d", i)
			if i < len(c.Members) {
				name = fmt.Sprintf("point %d", c.Members[i])
			}
			data = append(data, opts.ScatterData{Name: name, Value: project(p)})
		}
		es.AddSeries(fmt.Sprintf("Cluster %d", c.Index), data)

		if len(c.Center) > 0 {
			centers = append(centers, opts.ScatterData{
				Name:  fmt.Sprintf("center %d", c.Index),
				Value: project(c.Center),
			})
		}
	}
	if s.showCenters && len(centers) > 0 {
		es.AddSeries("Centers", centers, charts.WithItemStyleOpts(opts.ItemStyle{Color: "black"}))
	}

	if err := es.Render(w); err != nil {
		return fmt.Errorf("render scatter plot: %w", err)
	}
	return nil
}

// WriteFile renders the scatter plot into path.
func WriteFile(path string, clusters []forel.Cluster, options ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close plot: %w", cerr)
		}
	}()

	return RenderScatter(f, clusters, options...)
}

// project maps p onto two axes. A single coordinate lies on the x axis;
// longer points are split into two halves and each half is averaged.
func project(p geometry.Point) []float64 {
	switch len(p) {
	case 0:
		return []float64{0, 0}
	case 1:
		return []float64{p[0], 0}
	case 2:
		return []float64{p[0], p[1]}
	}

	half := len(p) / 2
	return []float64{mean(p[:half]), mean(p[half:])}
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
