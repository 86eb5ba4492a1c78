package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// viridis approximates the colorscale the surface is usually drawn
// with in the lab's figures.
var viridis = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

func axisTitle(id bogo.AxisID) string {
	switch id {
	case bogo.AxisKx:
		return "Wavevector k_x (mm⁻¹)"
	case bogo.AxisKy:
		return "Wavevector k_y (mm⁻¹)"
	case bogo.AxisDeltaOmega:
		return "Frequency Shift Δω (MHz)"
	default:
		return "Wavevector k (arb.)"
	}
}

// chartTitle carries the healing wavenumber when the relation exposes
// optical parameters.
func chartTitle(rel bogo.Relation) string {
	if cfg, ok := rel.(bogo.Configurable); ok {
		params := cfg.GetParams()
		lambda0, hasLambda := params["lambda0"]
		dn, hasDn := params["dn"]
		if hasLambda && hasDn && lambda0 > 0 && dn >= 0 {
			k0 := 2 * math.Pi / lambda0
			return fmt.Sprintf("Bogoliubov Dispersion - k_xi = %.0f mm⁻¹", bogo.HealingWavenumber(k0, dn))
		}
	}
	return "Bogoliubov Dispersion"
}

// SurfaceChart builds the interactive 3D surface of the interacting
// branch over the field's grid.
func SurfaceChart(rel bogo.Relation, f *bogo.Field) *charts.Surface3D {
	surface := charts.NewSurface3D()

	min, max := f.MinMax()
	surface.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       "Bogoliubov Dispersion",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: chartTitle(rel),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: axisTitle(f.A.ID), Type: "value"}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: axisTitle(f.B.ID), Type: "value"}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Frequency Ω_B (1/m)", Type: "value"}),
	)

	ax, bx := f.A.Display(), f.B.Display()
	data := make([]opts.Chart3DData, 0, f.Rows()*f.Cols())
	for i := 0; i < f.Rows(); i++ {
		for j := 0; j < f.Cols(); j++ {
			data = append(data, opts.Chart3DData{
				Value: []interface{}{ax[i], bx[j], f.At(i, j)},
			})
		}
	}
	surface.AddSeries("Dispersion Surface", data)

	return surface
}

// CutChart builds the 2D comparison of the interacting and free
// branches along a cut.
func CutChart(rel bogo.Relation, c *bogo.Cut) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       "Bogoliubov Dispersion",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    chartTitle(rel),
			Subtitle: fmt.Sprintf("cut at %s = %g", c.Fixed.String(), c.FixedValue*c.Fixed.DisplayScale()),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient:       "horizontal",
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show: opts.Bool(true),
					Type: "png",
					Name: "dispersion-cut",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: opts.Bool(true),
				},
				Restore: &opts.ToolBoxFeatureRestore{
					Show: opts.Bool(true),
				},
			},
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: axisTitle(c.Axis.ID),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Frequency Ω (1/m)",
			Type:  "value",
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	line.SetXAxis(c.Axis.Display())

	interacting := make([]opts.LineData, c.Len())
	free := make([]opts.LineData, c.Len())
	for i := 0; i < c.Len(); i++ {
		interacting[i] = opts.LineData{Value: c.Omega[i]}
		free[i] = opts.LineData{Value: c.Free[i]}
	}

	line.AddSeries("Interacting Dispersion", interacting,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "red", Type: "dashed"}))
	line.AddSeries("Free Dispersion", free,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "blue"}))

	return line
}

// ScanChart overlays the interacting branches of a scan family on one
// pair of axes, one series per scanned value. The free reference of
// the first member stays as a baseline.
func ScanChart(rel bogo.Relation, subtitle string, labels []string, cuts []*bogo.Cut) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "100%",
			Height:          "600px",
			PageTitle:       "Bogoliubov Dispersion",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    chartTitle(rel),
			Subtitle: subtitle,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithLegendOpts(opts.Legend{
			Orient:       "horizontal",
			Show:         opts.Bool(true),
			SelectedMode: "multiple",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: axisTitle(cuts[0].Axis.ID),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:  "Frequency Ω (1/m)",
			Type:  "value",
			Scale: opts.Bool(true),
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	line.SetXAxis(cuts[0].Axis.Display())

	for i, c := range cuts {
		data := make([]opts.LineData, c.Len())
		for j := 0; j < c.Len(); j++ {
			data[j] = opts.LineData{Value: c.Omega[j]}
		}
		line.AddSeries(labels[i], data,
			charts.WithLineStyleOpts(opts.LineStyle{Color: viridis[i%len(viridis)]}))
	}

	free := make([]opts.LineData, cuts[0].Len())
	for j := 0; j < cuts[0].Len(); j++ {
		free[j] = opts.LineData{Value: cuts[0].Free[j]}
	}
	line.AddSeries("Free Dispersion", free,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "blue", Type: "dashed"}))

	return line
}

type renderable interface {
	Render(w io.Writer) error
}

func renderTo(chart renderable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	renderTime := time.Now()
	if err := chart.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	log.WithFields(log.Fields{
		"path": path,
		"time": time.Since(renderTime),
	}).Info("Chart rendered and saved")

	return nil
}

func WriteSurfaceHTML(path string, rel bogo.Relation, f *bogo.Field) error {
	return renderTo(SurfaceChart(rel, f), path)
}

func WriteCutHTML(path string, rel bogo.Relation, c *bogo.Cut) error {
	return renderTo(CutChart(rel, c), path)
}

func WriteScanHTML(path string, rel bogo.Relation, subtitle string, labels []string, cuts []*bogo.Cut) error {
	if len(cuts) == 0 || len(labels) != len(cuts) {
		return fmt.Errorf("scan chart needs one label per cut, got %d/%d", len(labels), len(cuts))
	}
	return renderTo(ScanChart(rel, subtitle, labels, cuts), path)
}
