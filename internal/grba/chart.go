package grba

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot/vg"
)

// chartSink renders an interactive HTML scatter per table, one series per
// (kappa, thetaV, series) combination.
type chartSink struct {
	dir    string
	prefix string
	style  PlotStyle
	files  []string
}

func newChartSink(dir, prefix string, style PlotStyle) (*chartSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &chartSink{dir: dir, prefix: prefix, style: style}, nil
}

// cssPixels converts a plot length to a CSS pixel size, falling back to defInch
// when the style leaves it unset.
func cssPixels(l vg.Length, defInch Real) string {
	in := Real(l / vg.Inch)
	if !(in > 0) {
		in = defInch
	}
	return fmt.Sprintf("%dpx", int(math.Round(in*ChartDPI)))
}

func axisType(log bool) string {
	if log {
		return "log"
	}
	return "value"
}

func (s *chartSink) Write(rows []Row) error {
	names, byTable := groupByTable(rows)
	for _, name := range names {
		if err := s.render(name, byTable[name]); err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
	}
	return nil
}

func (s *chartSink) render(table string, rows []Row) error {
	data := make(map[string][]opts.ScatterData)
	var order []string
	for _, r := range rows {
		if !isFinite(r.X) || !isFinite(r.Value) {
			continue
		}
		if (s.style.LogX && r.X <= 0) || (s.style.LogY && r.Value <= 0) {
			continue
		}
		k := fmt.Sprintf("kap=%g thv=%g %s", r.Kappa, r.ThetaV, r.Series)
		if _, ok := data[k]; !ok {
			order = append(order, k)
		}
		data[k] = append(data[k], opts.ScatterData{Value: []interface{}{r.X, r.Value}})
	}
	if len(order) == 0 {
		return nil
	}
	labels := axisLabels[table]
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: table, Width: cssPixels(s.style.Width, PlotWidthInch), Height: cssPixels(s.style.Height, PlotHeightInch)}),
		charts.WithTitleOpts(opts.Title{Title: table, Subtitle: s.style.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: labels[0], Type: axisType(s.style.LogX), NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: labels[1], Type: axisType(s.style.LogY), NameLocation: "middle", NameGap: 40}),
	)
	for _, k := range order {
		scatter.AddSeries(k, data[k], charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}
	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.html", s.prefix, table))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scatter.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	s.files = append(s.files, path)
	return f.Close()
}

func (s *chartSink) Close() error    { return nil }
func (s *chartSink) Files() []string { return s.files }
