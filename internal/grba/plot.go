package grba

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotStyle holds everything about how plots look. The numeric code never reads it.
type PlotStyle struct {
	Width  vg.Length
	Height vg.Length
	LogX   bool
	LogY   bool
	Title  string
}

func NewPlotStyle(c StyleCfg) PlotStyle {
	return PlotStyle{
		Width:  vg.Length(c.WidthInch) * vg.Inch,
		Height: vg.Length(c.HeightInch) * vg.Inch,
		LogX:   c.LogX,
		LogY:   c.LogY,
		Title:  c.Title,
	}
}

var axisLabels = map[string][2]string{
	TableR0Integrand:  {"r0'", "r0' integrand"},
	TableR0MaxResidue: {"r0'", "root function"},
	TablePhiProfile:   {"phi [pi]", "r'"},
	TableLightCurve:   {"y", "flux"},
	TableRootScan:     {"r'", "f, df/dr"},
	TableTotal:        {"kappa", "flux"},
}

// facet is one (kappa, thetaV) panel of a table.
type facet struct {
	kappa, thetaV Real
}

// plotSink renders one PNG per table and (kappa, thetaV) facet, one line per series.
type plotSink struct {
	dir    string
	prefix string
	style  PlotStyle
	files  []string
}

func newPlotSink(dir, prefix string, style PlotStyle) (*plotSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &plotSink{dir: dir, prefix: prefix, style: style}, nil
}

func (s *plotSink) Write(rows []Row) error {
	names, byTable := groupByTable(rows)
	for _, name := range names {
		if name == TableTotal {
			// one point per facet, plotted against kappa in a single panel
			if err := s.savePanel(name, "", byTable[name], func(r Row) string {
				return fmt.Sprintf("thv=%g", r.ThetaV)
			}); err != nil {
				return err
			}
			continue
		}
		facets, byFacet := groupByFacet(byTable[name])
		for _, f := range facets {
			title := fmt.Sprintf("thv = %g | kap = %g", f.thetaV, f.kappa)
			if err := s.savePanel(name, title, byFacet[f], func(r Row) string { return r.Series }); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *plotSink) Close() error    { return nil }
func (s *plotSink) Files() []string { return s.files }

func groupByFacet(rows []Row) ([]facet, map[facet][]Row) {
	m := make(map[facet][]Row)
	for _, r := range rows {
		f := facet{kappa: r.Kappa, thetaV: r.ThetaV}
		m[f] = append(m[f], r)
	}
	keys := make([]facet, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].thetaV != keys[j].thetaV {
			return keys[i].thetaV < keys[j].thetaV
		}
		return keys[i].kappa < keys[j].kappa
	})
	return keys, m
}

// seriesPoints groups rows into plottable XYs, dropping points a log axis or
// NaN would reject.
func (s *plotSink) seriesPoints(rows []Row, key func(Row) string) ([]string, map[string]plotter.XYs) {
	m := make(map[string]plotter.XYs)
	var order []string
	for _, r := range rows {
		if !isFinite(r.X) || !isFinite(r.Value) {
			continue
		}
		if (s.style.LogX && r.X <= 0) || (s.style.LogY && r.Value <= 0) {
			continue
		}
		k := key(r)
		if _, ok := m[k]; !ok {
			order = append(order, k)
		}
		m[k] = append(m[k], plotter.XY{X: r.X, Y: r.Value})
	}
	return order, m
}

func (s *plotSink) savePanel(table, title string, rows []Row, key func(Row) string) error {
	order, pts := s.seriesPoints(rows, key)
	if len(order) == 0 {
		return nil
	}
	p := plot.New()
	p.Title.Text = strings.TrimSpace(s.style.Title + " " + table)
	if title != "" {
		p.Title.Text += " (" + title + ")"
	}
	labels := axisLabels[table]
	p.X.Label.Text = labels[0]
	p.Y.Label.Text = labels[1]
	if s.style.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if s.style.LogY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	args := make([]interface{}, 0, 2*len(order))
	for _, k := range order {
		args = append(args, k, pts[k])
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("%s: %w", table, err)
	}
	p.Legend.Top = true
	p.Legend.Left = false

	name := fmt.Sprintf("%s_%s", s.prefix, table)
	if len(rows) > 0 && table != TableTotal {
		name += fmt.Sprintf("_kap%g_thv%g", rows[0].Kappa, rows[0].ThetaV)
	}
	path := filepath.Join(s.dir, name+".png")
	if err := p.Save(s.style.Width, s.style.Height, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	s.files = append(s.files, path)
	DebugLog("saved plot %s", path)
	return nil
}
