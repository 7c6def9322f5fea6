package grba

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestChartSink(t *testing.T) {
	dir := t.TempDir()
	s, err := newChartSink(dir, "run", NewPlotStyle(StyleCfg{LogY: true, Title: "scan"}))
	require.NoError(t, err)
	require.NoError(t, s.Write(sampleRows()))
	require.NoError(t, s.Close())

	want := []string{filepath.Join(dir, "run_light-curve.html"), filepath.Join(dir, "run_phi-profile.html")}
	assert.Equal(t, want, s.Files())
	body, err := os.ReadFile(want[1])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "phi-profile"))
	assert.True(t, strings.Contains(string(body), "echarts"))
}

func TestChartSinkSkipsEmptyTables(t *testing.T) {
	s, err := newChartSink(t.TempDir(), "run", NewPlotStyle(StyleCfg{LogY: true}))
	require.NoError(t, err)
	require.NoError(t, s.Write([]Row{{Table: TableRootScan, Series: "fun", X: 0, Value: -1}}))
	assert.Empty(t, s.Files())
	assert.Equal(t, "log", axisType(true))
	assert.Equal(t, "value", axisType(false))
}

func TestChartSizeFollowsStyle(t *testing.T) {
	assert.Equal(t, "576px", cssPixels(6*vg.Inch, PlotWidthInch))
	assert.Equal(t, "288px", cssPixels(3*vg.Inch, PlotWidthInch))
	assert.Equal(t, "384px", cssPixels(0, PlotHeightInch))

	dir := t.TempDir()
	s, err := newChartSink(dir, "run", NewPlotStyle(StyleCfg{WidthInch: 5, HeightInch: 2.5}))
	require.NoError(t, err)
	require.NoError(t, s.Write(sampleRows()))
	body, err := os.ReadFile(filepath.Join(dir, "run_phi-profile.html"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "480px")
	assert.Contains(t, string(body), "240px")
	assert.NotContains(t, string(body), "1100px")
}
