package grba

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Report summarises a finished run.
type Report struct {
	RunID string
	Rows  []Row
	Files []string
	Log   *SampleLog
}

// Run loads the scan config at cfgPath, builds the requested tables and hands
// them to every enabled sink.
func Run(cfgPath string) error {
	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	_, err = RunConfig(cfg)
	return err
}

// RunConfig is Run for an already loaded config.
func RunConfig(cfg *Config) (*Report, error) {
	rep := &Report{RunID: uuid.New().String(), Log: NewSampleLog()}
	opts := cfg.Options(rep.Log)
	phys := cfg.PhysicsParams()
	jets := cfg.Jets()
	DebugLogOnce("grid: %d jets x %d tables, workers=%d", len(jets), len(cfg.Tables), cfg.Workers)

	start := time.Now()
	perJet := make([][]Row, len(jets))
	ParallelMap(len(jets), cfg.Workers, func(i int) {
		perJet[i] = buildTables(cfg, jets[i], phys, opts)
	})
	for _, rows := range perJet {
		rep.Rows = append(rep.Rows, rows...)
	}
	DebugLog("run %s: %d rows, time: %s", rep.RunID, len(rep.Rows), time.Since(start))

	sinks, err := openSinks(cfg, rep.RunID)
	if err != nil {
		return rep, err
	}
	for _, s := range sinks {
		if err := s.Write(rep.Rows); err != nil {
			closeSinks(sinks)
			return rep, err
		}
	}
	if err := closeSinks(sinks); err != nil {
		return rep, err
	}
	for _, s := range sinks {
		rep.Files = append(rep.Files, s.Files()...)
	}
	if Debug {
		rep.Log.Stats()
	}
	return rep, nil
}

func buildTables(cfg *Config, jet Jet, phys Physics, opts Options) []Row {
	var rows []Row
	if cfg.wants(TableR0Integrand) {
		rows = append(rows, R0IntegrandTable(cfg.Ys, cfg.R0Samples, jet, phys, opts)...)
	}
	if cfg.wants(TableR0MaxResidue) {
		rows = append(rows, R0MaxResidualTable(cfg.Ys, cfg.R0Samples, jet, phys)...)
	}
	if cfg.wants(TablePhiProfile) {
		rows = append(rows, PhiProfileTable(cfg.PhiR0, cfg.PhiSamples, jet, opts)...)
	}
	if cfg.wants(TableLightCurve) {
		rows = append(rows, LightCurveTable(cfg.LightCurveSamples, jet, phys, opts)...)
	}
	if cfg.wants(TableRootScan) {
		rows = append(rows, RootScanTable(cfg.RootScanR0, cfg.RootScanSamples, cfg.RootScanPhis, jet)...)
	}
	if cfg.wants(TableTotal) {
		rows = append(rows, TotalTable(jet, phys, opts)...)
	}
	return rows
}

func openSinks(cfg *Config, runID string) ([]sink, error) {
	prefix := "grba_" + runID[:8]
	style := NewPlotStyle(cfg.Style)
	var sinks []sink
	add := func(s sink, err error) error {
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
		return nil
	}
	var err error
	if cfg.CSV {
		err = add(newCSVSink(cfg.OutDir, prefix))
	}
	if err == nil && cfg.SQLite != "" {
		err = add(newSQLiteSink(cfg.SQLite, runID))
	}
	if err == nil && (cfg.PNG || PNG) {
		err = add(newPlotSink(cfg.OutDir, prefix, style))
	}
	if err == nil && cfg.HTML {
		err = add(newChartSink(cfg.OutDir, prefix, style))
	}
	if err != nil {
		closeSinks(sinks)
		return nil, fmt.Errorf("failed to open output: %w", err)
	}
	return sinks, nil
}

func closeSinks(sinks []sink) error {
	var first error
	for _, s := range sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
