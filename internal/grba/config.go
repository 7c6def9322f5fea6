package grba

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

type PhysicsCfg struct {
	GammaA Real `json:"gammaA,omitempty"`
	K      Real `json:"k,omitempty"`
	P      Real `json:"p,omitempty"`
}

// StyleCfg is the presentation layer: nothing in it reaches the numerics.
type StyleCfg struct {
	WidthInch  Real   `json:"widthInch,omitempty"`
	HeightInch Real   `json:"heightInch,omitempty"`
	LogX       bool   `json:"logX,omitempty"`
	LogY       bool   `json:"logY,omitempty"`
	Title      string `json:"title,omitempty"` // prefix for plot titles
}

type Config struct {
	Sigma     Real       `json:"sigma"`
	Kappas    []Real     `json:"kappas"`
	ThetaVDeg []Real     `json:"thetaVDeg"` // degrees in JSON, radians in Jet
	Ys        []Real     `json:"ys"`
	Physics   PhysicsCfg `json:"physics"`
	Tables    []string   `json:"tables"`

	R0Samples         int  `json:"r0Samples,omitempty"`
	PhiSamples        int  `json:"phiSamples,omitempty"`
	LightCurveSamples int  `json:"lightCurveSamples,omitempty"`
	RootScanSamples   int  `json:"rootScanSamples,omitempty"`
	RootScanPhis      int  `json:"rootScanPhis,omitempty"`
	RootScanR0        Real `json:"rootScanR0,omitempty"`
	PhiR0             Real `json:"phiR0,omitempty"`

	AbsTol      Real `json:"absTol,omitempty"`
	QuadNodes   int  `json:"quadNodes,omitempty"`
	PhiNodes    int  `json:"phiNodes,omitempty"`
	MaxDepth    int  `json:"maxDepth,omitempty"`
	Concurrency int  `json:"concurrency,omitempty"`
	Workers     int  `json:"workers,omitempty"`

	OutDir string   `json:"outDir,omitempty"`
	CSV    bool     `json:"csv,omitempty"`
	SQLite string   `json:"sqlite,omitempty"` // database path, empty disables
	PNG    bool     `json:"png,omitempty"`
	HTML   bool     `json:"html,omitempty"`
	Style  StyleCfg `json:"style,omitempty"`
}

// Jets expands the kappa x thetaV grid.
func (c *Config) Jets() []Jet {
	jets := make([]Jet, 0, len(c.Kappas)*len(c.ThetaVDeg))
	for _, k := range c.Kappas {
		for _, th := range c.ThetaVDeg {
			jets = append(jets, Jet{Kappa: k, Sigma: c.Sigma, ThetaV: degToRad(th)})
		}
	}
	return jets
}

func (c *Config) PhysicsParams() Physics {
	return Physics{GammaA: c.Physics.GammaA, K: c.Physics.K, P: c.Physics.P}
}

func (c *Config) Options(log *SampleLog) Options {
	return Options{
		AbsTol:      c.AbsTol,
		QuadNodes:   c.QuadNodes,
		PhiNodes:    c.PhiNodes,
		MaxDepth:    c.MaxDepth,
		Concurrency: c.Concurrency,
		Log:         log,
	}.withDefaults()
}

func (c *Config) wants(table string) bool {
	for _, t := range c.Tables {
		if t == table {
			return true
		}
	}
	return false
}

func (c *Config) setDefaults() {
	if c.Sigma == 0 {
		c.Sigma = DefaultSigma
	}
	if len(c.Kappas) == 0 {
		c.Kappas = []Real{0, 1, 10}
	}
	if len(c.ThetaVDeg) == 0 {
		c.ThetaVDeg = []Real{0, 2, 6}
	}
	if len(c.Ys) == 0 {
		c.Ys = []Real{Tiny, 0.1, 0.25, 0.5, 0.75, 0.9, 1 - Tiny}
	}
	if c.Physics.GammaA == 0 {
		c.Physics.GammaA = DefaultGammaA
	}
	if c.Physics.P == 0 {
		c.Physics.P = DefaultP
	}
	if len(c.Tables) == 0 {
		c.Tables = []string{TableR0Integrand, TablePhiProfile, TableLightCurve}
	}
	if c.R0Samples <= 0 {
		c.R0Samples = R0Samples
	}
	if c.PhiSamples <= 0 {
		c.PhiSamples = PhiSamples
	}
	if c.LightCurveSamples <= 0 {
		c.LightCurveSamples = LightCurveSamples
	}
	if c.RootScanSamples <= 0 {
		c.RootScanSamples = RootScanSamples
	}
	if c.RootScanPhis <= 0 {
		c.RootScanPhis = 5
	}
	if c.RootScanR0 <= 0 {
		c.RootScanR0 = Tiny
	}
	if c.PhiR0 <= 0 {
		c.PhiR0 = PhiChainStart
	}
	if c.OutDir == "" {
		c.OutDir = OutDir
	}
	if c.Style.WidthInch <= 0 {
		c.Style.WidthInch = PlotWidthInch
	}
	if c.Style.HeightInch <= 0 {
		c.Style.HeightInch = PlotHeightInch
	}
}

// Validate checks the scan grid against the model's parameter ranges.
func (c *Config) Validate() error {
	phys := c.PhysicsParams()
	if err := phys.Validate(); err != nil {
		return fmt.Errorf("physics: %w", err)
	}
	for _, j := range c.Jets() {
		if err := j.Validate(); err != nil {
			return fmt.Errorf("jet kappa=%g thetaV=%g: %w", j.Kappa, radToDeg(j.ThetaV), err)
		}
	}
	for _, y := range c.Ys {
		if err := checkY(y); err != nil {
			return err
		}
	}
	for _, t := range c.Tables {
		known := false
		for _, k := range AllTables {
			known = known || t == k
		}
		if !known {
			return fmt.Errorf("unknown table %q", t)
		}
	}
	if math.IsNaN(c.AbsTol) || c.AbsTol < 0 {
		return fmt.Errorf("absTol must be >= 0, got %g", c.AbsTol)
	}
	return nil
}

// LoadConfig reads a JSON scan config, fills defaults for omitted fields and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
