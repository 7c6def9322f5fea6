package grba

const (
	Tiny              = 1e-9 // offset keeping y away from the singular endpoints 0 and 1
	R0MaxGuess        = 1e-5 // initial guess for the r0_max root
	PhiChainStart     = 1e-5 // reference r0 for azimuthal continuation scans
	AbsTol            = 1e-5 // default absolute tolerance of the r0 / y quadratures
	MaxNewtonIter     = 100
	MaxBracketSteps   = 60
	MaxBisectIter     = 200
	NewtonRelTol      = 1e-10
	NewtonAbsTol      = 1e-15
	QuadNodes         = 8  // Gauss-Legendre nodes per adaptive panel
	PhiNodes          = 48 // Gauss-Legendre nodes on [0, pi] for the azimuthal integral
	MaxDepth          = 18 // adaptive bisection depth limit
	DefaultSigma      = 2.0
	DefaultGammaA     = 1.0
	DefaultK          = 0.0
	DefaultP          = 2.2
	R0Samples         = 100
	PhiSamples        = 100
	LightCurveSamples = 100
	RootScanSamples   = 100
	OutDir            = "out"
	PlotWidthInch     = 6
	PlotHeightInch    = 4
	ChartDPI          = 96 // CSS pixels per inch for HTML charts
	maxConfigSize     = 1 << 20 // 1MB
)
