package grba

import (
	"math"
)

type Real = float64

func isFinite(x Real) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

func imin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func degToRad(d Real) Real { return d * math.Pi / 180 }

func radToDeg(r Real) Real { return r * 180 / math.Pi }
