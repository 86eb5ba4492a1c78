package analysis

import (
	"math"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// SoundSpeed returns the slope of the phonon branch, sqrt(Δn) in the
// reduced units of the spatial relation (Ω in 1/m against K in rad/m).
func SoundSpeed(dn float64) float64 {
	if dn < 0 {
		return math.NaN()
	}
	return math.Sqrt(dn)
}

// GroupVelocity differentiates the interacting branch along the cut's
// varying axis with central differences, one-sided at the ends. The
// result has one value per sample.
func GroupVelocity(c *bogo.Cut) []float64 {
	n := c.Len()
	if n < 2 {
		return nil
	}
	v := make([]float64, n)
	x := c.Axis.Samples
	v[0] = (c.Omega[1] - c.Omega[0]) / (x[1] - x[0])
	v[n-1] = (c.Omega[n-1] - c.Omega[n-2]) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		v[i] = (c.Omega[i+1] - c.Omega[i-1]) / (x[i+1] - x[i-1])
	}
	return v
}

// MaxShift returns the largest gap between the interacting and free
// branches over the field, the point where interactions matter most.
func MaxShift(f *bogo.Field) float64 {
	max := 0.0
	for i := range f.Omega {
		d := math.Abs(f.Omega[i] - f.Free[i])
		if d > max {
			max = d
		}
	}
	return max
}
