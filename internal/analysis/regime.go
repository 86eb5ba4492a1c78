package analysis

import (
	"math"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// wavenumber returns the K entering the relation at grid point (a, b),
// following each geometry's convention: radial for wavevector-pair
// axes, |kx| when the second axis is a frequency shift.
func wavenumber(f *bogo.Field, i, j int) float64 {
	a := f.A.Samples[i]
	if f.B.ID == bogo.AxisDeltaOmega {
		return math.Abs(a)
	}
	b := f.B.Samples[j]
	return math.Sqrt(a*a + b*b)
}

// PhononFraction returns the fraction of grid points inside the
// phonon-like regime K < crossover.
func PhononFraction(f *bogo.Field, crossover float64) float64 {
	if crossover <= 0 {
		return 0
	}
	total := f.Rows() * f.Cols()
	if total == 0 {
		return 0
	}
	count := 0
	for i := 0; i < f.Rows(); i++ {
		for j := 0; j < f.Cols(); j++ {
			if wavenumber(f, i, j) < crossover {
				count++
			}
		}
	}
	return float64(count) / float64(total)
}

// Summary collects the derived quantities displayed alongside a
// surface. Fields not defined for a relation (no λ0, no Δn) are zero.
type Summary struct {
	HealingK   float64 // k_ξ [mm⁻¹], rounded display value
	Crossover  float64 // k0·sqrt(Δn) [rad/m], unrounded
	SoundSpeed float64
	PeakOmega  float64
	MaxShift   float64
	PhononFrac float64
}

// ToMap flattens the summary for storage and export.
func (s Summary) ToMap() map[string]float64 {
	return map[string]float64{
		"healing_k":   s.HealingK,
		"crossover":   s.Crossover,
		"sound_speed": s.SoundSpeed,
		"peak_omega":  s.PeakOmega,
		"max_shift":   s.MaxShift,
		"phonon_frac": s.PhononFrac,
	}
}

// Summarize derives the summary for an evaluated field. Parameters are
// read through the relation's configurable surface.
func Summarize(rel bogo.Relation, f *bogo.Field) Summary {
	var s Summary
	_, s.PeakOmega = f.MinMax()
	s.MaxShift = MaxShift(f)

	cfg, ok := rel.(bogo.Configurable)
	if !ok {
		return s
	}
	params := cfg.GetParams()
	lambda0, hasLambda := params["lambda0"]
	dn, hasDn := params["dn"]
	if !hasLambda || !hasDn || lambda0 <= 0 || dn < 0 {
		return s
	}

	k0 := 2 * math.Pi / lambda0
	s.HealingK = bogo.HealingWavenumber(k0, dn)
	s.Crossover = bogo.CrossoverWavenumber(k0, dn)
	s.SoundSpeed = SoundSpeed(dn)
	s.PhononFrac = PhononFraction(f, s.Crossover)
	return s
}
