package physics

import (
	"fmt"
	"math"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// SpatioTemporal is the dispersion law over (kx, Δω) with a
// group-velocity-dispersion term. Only |kx| enters: the ky axis is
// dropped in this geometry, matching the upstream model.
type SpatioTemporal struct {
	Lambda0 float64 // vacuum wavelength [m]
	Dn      float64 // nonlinear index shift
	D0      float64 // group-velocity dispersion [s²/m]
}

func NewSpatioTemporal() *SpatioTemporal {
	return &SpatioTemporal{
		Lambda0: 780e-9,
		Dn:      1e-5,
		D0:      10e-15,
	}
}

func (t *SpatioTemporal) Name() string { return "temporal" }

func (t *SpatioTemporal) Axes() (bogo.AxisID, bogo.AxisID) {
	return bogo.AxisKx, bogo.AxisDeltaOmega
}

// K0 is the central wavevector 2π/λ0 [rad/m].
func (t *SpatioTemporal) K0() float64 {
	return 2 * math.Pi / t.Lambda0
}

// Omega is the interacting branch at (kx [rad/m], Δω [MHz]). The
// frequency shift is converted to rad/s before entering the formula.
func (t *SpatioTemporal) Omega(kx, domega float64) float64 {
	k0 := t.K0()
	k := math.Abs(kx)
	w := domega * 1e6
	kin := k*k/(2*k0) + t.D0*w*w
	return math.Sqrt(kin*kin + k*k*t.Dn + w*w*t.D0*k0*t.Dn)
}

// Free is the non-interacting reference K²/(2k0) + D0·Δω².
func (t *SpatioTemporal) Free(kx, domega float64) float64 {
	k := math.Abs(kx)
	w := domega * 1e6
	return k*k/(2*t.K0()) + t.D0*w*w
}

func (t *SpatioTemporal) Validate() error {
	if t.Lambda0 <= 0 {
		return &bogo.ParameterError{Name: "lambda0", Value: t.Lambda0, Wrapped: bogo.ErrInvalidParameter}
	}
	if t.Dn < 0 {
		return &bogo.ParameterError{Name: "dn", Value: t.Dn, Wrapped: bogo.ErrInvalidParameter}
	}
	return nil
}

func (t *SpatioTemporal) GetParams() map[string]float64 {
	return map[string]float64{
		"lambda0": t.Lambda0,
		"dn":      t.Dn,
		"d0":      t.D0,
	}
}

func (t *SpatioTemporal) SetParam(name string, value float64) error {
	switch name {
	case "lambda0":
		t.Lambda0 = value
	case "dn":
		t.Dn = value
	case "d0":
		t.D0 = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
