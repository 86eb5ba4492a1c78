package physics

import (
	"fmt"
	"math"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// Spatial is the purely transverse dispersion law over (kx, ky).
type Spatial struct {
	Lambda0 float64 // vacuum wavelength [m]
	Dn      float64 // nonlinear index shift
}

func NewSpatial() *Spatial {
	return &Spatial{
		Lambda0: 780e-9,
		Dn:      1e-5,
	}
}

func (s *Spatial) Name() string { return "spatial" }

func (s *Spatial) Axes() (bogo.AxisID, bogo.AxisID) {
	return bogo.AxisKx, bogo.AxisKy
}

// K0 is the central wavevector 2π/λ0 [rad/m].
func (s *Spatial) K0() float64 {
	return 2 * math.Pi / s.Lambda0
}

// Omega is the interacting Bogoliubov branch at (kx, ky) [1/m].
func (s *Spatial) Omega(kx, ky float64) float64 {
	k0 := s.K0()
	k := math.Sqrt(kx*kx + ky*ky)
	kin := k * k / (2 * k0)
	return math.Sqrt(kin*kin + k*k*s.Dn)
}

// Free is the non-interacting parabolic reference K²/(2k0).
func (s *Spatial) Free(kx, ky float64) float64 {
	k := math.Sqrt(kx*kx + ky*ky)
	return k * k / (2 * s.K0())
}

func (s *Spatial) Validate() error {
	if s.Lambda0 <= 0 {
		return &bogo.ParameterError{Name: "lambda0", Value: s.Lambda0, Wrapped: bogo.ErrInvalidParameter}
	}
	if s.Dn < 0 {
		return &bogo.ParameterError{Name: "dn", Value: s.Dn, Wrapped: bogo.ErrInvalidParameter}
	}
	return nil
}

func (s *Spatial) GetParams() map[string]float64 {
	return map[string]float64{
		"lambda0": s.Lambda0,
		"dn":      s.Dn,
	}
}

func (s *Spatial) SetParam(name string, value float64) error {
	switch name {
	case "lambda0":
		s.Lambda0 = value
	case "dn":
		s.Dn = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
