package physics

import (
	"fmt"
	"math"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// Condensate is the textbook BEC form of the Bogoliubov relation in
// arbitrary units: ω = sqrt(εK(εK + 2gn)) with εK = ħ²K²/(2m).
type Condensate struct {
	Hbar    float64
	Mass    float64
	G       float64 // interaction strength
	Density float64 // condensate density n
}

func NewCondensate() *Condensate {
	return &Condensate{
		Hbar:    1.0,
		Mass:    1.0,
		G:       1.0,
		Density: 1.0,
	}
}

func (c *Condensate) Name() string { return "condensate" }

func (c *Condensate) Axes() (bogo.AxisID, bogo.AxisID) {
	return bogo.AxisK, bogo.AxisK
}

// Omega is the interacting branch at (kx, ky) in arbitrary units.
func (c *Condensate) Omega(kx, ky float64) float64 {
	k := math.Sqrt(kx*kx + ky*ky)
	eps := c.Hbar * c.Hbar * k * k / (2 * c.Mass)
	return math.Sqrt(eps * (eps + 2*c.G*c.Density))
}

// Free is the free-particle kinetic branch εK.
func (c *Condensate) Free(kx, ky float64) float64 {
	k := math.Sqrt(kx*kx + ky*ky)
	return c.Hbar * c.Hbar * k * k / (2 * c.Mass)
}

func (c *Condensate) Validate() error {
	if c.Mass <= 0 {
		return &bogo.ParameterError{Name: "mass", Value: c.Mass, Wrapped: bogo.ErrInvalidParameter}
	}
	if c.Hbar <= 0 {
		return &bogo.ParameterError{Name: "hbar", Value: c.Hbar, Wrapped: bogo.ErrInvalidParameter}
	}
	// attractive gn < 0 makes the long-wavelength radicand negative
	if c.G*c.Density < 0 {
		return &bogo.ParameterError{Name: "g", Value: c.G, Wrapped: bogo.ErrInvalidParameter}
	}
	return nil
}

func (c *Condensate) GetParams() map[string]float64 {
	return map[string]float64{
		"hbar":    c.Hbar,
		"mass":    c.Mass,
		"g":       c.G,
		"density": c.Density,
	}
}

func (c *Condensate) SetParam(name string, value float64) error {
	switch name {
	case "hbar":
		c.Hbar = value
	case "mass":
		c.Mass = value
	case "g":
		c.G = value
	case "density":
		c.Density = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
