package experiment

import (
	"fmt"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// CutParam marks a spec that scans the cut position instead of a
// relation parameter.
const CutParam = "cut"

// Spec describes one named scan: which parameter varies and over which
// values. Values are in the parameter's native units. A cut scan names
// in Axis the axis its values move along; parameter scans ignore it.
type Spec struct {
	Param  string
	Values []float64
	Axis   bogo.AxisID
	Desc   string
}

type Registry struct {
	scans map[string]Spec
}

func NewRegistry() *Registry {
	r := &Registry{scans: make(map[string]Spec)}

	r.scans["dn-scan"] = Spec{
		Param:  "dn",
		Values: []float64{0.1e-5, 0.2e-5, 0.5e-5, 1e-5, 2e-5, 5e-5, 10e-5},
		Desc:   "nonlinear index shift over the slider range",
	}
	r.scans["d0-scan"] = Spec{
		Param:  "d0",
		Values: []float64{1e-15, 2e-15, 5e-15, 10e-15, 20e-15, 50e-15, 100e-15},
		Desc:   "group-velocity dispersion over the slider range",
	}
	r.scans["kx-scan"] = Spec{
		Param:  CutParam,
		Values: []float64{0, 5e3, 10e3, 15e3, 20e3, 25e3, 30e3},
		Axis:   bogo.AxisKx,
		Desc:   "cut position along kx, 0 to 30 mm⁻¹",
	}
	r.scans["domega-scan"] = Spec{
		Param:  CutParam,
		Values: []float64{0, 20, 40, 60, 80, 100},
		Axis:   bogo.AxisDeltaOmega,
		Desc:   "cut position along Δω, 0 to 100 MHz",
	}

	return r
}

func (r *Registry) Get(name string) (Spec, error) {
	spec, ok := r.scans[name]
	if !ok {
		return Spec{}, fmt.Errorf("unknown scan: %s", name)
	}
	return spec, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scans))
	for name := range r.scans {
		names = append(names, name)
	}
	return names
}

func (r *Registry) Describe(name string) string {
	if spec, ok := r.scans[name]; ok {
		return spec.Desc
	}
	return ""
}
