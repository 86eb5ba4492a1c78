package bogo

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// AxisID identifies one of the wavevector/frequency axes a relation
// can be evaluated over.
type AxisID int

const (
	// AxisKx is the transverse wavevector along x [rad/m].
	AxisKx AxisID = iota
	// AxisKy is the transverse wavevector along y [rad/m].
	AxisKy
	// AxisDeltaOmega is the frequency shift from the carrier [MHz].
	AxisDeltaOmega
	// AxisK is a wavevector in arbitrary (condensate) units.
	AxisK
)

func (id AxisID) String() string {
	switch id {
	case AxisKx:
		return "kx"
	case AxisKy:
		return "ky"
	case AxisDeltaOmega:
		return "domega"
	case AxisK:
		return "k"
	}
	return "unknown"
}

// Label returns the display label including the display unit.
func (id AxisID) Label() string {
	switch id {
	case AxisKx:
		return "kx (mm⁻¹)"
	case AxisKy:
		return "ky (mm⁻¹)"
	case AxisDeltaOmega:
		return "Δω (MHz)"
	case AxisK:
		return "k (arb. units)"
	}
	return "unknown"
}

// DisplayScale is the factor applied to raw samples for display.
// Wavevectors are stored in rad/m and shown in mm⁻¹.
func (id AxisID) DisplayScale() float64 {
	switch id {
	case AxisKx, AxisKy:
		return 1e-3
	}
	return 1
}

// Axis is an ordered, evenly spaced sample sequence along one AxisID.
type Axis struct {
	ID      AxisID
	Samples []float64
}

// NewAxis builds an axis of n evenly spaced samples over [min, max].
func NewAxis(id AxisID, min, max float64, n int) Axis {
	return Axis{ID: id, Samples: Linspace(min, max, n)}
}

// Linspace returns n evenly spaced values from min to max inclusive.
func Linspace(min, max float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}

// Len returns the number of samples.
func (a Axis) Len() int { return len(a.Samples) }

// Display returns the samples scaled for display.
func (a Axis) Display() []float64 {
	out := make([]float64, len(a.Samples))
	scale := a.ID.DisplayScale()
	for i, v := range a.Samples {
		out[i] = v * scale
	}
	return out
}

// Field holds the interacting and free dispersion branches evaluated
// over the full A×B grid. Values are row-major: index i*B.Len()+j maps
// to the point (A.Samples[i], B.Samples[j]).
type Field struct {
	A, B  Axis
	Omega []float64
	Free  []float64
}

// NewField allocates a zero field over the given axes.
func NewField(a, b Axis) *Field {
	n := a.Len() * b.Len()
	return &Field{A: a, B: b, Omega: make([]float64, n), Free: make([]float64, n)}
}

// Rows returns the sample count of the first axis.
func (f *Field) Rows() int { return f.A.Len() }

// Cols returns the sample count of the second axis.
func (f *Field) Cols() int { return f.B.Len() }

// At returns the interacting branch at grid point (i, j).
func (f *Field) At(i, j int) float64 { return f.Omega[i*f.Cols()+j] }

// FreeAt returns the free branch at grid point (i, j).
func (f *Field) FreeAt(i, j int) float64 { return f.Free[i*f.Cols()+j] }

// MinMax returns the extrema of the interacting branch.
func (f *Field) MinMax() (min, max float64) {
	if len(f.Omega) == 0 {
		return 0, 0
	}
	min, max = f.Omega[0], f.Omega[0]
	for _, v := range f.Omega {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// IsValid reports whether the field is free of NaN and Inf values.
func (f *Field) IsValid() bool {
	for _, v := range f.Omega {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Cut is a 1D slice of the dispersion surface with one axis fixed.
type Cut struct {
	Fixed      AxisID
	FixedValue float64
	Axis       Axis
	Omega      []float64
	Free       []float64
}

// Len returns the number of samples along the varying axis.
func (c *Cut) Len() int { return len(c.Omega) }

// Relation is a closed-form dispersion law over two axes. Omega and
// Free must be pure: safe for concurrent calls once parameters are set.
type Relation interface {
	Name() string
	Axes() (a, b AxisID)
	Omega(a, b float64) float64
	Free(a, b float64) float64
	Validate() error
}

// Configurable exposes named scalar parameters for interactive tuning.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}
