package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

func TestSpatialReferencePoint(t *testing.T) {
	s := NewSpatial()

	// λ0 = 780 nm, Δn = 1e-5, kx = 10 mm⁻¹
	got := s.Omega(10e3, 0)
	if math.Abs(got-32.2262) > 1e-3 {
		t.Errorf("expected Ω ≈ 32.2262 1/m, got %g", got)
	}
}

func TestSpatialPhononRegime(t *testing.T) {
	s := NewSpatial()

	// well below the crossover the branch is linear, Ω ≈ K·sqrt(Δn)
	k := 1e3
	got := s.Omega(k, 0)
	want := k * math.Sqrt(s.Dn)
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("phonon regime: expected Ω ≈ %g, got %g", want, got)
	}
}

func TestSpatialFreeParticleRegime(t *testing.T) {
	s := NewSpatial()

	// far above the crossover the branch approaches the free parabola
	k := 500e3
	ratio := s.Omega(k, 0) / s.Free(k, 0)
	if ratio < 1 || ratio > 1.01 {
		t.Errorf("free regime: expected ratio near 1, got %g", ratio)
	}
}

func TestSpatialInteractionRaisesBranch(t *testing.T) {
	s := NewSpatial()

	for _, k := range []float64{1e3, 10e3, 50e3} {
		if s.Omega(k, 0) <= s.Free(k, 0) {
			t.Errorf("interacting branch should sit above free at k=%g", k)
		}
	}
}

func TestSpatialRotationalSymmetry(t *testing.T) {
	s := NewSpatial()

	a, b := 7e3, 12e3
	k := math.Sqrt(a*a + b*b)

	cases := []float64{
		s.Omega(a, b),
		s.Omega(b, a),
		s.Omega(-a, -b),
		s.Omega(k, 0),
	}
	for i := 1; i < len(cases); i++ {
		if math.Abs(cases[i]-cases[0]) > 1e-9 {
			t.Errorf("rotational symmetry broken: %g vs %g", cases[i], cases[0])
		}
	}
}

func TestSpatialZeroDnMatchesFree(t *testing.T) {
	s := NewSpatial()
	s.Dn = 0

	for _, k := range []float64{0, 5e3, 40e3} {
		if math.Abs(s.Omega(k, 0)-s.Free(k, 0)) > 1e-9 {
			t.Errorf("Δn=0 should collapse onto the free branch at k=%g", k)
		}
	}
}

func TestSpatialMonotonicInDn(t *testing.T) {
	lo := NewSpatial()
	hi := NewSpatial()
	hi.Dn = 5e-5

	if hi.Omega(10e3, 0) <= lo.Omega(10e3, 0) {
		t.Error("larger Δn should raise the interacting branch")
	}
}

func TestSpatialValidate(t *testing.T) {
	s := NewSpatial()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	s.Dn = -1e-5
	if err := s.Validate(); !errors.Is(err, bogo.ErrInvalidParameter) {
		t.Errorf("negative Δn should be invalid, got %v", err)
	}

	s = NewSpatial()
	s.Lambda0 = 0
	if err := s.Validate(); !errors.Is(err, bogo.ErrInvalidParameter) {
		t.Errorf("zero wavelength should be invalid, got %v", err)
	}

	s = NewSpatial()
	s.Dn = 0
	if err := s.Validate(); err != nil {
		t.Errorf("Δn=0 is a valid linear medium, got %v", err)
	}
}

func TestSpatialParams(t *testing.T) {
	s := NewSpatial()

	if err := s.SetParam("dn", 3e-5); err != nil {
		t.Fatalf("set dn: %v", err)
	}
	if s.Dn != 3e-5 {
		t.Errorf("dn not applied: %g", s.Dn)
	}

	if err := s.SetParam("bogus", 1); err == nil {
		t.Error("unknown param should error")
	}

	params := s.GetParams()
	if params["dn"] != 3e-5 || params["lambda0"] != 780e-9 {
		t.Errorf("unexpected params: %v", params)
	}
}

func TestSpatialAxes(t *testing.T) {
	s := NewSpatial()
	a, b := s.Axes()
	if a != bogo.AxisKx || b != bogo.AxisKy {
		t.Errorf("expected (kx, ky), got (%s, %s)", a, b)
	}
}
