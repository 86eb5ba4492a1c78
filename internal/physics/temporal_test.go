package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

func TestTemporalReducesToSpatialOnAxis(t *testing.T) {
	st := NewSpatioTemporal()
	sp := NewSpatial()

	// at Δω = 0 the spatio-temporal branch is the transverse one
	for _, kx := range []float64{0, 1e3, 10e3, 100e3} {
		got := st.Omega(kx, 0)
		want := sp.Omega(kx, 0)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("Δω=0 slice mismatch at kx=%g: %g vs %g", kx, got, want)
		}
	}
}

func TestTemporalSymmetry(t *testing.T) {
	st := NewSpatioTemporal()

	kx, dw := 8e3, 15.0
	base := st.Omega(kx, dw)
	for _, c := range []struct {
		kx, dw float64
	}{
		{-kx, dw},
		{kx, -dw},
		{-kx, -dw},
	} {
		if got := st.Omega(c.kx, c.dw); math.Abs(got-base) > 1e-9 {
			t.Errorf("Omega(%g, %g) = %g, expected %g", c.kx, c.dw, got, base)
		}
	}
}

func TestTemporalFreeDispersionPoint(t *testing.T) {
	st := NewSpatioTemporal()

	// D0·w² with D0 = 10 fs²/mm and Δω = 50 MHz
	got := st.Free(0, 50)
	if math.Abs(got-25) > 1e-9 {
		t.Errorf("expected free kin = 25 1/m, got %g", got)
	}
}

func TestTemporalDetuningPoint(t *testing.T) {
	st := NewSpatioTemporal()

	// pure detuning: kin = 1, Ω = sqrt(1 + w²·D0·k0·Δn)
	got := st.Omega(0, 10)
	if math.Abs(got-9.031) > 1e-2 {
		t.Errorf("expected Ω ≈ 9.031 at Δω = 10 MHz, got %g", got)
	}
	if got <= st.Free(0, 10) {
		t.Error("interacting branch should sit above free at nonzero Δω")
	}
}

func TestTemporalMonotonicInD0(t *testing.T) {
	lo := NewSpatioTemporal()
	hi := NewSpatioTemporal()
	hi.D0 = 20e-15

	if hi.Omega(0, 20) <= lo.Omega(0, 20) {
		t.Error("larger D0 should raise the branch off the kx axis")
	}
	// on the kx axis D0 drops out entirely
	if math.Abs(hi.Omega(5e3, 0)-lo.Omega(5e3, 0)) > 1e-9 {
		t.Error("D0 should not affect the Δω = 0 slice")
	}
}

func TestTemporalValidate(t *testing.T) {
	st := NewSpatioTemporal()
	if err := st.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	st.Dn = -1e-6
	if err := st.Validate(); !errors.Is(err, bogo.ErrInvalidParameter) {
		t.Errorf("negative Δn should be invalid, got %v", err)
	}
}

func TestTemporalParams(t *testing.T) {
	st := NewSpatioTemporal()

	if err := st.SetParam("d0", 5e-15); err != nil {
		t.Fatalf("set d0: %v", err)
	}
	if st.D0 != 5e-15 {
		t.Errorf("d0 not applied: %g", st.D0)
	}
	if err := st.SetParam("nope", 0); err == nil {
		t.Error("unknown param should error")
	}

	params := st.GetParams()
	for _, name := range []string{"lambda0", "dn", "d0"} {
		if _, ok := params[name]; !ok {
			t.Errorf("missing param %q", name)
		}
	}
}

func TestTemporalAxes(t *testing.T) {
	st := NewSpatioTemporal()
	a, b := st.Axes()
	if a != bogo.AxisKx || b != bogo.AxisDeltaOmega {
		t.Errorf("expected (kx, domega), got (%s, %s)", a, b)
	}
}
