package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

func TestCondensateReferencePoint(t *testing.T) {
	c := NewCondensate()

	// ħ = m = g = n = 1: εk = k²/2, ω = sqrt(εk(εk + 2))
	got := c.Omega(2, 0)
	want := math.Sqrt(8)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected ω = √8 at k=2, got %g", got)
	}
}

func TestCondensateSoundSpeedLimit(t *testing.T) {
	c := NewCondensate()

	// with unit parameters the sound speed is 1, so ω → k for small k
	k := 0.01
	got := c.Omega(k, 0)
	if math.Abs(got-k)/k > 1e-3 {
		t.Errorf("small-k limit: expected ω ≈ %g, got %g", k, got)
	}
}

func TestCondensateFreeParticleLimit(t *testing.T) {
	c := NewCondensate()

	k := 100.0
	ratio := c.Omega(k, 0) / c.Free(k, 0)
	if ratio < 1 || ratio > 1.001 {
		t.Errorf("large-k limit: expected ratio near 1, got %g", ratio)
	}
}

func TestCondensateRadialSymmetry(t *testing.T) {
	c := NewCondensate()

	k := math.Sqrt(3*3 + 4*4)
	if got, want := c.Omega(3, 4), c.Omega(k, 0); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, got)
	}
	if got, want := c.Omega(-3, -4), c.Omega(3, 4); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, got)
	}
}

func TestCondensateValidate(t *testing.T) {
	c := NewCondensate()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	c.Mass = 0
	if err := c.Validate(); !errors.Is(err, bogo.ErrInvalidParameter) {
		t.Errorf("zero mass should be invalid, got %v", err)
	}

	c = NewCondensate()
	c.Hbar = -1
	if err := c.Validate(); !errors.Is(err, bogo.ErrInvalidParameter) {
		t.Errorf("negative ħ should be invalid, got %v", err)
	}

	c = NewCondensate()
	c.G = -1
	if err := c.Validate(); !errors.Is(err, bogo.ErrInvalidParameter) {
		t.Errorf("attractive gn should be invalid, got %v", err)
	}
}

func TestCondensateParams(t *testing.T) {
	c := NewCondensate()

	if err := c.SetParam("g", 2); err != nil {
		t.Fatalf("set g: %v", err)
	}
	if c.G != 2 {
		t.Errorf("g not applied: %g", c.G)
	}
	if err := c.SetParam("unknown", 0); err == nil {
		t.Error("unknown param should error")
	}
}

func TestCondensateAxes(t *testing.T) {
	c := NewCondensate()
	a, b := c.Axes()
	if a != bogo.AxisK || b != bogo.AxisK {
		t.Errorf("expected (k, k), got (%s, %s)", a, b)
	}
}
