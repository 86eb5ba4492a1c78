package eval

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/physics"
)

func smallAxes() (bogo.Axis, bogo.Axis) {
	a := bogo.NewAxis(bogo.AxisKx, -50e3, 50e3, 11)
	b := bogo.NewAxis(bogo.AxisKy, -50e3, 50e3, 7)
	return a, b
}

func TestGridMatchesRelation(t *testing.T) {
	rel := physics.NewSpatial()
	a, b := smallAxes()

	field, err := New(rel).Grid(context.Background(), a, b)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if field.Rows() != a.Len() || field.Cols() != b.Len() {
		t.Fatalf("expected %dx%d field, got %dx%d", a.Len(), b.Len(), field.Rows(), field.Cols())
	}

	for i := 0; i < field.Rows(); i++ {
		for j := 0; j < field.Cols(); j++ {
			kx, ky := a.Samples[i], b.Samples[j]
			if got, want := field.At(i, j), rel.Omega(kx, ky); got != want {
				t.Fatalf("omega mismatch at (%d,%d): %g vs %g", i, j, got, want)
			}
			if got, want := field.FreeAt(i, j), rel.Free(kx, ky); got != want {
				t.Fatalf("free mismatch at (%d,%d): %g vs %g", i, j, got, want)
			}
		}
	}
}

func TestGridSerialMatchesParallel(t *testing.T) {
	a := bogo.NewAxis(bogo.AxisKx, -100e3, 100e3, 90)
	b := bogo.NewAxis(bogo.AxisKy, -100e3, 100e3, 90)

	serial := New(physics.NewSpatial())
	serial.SetWorkers(1)
	parallel := New(physics.NewSpatial())
	parallel.SetWorkers(8)

	fs, err := serial.Grid(context.Background(), a, b)
	if err != nil {
		t.Fatalf("serial grid: %v", err)
	}
	fp, err := parallel.Grid(context.Background(), a, b)
	if err != nil {
		t.Fatalf("parallel grid: %v", err)
	}

	for i := range fs.Omega {
		if fs.Omega[i] != fp.Omega[i] || fs.Free[i] != fp.Free[i] {
			t.Fatalf("serial and parallel diverge at index %d", i)
		}
	}
}

func TestGridAxisTooShort(t *testing.T) {
	a := bogo.Axis{ID: bogo.AxisKx, Samples: []float64{0}}
	b := bogo.NewAxis(bogo.AxisKy, -1, 1, 5)

	_, err := New(physics.NewSpatial()).Grid(context.Background(), a, b)
	if !errors.Is(err, bogo.ErrAxisTooShort) {
		t.Errorf("expected ErrAxisTooShort, got %v", err)
	}
}

func TestGridRejectsInvalidRelation(t *testing.T) {
	rel := physics.NewSpatial()
	rel.Dn = -1e-5
	a, b := smallAxes()

	_, err := New(rel).Grid(context.Background(), a, b)
	if !errors.Is(err, bogo.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestGridCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, b := smallAxes()
	_, err := New(physics.NewSpatial()).Grid(ctx, a, b)
	if !errors.Is(err, bogo.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
}

func TestGridInto(t *testing.T) {
	a, b := smallAxes()
	field := bogo.NewField(a, b)
	for i := range field.Omega {
		field.Omega[i] = -1
	}

	rel := physics.NewSpatial()
	if err := New(rel).GridInto(context.Background(), field); err != nil {
		t.Fatalf("grid into: %v", err)
	}
	if field.At(0, 0) != rel.Omega(a.Samples[0], b.Samples[0]) {
		t.Error("field values not overwritten")
	}
}

func TestCutMatchesGrid(t *testing.T) {
	rel := physics.NewSpatial()
	a, b := smallAxes()

	field, err := New(rel).Grid(context.Background(), a, b)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}

	// fix ky at a grid column, vary kx over the row axis
	col := 3
	cut, err := New(rel).Cut(context.Background(), bogo.AxisKy, b.Samples[col], a.Samples)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if cut.Axis.ID != bogo.AxisKx {
		t.Fatalf("expected varying axis kx, got %s", cut.Axis.ID)
	}
	for i := 0; i < a.Len(); i++ {
		if cut.Omega[i] != field.At(i, col) {
			t.Fatalf("cut diverges from grid at row %d", i)
		}
	}
}

func TestCutFixedFirstAxis(t *testing.T) {
	rel := physics.NewSpatioTemporal()
	samples := bogo.Linspace(-20, 20, 9)

	cut, err := New(rel).Cut(context.Background(), bogo.AxisKx, 5e3, samples)
	if err != nil {
		t.Fatalf("cut: %v", err)
	}
	if cut.Axis.ID != bogo.AxisDeltaOmega {
		t.Fatalf("expected varying axis domega, got %s", cut.Axis.ID)
	}
	if got, want := cut.Omega[4], rel.Omega(5e3, samples[4]); got != want {
		t.Errorf("expected %g, got %g", want, got)
	}
}

func TestCutAxisMismatch(t *testing.T) {
	_, err := New(physics.NewSpatial()).Cut(context.Background(), bogo.AxisDeltaOmega, 0, bogo.Linspace(-1, 1, 5))
	if !errors.Is(err, bogo.ErrAxisMismatch) {
		t.Errorf("expected ErrAxisMismatch, got %v", err)
	}
}

func TestCutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(physics.NewSpatial()).Cut(ctx, bogo.AxisKy, 0, bogo.Linspace(-1, 1, 5))
	if !errors.Is(err, bogo.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
}

func TestCutFamily(t *testing.T) {
	rels := make([]bogo.Relation, 3)
	dns := []float64{1e-5, 2e-5, 4e-5}
	for i, dn := range dns {
		s := physics.NewSpatial()
		s.Dn = dn
		rels[i] = s
	}
	samples := bogo.Linspace(-50e3, 50e3, 21)

	cuts, err := CutFamily(context.Background(), rels, bogo.AxisKy, []float64{0, 0, 0}, samples)
	if err != nil {
		t.Fatalf("cut family: %v", err)
	}
	if len(cuts) != 3 {
		t.Fatalf("expected 3 cuts, got %d", len(cuts))
	}
	// members stay in order and larger Δn raises the branch
	for i := 1; i < len(cuts); i++ {
		if cuts[i].Omega[0] <= cuts[i-1].Omega[0] {
			t.Errorf("cut %d should sit above cut %d", i, i-1)
		}
	}
}

func TestCutFamilyLengthMismatch(t *testing.T) {
	rels := []bogo.Relation{physics.NewSpatial()}
	_, err := CutFamily(context.Background(), rels, bogo.AxisKy, []float64{0, 1}, bogo.Linspace(-1, 1, 5))
	if err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestFieldPool(t *testing.T) {
	a, b := smallAxes()
	pool := NewFieldPool(a, b)

	f := pool.Get()
	if f.Rows() != a.Len() || f.Cols() != b.Len() {
		t.Fatalf("expected %dx%d field, got %dx%d", a.Len(), b.Len(), f.Rows(), f.Cols())
	}
	pool.Put(f)

	// fields of the wrong shape are dropped, not recycled
	other := bogo.NewField(bogo.NewAxis(bogo.AxisKx, -1, 1, 3), bogo.NewAxis(bogo.AxisKy, -1, 1, 3))
	pool.Put(other)
	if g := pool.Get(); g.Rows() != a.Len() || g.Cols() != b.Len() {
		t.Errorf("pool handed back a foreign field: %dx%d", g.Rows(), g.Cols())
	}
	pool.Put(nil)
}

func TestSerialThresholdKeepsResultsExact(t *testing.T) {
	// tiny grid takes the serial path regardless of worker count
	rel := physics.NewCondensate()
	a := bogo.NewAxis(bogo.AxisK, 0, 5, 6)
	b := bogo.NewAxis(bogo.AxisK, 0, 5, 6)

	e := New(rel)
	e.SetWorkers(16)
	field, err := e.Grid(context.Background(), a, b)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	want := rel.Omega(a.Samples[2], 0)
	if math.Abs(field.At(2, 0)-want) > 1e-12 {
		t.Errorf("expected %g, got %g", want, field.At(2, 0))
	}
}
