package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

func TestRegistryGet(t *testing.T) {
	reg := NewRegistry()

	spec, err := reg.Get("dn-scan")
	if err != nil {
		t.Fatalf("Get(dn-scan) failed: %v", err)
	}
	if spec.Param != "dn" {
		t.Errorf("expected param dn, got %s", spec.Param)
	}
	if len(spec.Values) == 0 {
		t.Error("expected non-empty values")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Get("nope")
	if err == nil {
		t.Fatal("expected error for unknown scan")
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry()

	names := reg.List()
	if len(names) != 4 {
		t.Fatalf("expected 4 scans, got %d", len(names))
	}
	seen := make(map[string]bool)
	for _, name := range names {
		seen[name] = true
	}
	for _, want := range []string{"dn-scan", "d0-scan", "kx-scan", "domega-scan"} {
		if !seen[want] {
			t.Errorf("missing scan %s", want)
		}
	}
}

func TestExperimentParamScan(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("dn-scan")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	exp := New(Config{
		Scan:       "dn-scan",
		Relation:   "spatial",
		Spec:       spec,
		Fixed:      bogo.AxisKx,
		FixedValue: 10e3,
		Samples:    bogo.Linspace(-80e3, 80e3, 41),
	})
	if err := exp.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	rels := exp.Relations()
	if len(rels) != len(spec.Values) {
		t.Fatalf("expected %d relations, got %d", len(spec.Values), len(rels))
	}
	for i, rel := range rels {
		params := rel.(bogo.Configurable).GetParams()
		if math.Abs(params["dn"]-spec.Values[i]) > 1e-12 {
			t.Errorf("member %d: dn = %g, want %g", i, params["dn"], spec.Values[i])
		}
	}

	cuts, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(cuts) != len(spec.Values) {
		t.Fatalf("expected %d cuts, got %d", len(spec.Values), len(cuts))
	}
	for i, cut := range cuts {
		if cut.Len() != 41 {
			t.Errorf("cut %d: length %d, want 41", i, cut.Len())
		}
	}

	// Stronger interaction stiffens the branch everywhere off-axis.
	mid := 30
	for i := 1; i < len(cuts); i++ {
		if cuts[i].Omega[mid] <= cuts[i-1].Omega[mid] {
			t.Errorf("omega not increasing with dn: cut %d %g <= cut %d %g",
				i, cuts[i].Omega[mid], i-1, cuts[i-1].Omega[mid])
		}
	}
}

func TestExperimentCutScan(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("kx-scan")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if spec.Param != CutParam {
		t.Fatalf("kx-scan should scan the cut position, got %s", spec.Param)
	}
	if spec.Axis != bogo.AxisKx {
		t.Fatalf("kx-scan should hold kx, got %s", spec.Axis)
	}

	exp := New(Config{
		Scan:     "kx-scan",
		Relation: "temporal",
		Spec:     spec,
		Fixed:    bogo.AxisKx,
		Samples:  bogo.Linspace(-150, 150, 31),
	})
	if err := exp.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	cuts, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(cuts) != len(spec.Values) {
		t.Fatalf("expected %d cuts, got %d", len(spec.Values), len(cuts))
	}
	for i, cut := range cuts {
		if cut.Fixed != bogo.AxisKx {
			t.Errorf("cut %d: held axis %s, want kx", i, cut.Fixed)
		}
		if cut.FixedValue != spec.Values[i] {
			t.Errorf("cut %d: fixed at %g, want %g", i, cut.FixedValue, spec.Values[i])
		}
		if cut.Axis.ID != bogo.AxisDeltaOmega {
			t.Errorf("cut %d: sweeps %s, want domega", i, cut.Axis.ID)
		}
	}
}

func TestExperimentDomegaScanHeldAxis(t *testing.T) {
	reg := NewRegistry()
	spec, err := reg.Get("domega-scan")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if spec.Axis != bogo.AxisDeltaOmega {
		t.Fatalf("domega-scan should hold domega, got %s", spec.Axis)
	}

	// Fixed carries a stale kx default here; the scan's own axis must
	// win, so the MHz values land on Δω and the sweep runs along kx.
	exp := New(Config{
		Scan:     "domega-scan",
		Relation: "temporal",
		Spec:     spec,
		Fixed:    bogo.AxisKx,
		Samples:  bogo.Linspace(-70e3, 70e3, 31),
	})
	if err := exp.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	cuts, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(cuts) != len(spec.Values) {
		t.Fatalf("expected %d cuts, got %d", len(spec.Values), len(cuts))
	}
	for i, cut := range cuts {
		if cut.Fixed != bogo.AxisDeltaOmega {
			t.Errorf("cut %d: held axis %s (value %g), want domega", i, cut.Fixed, cut.FixedValue)
		}
		if cut.FixedValue != spec.Values[i] {
			t.Errorf("cut %d: fixed at %g, want %g MHz", i, cut.FixedValue, spec.Values[i])
		}
		if cut.Axis.ID != bogo.AxisKx {
			t.Errorf("cut %d: sweeps %s, want kx", i, cut.Axis.ID)
		}
	}

	// Detuning stiffens the branch, so on-axis values grow cut by cut.
	mid := cuts[0].Len() / 2
	for i := 1; i < len(cuts); i++ {
		if cuts[i].Omega[mid] <= cuts[i-1].Omega[mid] {
			t.Errorf("omega not increasing with Δω: cut %d %g <= cut %d %g",
				i, cuts[i].Omega[mid], i-1, cuts[i-1].Omega[mid])
		}
	}
}

func TestExperimentBaseParams(t *testing.T) {
	reg := NewRegistry()
	spec, _ := reg.Get("d0-scan")

	exp := New(Config{
		Scan:       "d0-scan",
		Relation:   "temporal",
		BaseParams: map[string]float64{"dn": 5e-5},
		Spec:       spec,
		Fixed:      bogo.AxisKx,
		FixedValue: 10e3,
		Samples:    bogo.Linspace(-150, 150, 11),
	})
	if err := exp.Setup(); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	for i, rel := range exp.Relations() {
		params := rel.(bogo.Configurable).GetParams()
		if params["dn"] != 5e-5 {
			t.Errorf("member %d: base dn not applied, got %g", i, params["dn"])
		}
		if math.Abs(params["d0"]-spec.Values[i]) > 1e-25 {
			t.Errorf("member %d: d0 = %g, want %g", i, params["d0"], spec.Values[i])
		}
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{Scan: "dn-scan", Relation: "spatial"})

	_, err := exp.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for Run before Setup")
	}
}

func TestExperimentUnknownRelation(t *testing.T) {
	reg := NewRegistry()
	spec, _ := reg.Get("dn-scan")

	exp := New(Config{Scan: "dn-scan", Relation: "nope", Spec: spec})
	if err := exp.Setup(); err == nil {
		t.Fatal("expected error for unknown relation")
	}
}
