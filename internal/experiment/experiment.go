package experiment

import (
	"context"
	"fmt"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/eval"
	"github.com/quentinglorieux/Bogo3D/internal/physics"
)

type Config struct {
	Scan       string
	Relation   string
	BaseParams map[string]float64
	Spec       Spec
	Fixed      bogo.AxisID
	FixedValue float64
	Samples    []float64
}

// Experiment evaluates a family of cuts, one per scanned value.
type Experiment struct {
	cfg         Config
	rels        []bogo.Relation
	fixedValues []float64
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds one relation per scanned value. For relation-parameter
// scans each member gets its own value; for cut scans the members
// share parameters and differ in cut position.
func (e *Experiment) Setup() error {
	n := len(e.cfg.Spec.Values)
	if n == 0 {
		return fmt.Errorf("scan %s has no values", e.cfg.Scan)
	}

	e.rels = make([]bogo.Relation, n)
	e.fixedValues = make([]float64, n)

	for i, value := range e.cfg.Spec.Values {
		rel, err := physics.New(e.cfg.Relation)
		if err != nil {
			return err
		}

		cfgRel, ok := rel.(bogo.Configurable)
		if !ok {
			return fmt.Errorf("relation %s is not configurable", e.cfg.Relation)
		}
		for name, v := range e.cfg.BaseParams {
			if err := cfgRel.SetParam(name, v); err != nil {
				return err
			}
		}

		if e.cfg.Spec.Param == CutParam {
			e.fixedValues[i] = value
		} else {
			if err := cfgRel.SetParam(e.cfg.Spec.Param, value); err != nil {
				return err
			}
			e.fixedValues[i] = e.cfg.FixedValue
		}

		e.rels[i] = rel
	}

	return nil
}

// heldAxis is the axis the cut family holds fixed. Cut scans name the
// axis themselves; parameter scans cut wherever the caller chose.
func (e *Experiment) heldAxis() bogo.AxisID {
	if e.cfg.Spec.Param == CutParam {
		return e.cfg.Spec.Axis
	}
	return e.cfg.Fixed
}

// Run evaluates the whole family concurrently.
func (e *Experiment) Run(ctx context.Context) ([]*bogo.Cut, error) {
	if e.rels == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return eval.CutFamily(ctx, e.rels, e.heldAxis(), e.fixedValues, e.cfg.Samples)
}

// Relations exposes the family members, in value order.
func (e *Experiment) Relations() []bogo.Relation { return e.rels }
