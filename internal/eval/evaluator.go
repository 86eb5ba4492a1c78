package eval

import (
	"context"
	"runtime"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// serialThreshold is the grid size below which row workers cost more
// than they save.
const serialThreshold = 4096

// Evaluator applies one relation over grids and cuts. The zero worker
// count means one worker per CPU.
type Evaluator struct {
	rel     bogo.Relation
	workers int
}

func New(rel bogo.Relation) *Evaluator {
	return &Evaluator{rel: rel, workers: runtime.NumCPU()}
}

// SetWorkers overrides the worker count. n < 1 restores the default.
func (e *Evaluator) SetWorkers(n int) {
	if n < 1 {
		n = runtime.NumCPU()
	}
	e.workers = n
}

// Relation returns the relation under evaluation.
func (e *Evaluator) Relation() bogo.Relation { return e.rel }

// Grid evaluates both branches over axisA × axisB into a fresh field.
func (e *Evaluator) Grid(ctx context.Context, axisA, axisB bogo.Axis) (*bogo.Field, error) {
	if err := e.rel.Validate(); err != nil {
		return nil, err
	}
	if axisA.Len() < 2 || axisB.Len() < 2 {
		return nil, bogo.ErrAxisTooShort
	}
	field := bogo.NewField(axisA, axisB)
	if err := e.fill(ctx, field); err != nil {
		return nil, err
	}
	return field, nil
}

// GridInto evaluates into an existing field, overwriting every value.
// The field's axes select the grid. Intended for pooled reuse by the
// interactive view.
func (e *Evaluator) GridInto(ctx context.Context, field *bogo.Field) error {
	if err := e.rel.Validate(); err != nil {
		return err
	}
	if field.Rows() < 2 || field.Cols() < 2 {
		return bogo.ErrAxisTooShort
	}
	return e.fill(ctx, field)
}

// Cut evaluates along a line where the fixed axis is held at
// fixedValue and the relation's other axis varies over samples. For
// relations whose axes share an ID the first axis is the fixed one.
func (e *Evaluator) Cut(ctx context.Context, fixed bogo.AxisID, fixedValue float64, samples []float64) (*bogo.Cut, error) {
	if err := e.rel.Validate(); err != nil {
		return nil, err
	}
	if len(samples) < 2 {
		return nil, bogo.ErrAxisTooShort
	}

	a, b := e.rel.Axes()
	var varying bogo.AxisID
	var at func(v float64) (float64, float64)
	switch fixed {
	case a:
		varying = b
		at = func(v float64) (float64, float64) {
			return e.rel.Omega(fixedValue, v), e.rel.Free(fixedValue, v)
		}
	case b:
		varying = a
		at = func(v float64) (float64, float64) {
			return e.rel.Omega(v, fixedValue), e.rel.Free(v, fixedValue)
		}
	default:
		return nil, bogo.ErrAxisMismatch
	}

	cut := &bogo.Cut{
		Fixed:      fixed,
		FixedValue: fixedValue,
		Axis:       bogo.Axis{ID: varying, Samples: samples},
		Omega:      make([]float64, len(samples)),
		Free:       make([]float64, len(samples)),
	}
	for i, v := range samples {
		select {
		case <-ctx.Done():
			return nil, bogo.ErrCanceled
		default:
		}
		cut.Omega[i], cut.Free[i] = at(v)
	}
	return cut, nil
}

// Grid is a convenience wrapper over a one-shot evaluator.
func Grid(ctx context.Context, rel bogo.Relation, axisA, axisB bogo.Axis) (*bogo.Field, error) {
	return New(rel).Grid(ctx, axisA, axisB)
}

// CutAt is a convenience wrapper over a one-shot evaluator.
func CutAt(ctx context.Context, rel bogo.Relation, fixed bogo.AxisID, fixedValue float64, samples []float64) (*bogo.Cut, error) {
	return New(rel).Cut(ctx, fixed, fixedValue, samples)
}
