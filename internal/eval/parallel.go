package eval

import (
	"context"
	"fmt"
	"sync"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

// fill writes both branches for every grid point. Rows are split in
// contiguous chunks across workers; each worker owns disjoint rows, so
// no synchronization is needed beyond the WaitGroup. Identical results
// to serial evaluation: there is no cross-point coupling.
func (e *Evaluator) fill(ctx context.Context, f *bogo.Field) error {
	rows, cols := f.Rows(), f.Cols()

	if rows*cols < serialThreshold || e.workers <= 1 {
		return e.fillRange(ctx, f, 0, rows)
	}

	workers := e.workers
	if workers > rows {
		workers = rows
	}
	chunk := (rows + workers - 1) / workers

	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > rows {
			end = rows
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(idx, lo, hi int) {
			defer wg.Done()
			errs[idx] = e.fillRange(ctx, f, lo, hi)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Evaluator) fillRange(ctx context.Context, f *bogo.Field, lo, hi int) error {
	cols := f.Cols()
	for i := lo; i < hi; i++ {
		select {
		case <-ctx.Done():
			return bogo.ErrCanceled
		default:
		}
		a := f.A.Samples[i]
		base := i * cols
		for j := 0; j < cols; j++ {
			b := f.B.Samples[j]
			f.Omega[base+j] = e.rel.Omega(a, b)
			f.Free[base+j] = e.rel.Free(a, b)
		}
	}
	return nil
}

// CutFamily evaluates one cut per relation concurrently, writing into
// indexed slots. fixedValues holds the cut position per member, so a
// family can scan either a physical parameter (same position, varied
// relations) or the cut position itself. Relations must not share
// mutable state.
func CutFamily(ctx context.Context, rels []bogo.Relation, fixed bogo.AxisID, fixedValues []float64, samples []float64) ([]*bogo.Cut, error) {
	if len(rels) != len(fixedValues) {
		return nil, fmt.Errorf("eval: %d relations for %d cut positions", len(rels), len(fixedValues))
	}

	cuts := make([]*bogo.Cut, len(rels))
	errs := make([]error, len(rels))

	var wg sync.WaitGroup
	for i := range rels {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			cuts[idx], errs[idx] = CutAt(ctx, rels[idx], fixed, fixedValues[idx], samples)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return cuts, nil
}
