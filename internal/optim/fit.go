package optim

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/physics"
)

// Sample is one measured dispersion point. Two-column data files set
// only A; B stays zero, which lands on the first axis by symmetry.
type Sample struct {
	A     float64
	B     float64
	Omega float64
}

type Result struct {
	Params map[string]float64
	Loss   float64
}

// ReadSamples loads measured points from a CSV file. Rows may have two
// columns (K, omega) or three (a, b, omega); a non-numeric first row is
// treated as a header.
func ReadSamples(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		vals := make([]float64, 0, len(row))
		ok := true
		for _, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				ok = false
				break
			}
			vals = append(vals, v)
		}
		if !ok {
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("optim: bad row %d in %s", i+1, path)
		}
		if len(vals) == 2 {
			samples = append(samples, Sample{A: vals[0], Omega: vals[1]})
		} else {
			samples = append(samples, Sample{A: vals[0], B: vals[1], Omega: vals[2]})
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("optim: no samples in %s", path)
	}
	return samples, nil
}

// SquaredError sums squared residuals between the relation and the
// measured points.
func SquaredError(rel bogo.Relation, samples []Sample) float64 {
	var sum float64
	for _, s := range samples {
		d := rel.Omega(s.A, s.B) - s.Omega
		sum += d * d
	}
	return sum
}

// Fit grid-searches the named parameters of a relation against
// measured samples and returns the best-scoring set.
func Fit(
	ctx context.Context,
	relation string,
	base map[string]float64,
	samples []Sample,
	paramNames []string,
	ranges [][]float64,
) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("optim: no samples to fit")
	}
	if len(paramNames) != len(ranges) {
		return Result{}, fmt.Errorf("optim: %d params for %d ranges", len(paramNames), len(ranges))
	}

	search := NewGridSearch(paramNames, ranges)
	params, loss, err := search.Search(ctx, func(candidate map[string]float64) (float64, error) {
		rel, err := physics.New(relation)
		if err != nil {
			return 0, err
		}
		cfg, ok := rel.(bogo.Configurable)
		if !ok {
			return 0, fmt.Errorf("relation %s is not configurable", relation)
		}
		for name, v := range base {
			if err := cfg.SetParam(name, v); err != nil {
				return 0, err
			}
		}
		for name, v := range candidate {
			if err := cfg.SetParam(name, v); err != nil {
				return 0, err
			}
		}
		if err := rel.Validate(); err != nil {
			return 0, err
		}
		return SquaredError(rel, samples), nil
	})
	if err != nil {
		return Result{}, err
	}
	if params == nil {
		return Result{}, fmt.Errorf("optim: no candidate could be evaluated")
	}
	return Result{Params: params, Loss: loss}, nil
}
