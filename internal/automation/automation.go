package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/quentinglorieux/Bogo3D/internal/analysis"
	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/config"
	"github.com/quentinglorieux/Bogo3D/internal/eval"
	"github.com/quentinglorieux/Bogo3D/internal/physics"
)

// Scenario defines a scripted evaluation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario
type ScenarioStep struct {
	Relation  string             `yaml:"relation"`
	Params    map[string]float64 `yaml:"params"`
	Points    int                `yaml:"points"`
	KHalf     float64            `yaml:"k_half"`
	OmegaHalf float64            `yaml:"omega_half"`
	CutFixed  string             `yaml:"cut_fixed"`
	CutValue  float64            `yaml:"cut_value"`
	SaveAs    string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// StepResult carries one step's evaluated surfaces.
type StepResult struct {
	Step     ScenarioStep
	Relation bogo.Relation
	Field    *bogo.Field
	Cut      *bogo.Cut
	Summary  analysis.Summary
}

func stepConfig(step ScenarioStep) *config.Config {
	cfg := config.DefaultConfig()
	if step.Relation != "" {
		cfg.Relation = step.Relation
	}
	if step.Points > 0 {
		cfg.Grid.Points = step.Points
	}
	if step.KHalf > 0 {
		cfg.Grid.KHalf = step.KHalf
	}
	if step.OmegaHalf > 0 {
		cfg.Grid.OmegaHalf = step.OmegaHalf
	}
	return cfg
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		stepTime := time.Now()
		cfg := stepConfig(step)

		log.WithFields(log.Fields{
			"step":     i + 1,
			"of":       len(scenario.Steps),
			"relation": cfg.Relation,
		}).Info("Running step")

		rel, err := physics.New(cfg.Relation)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		if t, ok := rel.(bogo.Configurable); ok {
			for k, v := range step.Params {
				if err := t.SetParam(k, v); err != nil {
					return results, fmt.Errorf("step %d: %w", i+1, err)
				}
			}
		}

		a, b := cfg.GridAxes()
		field, err := eval.Grid(ctx, rel, a, b)
		if err != nil {
			return results, fmt.Errorf("step %d grid: %w", i+1, err)
		}

		fixed, value := cfg.CutSelection()
		if step.CutFixed != "" {
			fixed, value = step.CutFixed, step.CutValue
		}
		cutAxis := cfg.CutAxis(fixed)
		cut, err := eval.CutAt(ctx, rel, config.FixedAxisID(fixed), value, cutAxis.Samples)
		if err != nil {
			return results, fmt.Errorf("step %d cut: %w", i+1, err)
		}

		results = append(results, StepResult{
			Step:     step,
			Relation: rel,
			Field:    field,
			Cut:      cut,
			Summary:  analysis.Summarize(rel, field),
		})

		log.WithField("time", time.Since(stepTime)).Debug("Step finished")
	}

	return results, nil
}

// ParameterSweep evaluates summary quantities across a parameter range
type ParameterSweep struct {
	Relation  string
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Points    int
	KHalf     float64
	OmegaHalf float64
}

// SweepResult holds one sweep point's summary
type SweepResult struct {
	ParamValue float64
	Summary    analysis.Summary
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	rel, err := physics.New(sweep.Relation)
	if err != nil {
		return nil, err
	}
	tunable, ok := rel.(bogo.Configurable)
	if !ok {
		return nil, fmt.Errorf("relation %s is not configurable", sweep.Relation)
	}

	cfg := stepConfig(ScenarioStep{
		Relation:  sweep.Relation,
		Points:    sweep.Points,
		KHalf:     sweep.KHalf,
		OmegaHalf: sweep.OmegaHalf,
	})

	values := bogo.Linspace(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps)
	results := make([]SweepResult, 0, len(values))

	for i, paramVal := range values {
		if err := tunable.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		a, b := cfg.GridAxes()
		field, err := eval.Grid(ctx, rel, a, b)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Summary:    analysis.Summarize(rel, field),
		})

		log.WithFields(log.Fields{
			"point": i + 1,
			"of":    len(values),
			"value": paramVal,
		}).Debug("Sweep point")
	}

	return results, nil
}

// JitterConfig defines a shot-to-shot tolerance analysis: the named
// parameter is perturbed around its base value and the branch is read
// out at a reference wavevector.
type JitterConfig struct {
	Relation   string
	BaseParams map[string]float64
	Param      string
	Fraction   float64 // relative half-width of the perturbation
	NumTrials  int
	Seed       int64
	Kx         float64 // readout wavevector [rad/m]
}

// JitterResult holds one perturbed trial
type JitterResult struct {
	TrialID int
	Value   float64
	Omega   float64
}

// RunJitter executes multiple trials with random parameter perturbations
func RunJitter(ctx context.Context, cfg *JitterConfig) ([]JitterResult, error) {
	rel, err := physics.New(cfg.Relation)
	if err != nil {
		return nil, err
	}
	tunable, ok := rel.(bogo.Configurable)
	if !ok {
		return nil, fmt.Errorf("relation %s is not configurable", cfg.Relation)
	}
	for k, v := range cfg.BaseParams {
		if err := tunable.SetParam(k, v); err != nil {
			return nil, err
		}
	}

	base, ok := tunable.GetParams()[cfg.Param]
	if !ok {
		return nil, fmt.Errorf("unknown param: %s", cfg.Param)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]JitterResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		value := base * (1 + (rng.Float64()-0.5)*2*cfg.Fraction)
		if err := tunable.SetParam(cfg.Param, value); err != nil {
			return results, err
		}
		if err := rel.Validate(); err != nil {
			continue
		}

		results = append(results, JitterResult{
			TrialID: trial,
			Value:   value,
			Omega:   rel.Omega(cfg.Kx, 0),
		})
	}

	return results, nil
}

// JitterStats summarizes the readout spread across trials
func JitterStats(results []JitterResult) (mean, min, max float64) {
	if len(results) == 0 {
		return 0, 0, 0
	}
	min, max = math.Inf(1), math.Inf(-1)
	for _, r := range results {
		mean += r.Omega
		if r.Omega < min {
			min = r.Omega
		}
		if r.Omega > max {
			max = r.Omega
		}
	}
	mean /= float64(len(results))
	return mean, min, max
}
