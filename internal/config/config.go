package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
)

const (
	DefaultLambda0   = 780e-9
	DefaultDn        = 1e-5
	DefaultD0        = 10e-15
	DefaultPoints    = 100
	DefaultKHalf     = 80e3
	DefaultOmegaHalf = 150.0
	DefaultKxCut     = 10e3
	DefaultTheme     = "cyberpunk"
)

type Config struct {
	Relation string        `yaml:"relation"`
	Physics  PhysicsConfig `yaml:"physics"`
	Grid     GridConfig    `yaml:"grid"`
	Cut      CutConfig     `yaml:"cut"`
	Display  DisplayConfig `yaml:"display"`
	Export   ExportConfig  `yaml:"export"`
}

type PhysicsConfig struct {
	Lambda0 float64 `yaml:"lambda0"` // vacuum wavelength [m]
	Dn      float64 `yaml:"dn"`      // nonlinear index shift
	D0      float64 `yaml:"d0"`      // group-velocity dispersion [s²/m]
	Hbar    float64 `yaml:"hbar"`    // condensate units
	Mass    float64 `yaml:"mass"`
	G       float64 `yaml:"g"`
	Density float64 `yaml:"density"`
}

type GridConfig struct {
	Points    int     `yaml:"points"`     // samples per axis
	KHalf     float64 `yaml:"k_half"`     // wavevector axes span ±k_half [rad/m]
	OmegaHalf float64 `yaml:"omega_half"` // Δω axis spans ±omega_half [MHz]
}

type CutConfig struct {
	Fixed  string  `yaml:"fixed"`  // held axis: kx | domega | k
	Kx     float64 `yaml:"kx"`     // fixed kx [rad/m]
	Domega float64 `yaml:"domega"` // fixed Δω [MHz]
	K      float64 `yaml:"k"`      // fixed k, condensate units
}

type DisplayConfig struct {
	Theme       string `yaml:"theme"`
	SurfaceStep int    `yaml:"surface_step"` // grid decimation for the terminal wireframe
}

type ExportConfig struct {
	Dir     string `yaml:"dir"`      // figure output directory
	DataDir string `yaml:"data_dir"` // scan-run store root
}

func DefaultConfig() *Config {
	return &Config{
		Relation: "spatial",
		Physics: PhysicsConfig{
			Lambda0: DefaultLambda0,
			Dn:      DefaultDn,
			D0:      DefaultD0,
			Hbar:    1.0,
			Mass:    1.0,
			G:       1.0,
			Density: 1.0,
		},
		Grid: GridConfig{
			Points:    DefaultPoints,
			KHalf:     DefaultKHalf,
			OmegaHalf: DefaultOmegaHalf,
		},
		Cut: CutConfig{
			Fixed:  "kx",
			Kx:     DefaultKxCut,
			Domega: 0.0,
			K:      0.2,
		},
		Display: DisplayConfig{
			Theme:       DefaultTheme,
			SurfaceStep: 4,
		},
		Export: ExportConfig{
			Dir:     "figures",
			DataDir: ".bogo3d",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RelationParams returns the parameter values the configured relation
// understands, keyed the way SetParam expects them.
func (c *Config) RelationParams() map[string]float64 {
	switch c.Relation {
	case "condensate":
		return map[string]float64{
			"hbar":    c.Physics.Hbar,
			"mass":    c.Physics.Mass,
			"g":       c.Physics.G,
			"density": c.Physics.Density,
		}
	case "temporal":
		return map[string]float64{
			"lambda0": c.Physics.Lambda0,
			"dn":      c.Physics.Dn,
			"d0":      c.Physics.D0,
		}
	default:
		return map[string]float64{
			"lambda0": c.Physics.Lambda0,
			"dn":      c.Physics.Dn,
		}
	}
}

// GridAxes builds the two evaluation axes for the configured relation.
func (c *Config) GridAxes() (bogo.Axis, bogo.Axis) {
	n := c.Grid.Points
	switch c.Relation {
	case "temporal":
		return bogo.NewAxis(bogo.AxisKx, -c.Grid.KHalf, c.Grid.KHalf, n),
			bogo.NewAxis(bogo.AxisDeltaOmega, -c.Grid.OmegaHalf, c.Grid.OmegaHalf, n)
	case "condensate":
		return bogo.NewAxis(bogo.AxisK, -c.Grid.KHalf, c.Grid.KHalf, n),
			bogo.NewAxis(bogo.AxisK, -c.Grid.KHalf, c.Grid.KHalf, n)
	default:
		return bogo.NewAxis(bogo.AxisKx, -c.Grid.KHalf, c.Grid.KHalf, n),
			bogo.NewAxis(bogo.AxisKy, -c.Grid.KHalf, c.Grid.KHalf, n)
	}
}

// CutAxis builds the varying axis for a cut through the configured
// relation, given which axis is held fixed.
func (c *Config) CutAxis(fixed string) bogo.Axis {
	n := c.Grid.Points
	switch c.Relation {
	case "temporal":
		if fixed == "kx" {
			return bogo.NewAxis(bogo.AxisDeltaOmega, -c.Grid.OmegaHalf, c.Grid.OmegaHalf, n)
		}
		return bogo.NewAxis(bogo.AxisKx, -c.Grid.KHalf, c.Grid.KHalf, n)
	case "condensate":
		return bogo.NewAxis(bogo.AxisK, -c.Grid.KHalf, c.Grid.KHalf, n)
	default:
		if fixed == "kx" {
			return bogo.NewAxis(bogo.AxisKy, -c.Grid.KHalf, c.Grid.KHalf, n)
		}
		return bogo.NewAxis(bogo.AxisKx, -c.Grid.KHalf, c.Grid.KHalf, n)
	}
}

// FixedAxisID maps a held-axis name to its identifier.
func FixedAxisID(name string) bogo.AxisID {
	switch name {
	case "domega":
		return bogo.AxisDeltaOmega
	case "k":
		return bogo.AxisK
	case "ky":
		return bogo.AxisKy
	default:
		return bogo.AxisKx
	}
}

// CutSelection returns the held axis name and its value for the
// configured relation.
func (c *Config) CutSelection() (string, float64) {
	switch c.Cut.Fixed {
	case "domega":
		return "domega", c.Cut.Domega
	case "k":
		return "k", c.Cut.K
	default:
		if c.Relation == "condensate" {
			return "k", c.Cut.K
		}
		return "kx", c.Cut.Kx
	}
}
