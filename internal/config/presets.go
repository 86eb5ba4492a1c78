package config

// Presets are the named parameter sets matching the workbench's usual
// operating points. Values mirror the lab defaults for each geometry.
var Presets = map[string]*Config{
	"paraxial": {
		Relation: "spatial",
		Physics:  PhysicsConfig{Lambda0: 780e-9, Dn: 1e-5, D0: 10e-15, Hbar: 1, Mass: 1, G: 1, Density: 1},
		Grid:     GridConfig{Points: 100, KHalf: 80e3, OmegaHalf: 150.0},
		Cut:      CutConfig{Fixed: "kx", Kx: 10e3, Domega: 0.0, K: 0.2},
		Display:  DisplayConfig{Theme: DefaultTheme, SurfaceStep: 4},
		Export:   ExportConfig{Dir: "figures", DataDir: ".bogo3d"},
	},
	"shiny": {
		Relation: "spatial",
		Physics:  PhysicsConfig{Lambda0: 800e-9, Dn: 1e-5, D0: 10e-15, Hbar: 1, Mass: 1, G: 1, Density: 1},
		Grid:     GridConfig{Points: 100, KHalf: 80e3, OmegaHalf: 150.0},
		Cut:      CutConfig{Fixed: "kx", Kx: 10e3, Domega: 0.0, K: 0.2},
		Display:  DisplayConfig{Theme: DefaultTheme, SurfaceStep: 4},
		Export:   ExportConfig{Dir: "figures", DataDir: ".bogo3d"},
	},
	"omega": {
		Relation: "temporal",
		Physics:  PhysicsConfig{Lambda0: 780e-9, Dn: 1e-5, D0: 10e-15, Hbar: 1, Mass: 1, G: 1, Density: 1},
		Grid:     GridConfig{Points: 100, KHalf: 70e3, OmegaHalf: 150.0},
		Cut:      CutConfig{Fixed: "kx", Kx: 10e3, Domega: 0.0, K: 0.2},
		Display:  DisplayConfig{Theme: DefaultTheme, SurfaceStep: 4},
		Export:   ExportConfig{Dir: "figures", DataDir: ".bogo3d"},
	},
	"condensate": {
		Relation: "condensate",
		Physics:  PhysicsConfig{Lambda0: 780e-9, Dn: 1e-5, D0: 10e-15, Hbar: 1, Mass: 1, G: 1, Density: 1},
		Grid:     GridConfig{Points: 100, KHalf: 3.0, OmegaHalf: 150.0},
		Cut:      CutConfig{Fixed: "k", Kx: 10e3, Domega: 0.0, K: 0.2},
		Display:  DisplayConfig{Theme: DefaultTheme, SurfaceStep: 4},
		Export:   ExportConfig{Dir: "figures", DataDir: ".bogo3d"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
