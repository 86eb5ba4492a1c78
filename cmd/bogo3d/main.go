package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quentinglorieux/Bogo3D/internal/analysis"
	"github.com/quentinglorieux/Bogo3D/internal/automation"
	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/config"
	"github.com/quentinglorieux/Bogo3D/internal/eval"
	"github.com/quentinglorieux/Bogo3D/internal/experiment"
	"github.com/quentinglorieux/Bogo3D/internal/export"
	"github.com/quentinglorieux/Bogo3D/internal/optim"
	"github.com/quentinglorieux/Bogo3D/internal/physics"
	"github.com/quentinglorieux/Bogo3D/internal/storage"
	"github.com/quentinglorieux/Bogo3D/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	// Physics parameters
	relationFlag string
	lambda0      float64
	dn           float64
	d0           float64
	// Grid shape
	points    int
	kHalf     float64
	omegaHalf float64
	workers   int
	// Cut placement
	cutFixed string
	cutValue float64
	// Output
	outPath    string
	csvPath    string
	format     string
	themeName  string
	termRender bool
	// Fit parameters
	fitParam string
	fitMin   float64
	fitMax   float64
	fitSteps int
	// Sweep parameters
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	// Jitter parameters
	jitterParam    string
	jitterFraction float64
	jitterTrials   int
	jitterSeed     int64
	jitterKx       float64
)

// main registers the bogo3d commands; with no subcommand it launches
// the interactive workbench.
func main() {
	rootCmd := &cobra.Command{
		Use:   "bogo3d [relation]",
		Short: "Bogoliubov dispersion workbench for fluids of light",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWorkbench,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bogo3d", "scan run directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	}
	addEvalFlags(rootCmd)
	rootCmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme")

	tuiCmd := &cobra.Command{
		Use:   "tui [relation]",
		Short: "interactive terminal workbench",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWorkbench,
	}
	addEvalFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme")

	surfaceCmd := &cobra.Command{
		Use:   "surface [relation]",
		Short: "render the dispersion surface to an HTML chart",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSurface,
	}
	addEvalFlags(surfaceCmd)
	surfaceCmd.Flags().StringVar(&outPath, "out", "", "output path (default <figures>/<relation>_surface.html)")
	surfaceCmd.Flags().BoolVar(&termRender, "term", false, "draw in the terminal instead of writing a file")

	cutCmd := &cobra.Command{
		Use:   "cut [relation]",
		Short: "render a dispersion cut to an HTML chart",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderCut,
	}
	addEvalFlags(cutCmd)
	cutCmd.Flags().StringVar(&outPath, "out", "", "output path (default <figures>/<relation>_cut.html)")
	cutCmd.Flags().StringVar(&csvPath, "csv", "", "also write the cut as CSV")
	cutCmd.Flags().BoolVar(&termRender, "term", false, "draw in the terminal instead of writing a file")

	exportCmd := &cobra.Command{
		Use:   "export [relation]",
		Short: "export the evaluated surface as JSON, CSV or SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportField,
	}
	addEvalFlags(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "json", "output format: json, csv or svg")
	exportCmd.Flags().StringVar(&outPath, "out", "", "output path (default stdout for json)")

	scanCmd := &cobra.Command{
		Use:   "scan [name]",
		Short: "run a named parameter scan and store the results",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	addEvalFlags(scanCmd)

	scansCmd := &cobra.Command{
		Use:   "scans",
		Short: "list available scans",
		RunE:  listScans,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored scan runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored scan curves",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	fitCmd := &cobra.Command{
		Use:   "fit [data.csv]",
		Short: "fit a relation parameter to measured dispersion points",
		Args:  cobra.ExactArgs(1),
		RunE:  runFit,
	}
	addEvalFlags(fitCmd)
	fitCmd.Flags().StringVar(&fitParam, "param", "dn", "parameter to fit")
	fitCmd.Flags().Float64Var(&fitMin, "min", 0.1e-5, "search range minimum")
	fitCmd.Flags().Float64Var(&fitMax, "max", 10e-5, "search range maximum")
	fitCmd.Flags().IntVar(&fitSteps, "steps", 40, "search grid resolution")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scenario of evaluation steps",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [relation]",
		Short: "sweep one parameter and summarize each point",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addEvalFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dn", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.1e-5, "sweep minimum")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10e-5, "sweep maximum")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "sweep points")

	jitterCmd := &cobra.Command{
		Use:   "jitter [relation]",
		Short: "propagate shot-to-shot parameter jitter to the dispersion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runJitter,
	}
	addEvalFlags(jitterCmd)
	jitterCmd.Flags().StringVar(&jitterParam, "param", "dn", "parameter to jitter")
	jitterCmd.Flags().Float64Var(&jitterFraction, "fraction", 0.05, "relative jitter amplitude")
	jitterCmd.Flags().IntVar(&jitterTrials, "trials", 200, "number of trials")
	jitterCmd.Flags().Int64Var(&jitterSeed, "seed", 0, "random seed (0 = time)")
	jitterCmd.Flags().Float64Var(&jitterKx, "kx", config.DefaultKxCut, "probe wavevector [rad/m]")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	rootCmd.AddCommand(tuiCmd, surfaceCmd, cutCmd, exportCmd, scanCmd, scansCmd, runsCmd, showCmd, plotCmd, fitCmd, batchCmd, sweepCmd, jitterCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEvalFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&relationFlag, "relation", "spatial", "dispersion relation")
	cmd.Flags().Float64Var(&lambda0, "lambda0", config.DefaultLambda0, "vacuum wavelength [m]")
	cmd.Flags().Float64Var(&dn, "dn", config.DefaultDn, "nonlinear index shift")
	cmd.Flags().Float64Var(&d0, "d0", config.DefaultD0, "group-velocity dispersion [s²/m]")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "samples per axis")
	cmd.Flags().Float64Var(&kHalf, "k-half", config.DefaultKHalf, "wavevector half-span [rad/m]")
	cmd.Flags().Float64Var(&omegaHalf, "omega-half", config.DefaultOmegaHalf, "Δω half-span [MHz]")
	cmd.Flags().StringVar(&cutFixed, "cut", "", "held cut axis: kx, ky, domega or k")
	cmd.Flags().Float64Var(&cutValue, "cut-value", config.DefaultKxCut, "held axis value")
	cmd.Flags().IntVar(&workers, "workers", 0, "evaluation workers (0 = all cores)")
}

// buildConfig layers preset, config file and command flags, in that
// order of precedence (last wins).
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("relation") {
		cfg.Relation = relationFlag
	}
	if flags.Changed("lambda0") {
		cfg.Physics.Lambda0 = lambda0
	}
	if flags.Changed("dn") {
		cfg.Physics.Dn = dn
	}
	if flags.Changed("d0") {
		cfg.Physics.D0 = d0
	}
	if flags.Changed("points") {
		cfg.Grid.Points = points
	}
	if flags.Changed("k-half") {
		cfg.Grid.KHalf = kHalf
	}
	if flags.Changed("omega-half") {
		cfg.Grid.OmegaHalf = omegaHalf
	}
	if flags.Changed("theme") {
		cfg.Display.Theme = themeName
	}
	if flags.Changed("cut") {
		cfg.Cut.Fixed = cutFixed
	}
	if flags.Changed("cut-value") {
		switch cfg.Cut.Fixed {
		case "domega":
			cfg.Cut.Domega = cutValue
		case "k":
			cfg.Cut.K = cutValue
		default:
			cfg.Cut.Kx = cutValue
		}
	}

	return cfg, nil
}

func buildRelation(cfg *config.Config) (bogo.Relation, error) {
	rel, err := physics.New(cfg.Relation)
	if err != nil {
		return nil, err
	}
	if t, ok := rel.(bogo.Configurable); ok {
		for name, v := range cfg.RelationParams() {
			if err := t.SetParam(name, v); err != nil {
				return nil, err
			}
		}
	}
	return rel, nil
}

func evaluateField(cfg *config.Config) (bogo.Relation, *bogo.Field, error) {
	rel, err := buildRelation(cfg)
	if err != nil {
		return nil, nil, err
	}

	e := eval.New(rel)
	if workers > 0 {
		e.SetWorkers(workers)
	}

	a, b := cfg.GridAxes()
	field, err := e.Grid(context.Background(), a, b)
	if err != nil {
		return nil, nil, err
	}
	return rel, field, nil
}

func evaluateCut(cfg *config.Config) (bogo.Relation, *bogo.Cut, error) {
	rel, err := buildRelation(cfg)
	if err != nil {
		return nil, nil, err
	}

	fixedName, fixedValue := cfg.CutSelection()
	axis := cfg.CutAxis(fixedName)

	cut, err := eval.CutAt(context.Background(), rel, config.FixedAxisID(fixedName), fixedValue, axis.Samples)
	if err != nil {
		return nil, nil, err
	}
	return rel, cut, nil
}

func figurePath(cfg *config.Config, name string) (string, error) {
	if outPath != "" {
		return outPath, nil
	}
	if err := os.MkdirAll(cfg.Export.Dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(cfg.Export.Dir, name), nil
}

func runWorkbench(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Relation = args[0]
	}

	viz.SetTheme(cfg.Display.Theme)

	hook := func(c *viz.Canvas) error {
		if err := os.MkdirAll(cfg.Export.Dir, 0755); err != nil {
			return err
		}
		path := filepath.Join(cfg.Export.Dir, fmt.Sprintf("workbench_%d.svg", time.Now().Unix()))
		return os.WriteFile(path, []byte(export.CanvasToSVG(c, 4)), 0644)
	}

	return viz.RunInteractive(cfg, hook)
}

func renderSurface(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Relation = args[0]
	}

	rel, field, err := evaluateField(cfg)
	if err != nil {
		return err
	}

	if termRender {
		return printSurface(cfg, rel, field)
	}

	out, err := figurePath(cfg, cfg.Relation+"_surface.html")
	if err != nil {
		return err
	}
	return export.WriteSurfaceHTML(out, rel, field)
}

// printSurface draws one static wireframe frame to stdout.
func printSurface(cfg *config.Config, rel bogo.Relation, field *bogo.Field) error {
	cam := viz.NewCamera()
	cam.Position = viz.Vec3{X: 0, Y: 0, Z: 5}
	cam.RotX = -0.7
	cam.RotY = 0.6

	canvas := viz.NewCanvas(80, 24)
	viz.Render3D(canvas, viz.CreateAxesWireframe(1.2), cam)
	viz.Render3D(canvas, viz.SurfaceWireframe(field, cfg.Display.SurfaceStep), cam)
	fmt.Print(canvas.String())

	s := analysis.Summarize(rel, field)
	if s.HealingK != 0 {
		fmt.Printf("\nk_xi = %.0f mm⁻¹   c_s = %.4g   peak Ω = %.4g\n", s.HealingK, s.SoundSpeed, s.PeakOmega)
	} else {
		fmt.Printf("\npeak ω = %.4g   max shift = %.4g\n", s.PeakOmega, s.MaxShift)
	}
	return nil
}

func renderCut(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Relation = args[0]
	}

	rel, cut, err := evaluateCut(cfg)
	if err != nil {
		return err
	}

	if termRender {
		graph := asciigraph.PlotMany(
			[][]float64{cut.Free, cut.Omega},
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s cut at %s = %g (free below, interacting above)",
				cfg.Relation, cut.Fixed, cut.FixedValue*cut.Fixed.DisplayScale())),
		)
		fmt.Println(graph)
		if csvPath != "" {
			return export.WriteCutCSV(csvPath, cut)
		}
		return nil
	}

	out, err := figurePath(cfg, cfg.Relation+"_cut.html")
	if err != nil {
		return err
	}
	if err := export.WriteCutHTML(out, rel, cut); err != nil {
		return err
	}

	if csvPath != "" {
		return export.WriteCutCSV(csvPath, cut)
	}
	return nil
}

func exportField(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Relation = args[0]
	}

	rel, field, err := evaluateField(cfg)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		if outPath == "" {
			return export.ExportJSONStdout(rel, field)
		}
		return export.ExportJSON(outPath, rel, field)
	case "csv":
		out := outPath
		if out == "" {
			out = cfg.Relation + ".csv"
		}
		return export.WriteFieldCSV(out, field)
	case "svg":
		_, cut, err := evaluateCut(cfg)
		if err != nil {
			return err
		}
		out := outPath
		if out == "" {
			out = cfg.Relation + "_cut.svg"
		}
		return os.WriteFile(out, []byte(export.CutToSVG(cut, 960, 600)), 0644)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	name := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	spec, err := registry.Get(name)
	if err != nil {
		return err
	}

	// d0 and Δω only exist on the spatio-temporal branch
	if !cmd.Flags().Changed("relation") {
		switch name {
		case "d0-scan", "domega-scan":
			cfg.Relation = "temporal"
		}
	}

	fixedName, fixedValue := cfg.CutSelection()
	if spec.Param == experiment.CutParam {
		// cut scans hold the axis the registry names, not the
		// configured cut axis
		fixedName = spec.Axis.String()
	}
	axis := cfg.CutAxis(fixedName)

	exp := experiment.New(experiment.Config{
		Scan:       name,
		Relation:   cfg.Relation,
		BaseParams: cfg.RelationParams(),
		Spec:       spec,
		Fixed:      config.FixedAxisID(fixedName),
		FixedValue: fixedValue,
		Samples:    axis.Samples,
	})
	if err := exp.Setup(); err != nil {
		return err
	}

	fmt.Printf("running %s on %s...\n", name, cfg.Relation)
	start := time.Now()

	cuts, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	a, b := cfg.GridAxes()
	field, err := eval.Grid(context.Background(), exp.Relations()[0], a, b)
	if err != nil {
		return err
	}
	summary := analysis.Summarize(exp.Relations()[0], field)

	root := cfg.Export.DataDir
	if cmd.Flag("data").Changed {
		root = dataDir
	}
	st := storage.New(root)
	if err := st.Init(); err != nil {
		return err
	}

	runID, err := st.Save(name, cfg.Relation, spec.Param, spec.Values, cuts, summary.ToMap())
	if err != nil {
		return err
	}

	labels := make([]string, len(cuts))
	fixedID := config.FixedAxisID(fixedName)
	for i, v := range spec.Values {
		if spec.Param == experiment.CutParam {
			labels[i] = fmt.Sprintf("%s = %g", fixedID, v*fixedID.DisplayScale())
		} else {
			labels[i] = fmt.Sprintf("%s = %g", spec.Param, v)
		}
	}
	if err := os.MkdirAll(cfg.Export.Dir, 0755); err != nil {
		return err
	}
	chartPath := filepath.Join(cfg.Export.Dir, runID+".html")
	if err := export.WriteScanHTML(chartPath, exp.Relations()[0], "scan: "+name, labels, cuts); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("chart: %s\n", chartPath)
	fmt.Println("\ncuts:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tPEAK\tSHIFT")
	for i, c := range cuts {
		fmt.Fprintf(w, "%g\t%.4g\t%.4g\n", spec.Values[i], cutPeak(c), cutShift(c))
	}
	return w.Flush()
}

func cutPeak(c *bogo.Cut) float64 {
	peak := 0.0
	for _, v := range c.Omega {
		if v > peak {
			peak = v
		}
	}
	return peak
}

func cutShift(c *bogo.Cut) float64 {
	shift := 0.0
	for i, v := range c.Omega {
		if d := v - c.Free[i]; d > shift {
			shift = d
		}
	}
	return shift
}

func listScans(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	names := registry.List()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARAM\tPOINTS\tDESCRIPTION")
	for _, name := range names {
		spec, err := registry.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, spec.Param, len(spec.Values), spec.Desc)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCAN\tRELATION\tTIME\tFIXED\tPARAM\tVALUES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s=%g\t%s\t%d\n",
			run.ID,
			run.Scan,
			run.Relation,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Fixed,
			run.FixedValue,
			run.Param,
			len(run.Values),
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, curves, err := st.LoadCurves(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 || len(curves) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scan: %s on %s\n", meta.Scan, meta.Relation)
	fmt.Printf("samples: %d\n\n", len(samples))

	// omega columns first, then free columns
	numOmega := len(curves) / 2
	maxPlots := 6
	if numOmega > maxPlots {
		numOmega = maxPlots
	}

	for i := 0; i < numOmega; i++ {
		caption := fmt.Sprintf("omega (%s = %g)", meta.Param, meta.Values[i])
		if meta.Param == experiment.CutParam {
			caption = fmt.Sprintf("omega at %s = %g", meta.Fixed, meta.Values[i])
		}

		graph := asciigraph.Plot(curves[i],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	samples, err := optim.ReadSamples(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("fitting %s on %s against %d samples...\n", fitParam, cfg.Relation, len(samples))
	start := time.Now()

	result, err := optim.Fit(
		context.Background(),
		cfg.Relation,
		cfg.RelationParams(),
		samples,
		[]string{fitParam},
		[][]float64{bogo.Linspace(fitMin, fitMax, fitSteps)},
	)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	for name, v := range result.Params {
		fmt.Printf("  %s: %g\n", name, v)
	}
	fmt.Printf("\nloss: %.6g\n", result.Loss)

	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Println(scenario.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(context.Background(), scenario)
	if err != nil {
		return err
	}

	for _, r := range results {
		if r.Step.SaveAs == "" {
			continue
		}
		if err := saveStep(r); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRELATION\tPEAK\tSHIFT\tPHONON")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%.4g\t%.4g\t%.0f%%\n",
			i+1, r.Relation.Name(), r.Summary.PeakOmega, r.Summary.MaxShift, r.Summary.PhononFrac*100)
	}
	return w.Flush()
}

func saveStep(r automation.StepResult) error {
	switch {
	case strings.HasSuffix(r.Step.SaveAs, ".html"):
		return export.WriteSurfaceHTML(r.Step.SaveAs, r.Relation, r.Field)
	case strings.HasSuffix(r.Step.SaveAs, ".json"):
		return export.ExportJSON(r.Step.SaveAs, r.Relation, r.Field)
	case strings.HasSuffix(r.Step.SaveAs, ".csv"):
		return export.WriteFieldCSV(r.Step.SaveAs, r.Field)
	}
	return fmt.Errorf("unknown export format: %s", r.Step.SaveAs)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Relation = args[0]
	}

	sweep := &automation.ParameterSweep{
		Relation:  cfg.Relation,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Points:    cfg.Grid.Points,
		KHalf:     cfg.Grid.KHalf,
		OmegaHalf: cfg.Grid.OmegaHalf,
	}

	results, err := automation.RunSweep(context.Background(), sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tPEAK\tSHIFT\tPHONON")
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.4g\t%.4g\t%.0f%%\n",
			r.ParamValue, r.Summary.PeakOmega, r.Summary.MaxShift, r.Summary.PhononFrac*100)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	shifts := make([]float64, len(results))
	for i, r := range results {
		shifts[i] = r.Summary.MaxShift
	}

	fmt.Println()
	graph := asciigraph.Plot(shifts,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("max shift vs %s", sweepParam)),
	)
	fmt.Println(graph)

	return nil
}

func runJitter(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Relation = args[0]
	}

	jc := &automation.JitterConfig{
		Relation:   cfg.Relation,
		BaseParams: cfg.RelationParams(),
		Param:      jitterParam,
		Fraction:   jitterFraction,
		NumTrials:  jitterTrials,
		Seed:       jitterSeed,
		Kx:         jitterKx,
	}

	results, err := automation.RunJitter(context.Background(), jc)
	if err != nil {
		return err
	}

	mean, min, max := automation.JitterStats(results)

	fmt.Printf("jitter on %s (%s ± %.0f%%), %d trials\n\n", cfg.Relation, jitterParam, jitterFraction*100, len(results))
	fmt.Printf("omega at kx=%g:\n", jitterKx)
	fmt.Printf("  mean: %.6g\n", mean)
	fmt.Printf("  min:  %.6g\n", min)
	fmt.Printf("  max:  %.6g\n", max)
	if mean != 0 {
		fmt.Printf("  spread: %.2f%%\n", (max-min)/mean*100)
	}

	return nil
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		names := config.ListPresets()
		sort.Strings(names)
		fmt.Println("presets:")
		for _, name := range names {
			fmt.Printf("  %s (%s)\n", name, config.Presets[name].Relation)
		}
		return nil
	}

	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
