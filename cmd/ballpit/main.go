package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/ballpit/internal/automation"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/export"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/storage"
	"github.com/san-kum/ballpit/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	numBodies  int
	radiusMin  float64
	radiusMax  float64
	speedMin   float64
	speedMax   float64
	width      float64
	height     float64
	visuals    int
	seed       int64
	steps      int
	// live view
	frameRate int
	theme     string
	record    string
	// run
	metricNames []string
	runName     string
	noSave      bool
	// snapshot
	outPath    string
	withTrails bool
	braille    bool
	// bench
	benchRuns  int
	benchSteps int
	// sweep
	sweepMin float64
	sweepMax float64
	sweepN   int
	// montecarlo
	trials int
	// config init
	force bool
)

var clockSeed = func() int64 { return time.Now().UnixNano() }

func main() {
	log.SetFlags(0)
	log.SetPrefix("ballpit: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ballpit",
		Short:        "bouncing bodies in a box",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunPicker(clockSeed())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", storage.DefaultDir, "data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate for live view")
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	liveCmd.Flags().StringVar(&record, "record", "", "GIF path used by the record key")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and save the samples",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to attach (default all)")
	runCmd.Flags().StringVar(&runName, "name", "ballpit", "run name")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print metrics without saving")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run samples",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run samples as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run metadata and samples as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the body set after some ticks as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addWorldFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().BoolVar(&withTrails, "trails", false, "draw center trails instead of bodies")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "draw the terminal canvas dot by dot")
	snapshotCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second across body counts",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "concurrent runs per body count")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 1000, "ticks per run")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: fmt.Sprintf("sweep one parameter %v", automation.SweepParams),
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 5, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 50, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run many seeds and count contained runs",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addWorldFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of seeds")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "write or inspect config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a config file from a preset and flags",
		Args:  cobra.ExactArgs(1),
		RunE:  configInit,
	}
	addWorldFlags(configInitCmd)
	configInitCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate for live view")
	configInitCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configShowCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "print a config file with defaults filled in",
		Args:  cobra.ExactArgs(1),
		RunE:  configShow,
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, snapshotCmd, presetsCmd, benchCmd, scenarioCmd, sweepCmd, monteCarloCmd, configCmd)
	return rootCmd
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg.World())
	if err != nil {
		return err
	}
	if record != "" {
		viz.RecordPath = record
	}

	return viz.RunLive(s, cfg.World(), viz.Options{FPS: cfg.FPS, Theme: cfg.Theme})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	world := cfg.World()

	exp := experiment.New(experiment.Config{
		Name:    runName,
		World:   world,
		Steps:   cfg.Steps,
		Metrics: metricNames,
	})
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}
	exp.GetSimulator().AddObserver(&progress{out: os.Stdout, total: cfg.Steps})

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d bodies for %d ticks (seed %d)...\n", world.BodyCount, cfg.Steps, world.Seed)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	if noSave {
		log.Printf("--no-save set, run not stored")
	} else {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(runName, world, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("ticks: %d\n", result.Ticks)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	fmt.Println("\nmetrics:")
	for _, name := range experiment.NewRegistry().ListMetrics() {
		if val, ok := result.Metrics[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}

	return nil
}

// progress prints a line every tenth of a headless run.
type progress struct {
	out   io.Writer
	total int
}

func (p *progress) OnStep(f dynamo.Frame) {
	every := max(p.total/10, 1)
	if f.Tick%every == 0 {
		fmt.Fprintf(p.out, "  tick %d/%d  contacts %d  wall hits %d\n", f.Tick, p.total, f.Contacts, f.WallHits)
	}
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tSTEPS\tSEED\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%.2e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Steps,
			run.Seed,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d\n", meta.Bodies)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(dynamo.Sample) float64
	}{
		{"kinetic energy", func(s dynamo.Sample) float64 { return s.KineticEnergy }},
		{"contacts", func(s dynamo.Sample) float64 { return float64(s.Contacts) }},
		{"max overlap", func(s dynamo.Sample) float64 { return s.MaxOverlap }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.WriteSamples(os.Stdout, samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportRun(os.Stdout, args[0])
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg.World())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := s.Run(ctx, sim.RunConfig{Steps: cfg.Steps, RecordTrails: withTrails, ValidateState: true})
	if err != nil {
		return err
	}

	th := viz.GetTheme(cfg.Theme)
	palette := export.ThemePalette(th)
	var svg string
	switch {
	case withTrails:
		svg = export.TrailsToSVG(result.Trails, s.Viewport(), palette)
	case braille:
		canvas := viz.NewCanvas(80, 24)
		viz.DrawBodies(canvas, result.Final, s.Viewport(), th, true)
		svg = export.CanvasToSVG(canvas, 4, palette)
	default:
		svg = export.FrameToSVG(result.Final, s.Viewport(), palette)
	}

	if outPath == "" {
		_, err := io.WriteString(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s after %d ticks\n", outPath, result.Ticks)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tRADIUS\tSPEED\tVIEWPORT\tSTEPS\tTHEME")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%g-%g\t%g-%g\t%gx%g\t%d\t%s\n",
			name,
			p.Bodies,
			p.Radius.Min, p.Radius.Max,
			p.Speed.Min, p.Speed.Max,
			p.Viewport.Width, p.Viewport.Height,
			p.Steps,
			p.Theme,
		)
	}

	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	counts := []int{5, 15, 50, 100}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %d runs of %d ticks per body count\n\n", benchRuns, benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tRUNS\tTICKS\tTIME\tTICKS/SEC\tCONTACTS/TICK")

	for _, n := range counts {
		world := dynamo.DefaultConfig()
		world.BodyCount = n
		world.RadiusMin, world.RadiusMax = 10, 20

		ens := sim.NewEnsemble(world, benchRuns, 42)
		start := time.Now()
		results, err := ens.Run(ctx, sim.RunConfig{Steps: benchSteps})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		ticks, contacts := 0, 0
		for _, r := range results {
			ticks += r.Ticks
			for _, s := range r.Samples {
				contacts += s.Contacts
			}
		}
		perTick := 0.0
		if ticks > 0 {
			perTick = float64(contacts) / float64(ticks)
		}

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\t%.2f\n",
			n, benchRuns, ticks, elapsed.Round(time.Millisecond), float64(ticks)/elapsed.Seconds(), perTick)
	}

	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	fmt.Println()

	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry(), st)
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tBODIES\tTICKS\tCONTACTS\tOVERLAP\tDRIFT\tRUN")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.3f\t%.2e\t%s\n",
			r.Name,
			r.World.BodyCount,
			r.Result.Ticks,
			r.Result.Metrics["contacts"],
			r.Result.Metrics["overlap"],
			r.Result.EnergyDrift,
			runID,
		)
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Base:      cfg.World(),
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepN,
		Ticks:     cfg.Steps,
	}

	results, err := automation.RunSweep(ctx, sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCONTACTS\tOVERLAP\tDRIFT\tCONTAINED\n", args[0])
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.2f\t%.3f\t%.2e\t%.3f\n",
			r.ParamValue, r.Contacts, r.Overlap, r.EnergyDrift, r.Containment)
	}

	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	world := cfg.World()
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		World:     world,
		NumTrials: trials,
		Ticks:     cfg.Steps,
		Seed:      world.Seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := 0.0
	for _, r := range results {
		if r.Overlap > worst {
			worst = r.Overlap
		}
	}

	fmt.Printf("trials: %d (seeds %d..%d)\n", len(results), world.Seed, world.Seed+int64(len(results))-1)
	fmt.Printf("contained: %d\n", stable)
	fmt.Printf("escaped: %d\n", unstable)
	fmt.Printf("worst overlap: %.3f\n", worst)
	return nil
}

func configInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := layerConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.World().Validate(); err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func configShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	seedText := "clock"
	if cfg.Seed != 0 {
		seedText = fmt.Sprintf("%d", cfg.Seed)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "bodies\t%d\n", cfg.Bodies)
	fmt.Fprintf(w, "radius\t%g-%g\n", cfg.Radius.Min, cfg.Radius.Max)
	fmt.Fprintf(w, "speed\t%g-%g\n", cfg.Speed.Min, cfg.Speed.Max)
	fmt.Fprintf(w, "viewport\t%gx%g\n", cfg.Viewport.Width, cfg.Viewport.Height)
	fmt.Fprintf(w, "visuals\t%d\n", cfg.Visuals)
	fmt.Fprintf(w, "seed\t%s\n", seedText)
	fmt.Fprintf(w, "steps\t%d\n", cfg.Steps)
	fmt.Fprintf(w, "fps\t%d\n", cfg.FPS)
	fmt.Fprintf(w, "theme\t%s\n", cfg.Theme)
	if err := w.Flush(); err != nil {
		return err
	}

	return cfg.World().Validate()
}
