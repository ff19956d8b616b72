package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/yeesim/internal/analysis"
	"github.com/san-kum/yeesim/internal/config"
	"github.com/san-kum/yeesim/internal/experiment"
	"github.com/san-kum/yeesim/internal/export"
	"github.com/san-kum/yeesim/internal/storage"
	"github.com/san-kum/yeesim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	// scenario sources and overrides
	configFile string
	preset     string
	areaSize   float64
	spaceStep  float64
	duration   float64
	courant    float64
	left       string
	right      string
	// live view
	frameRate int
	saveLive  bool
	// sweep
	sweepSc   []float64
	saveSweep bool
	// export
	outPath string
	format  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "yeesim",
		Short:        "1d fdtd electromagnetic field solver",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".yeesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario to completion and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	scenarioFlags(runCmd, true)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	scenarioFlags(liveCmd, true)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().BoolVar(&saveLive, "save", false, "store the run on exit")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot probe series and final field in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "probe spectra and arrival times",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render probe and field plots to image files",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output directory (default: run directory)")
	exportPNGCmd.Flags().StringVar(&format, "format", "png", "image format: png, svg or pdf")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a scenario for several courant numbers in parallel",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	scenarioFlags(sweepCmd, false)
	sweepCmd.Flags().Float64SliceVar(&sweepSc, "sc", []float64{0.5, 0.75, 1.0}, "courant numbers")
	sweepCmd.Flags().BoolVar(&saveSweep, "save", false, "store every run")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportPNGCmd, exportJSONCmd, presetsCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command, withSc bool) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	cmd.Flags().Float64Var(&areaSize, "area", def.Grid.AreaSize, "modelling area size (m)")
	cmd.Flags().Float64Var(&spaceStep, "dx", def.Grid.SpaceStep, "space step (m)")
	cmd.Flags().Float64Var(&duration, "time", def.Grid.TimeDuration, "time duration (s)")
	if withSc {
		cmd.Flags().Float64Var(&courant, "sc", def.Grid.Sc, "courant number")
	}
	cmd.Flags().StringVar(&left, "left", def.Boundaries.Left, "left boundary: pec, abc1 or abc2")
	cmd.Flags().StringVar(&right, "right", def.Boundaries.Right, "right boundary: pec, abc1 or abc2")
}

// loadScenario resolves the config: defaults, then preset, then file, then
// any flag set on the command line.
func loadScenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("area") {
		cfg.Grid.AreaSize = areaSize
	}
	if flags.Changed("dx") {
		cfg.Grid.SpaceStep = spaceStep
	}
	if flags.Changed("time") {
		cfg.Grid.TimeDuration = duration
	}
	if f := flags.Lookup("sc"); f != nil && f.Value.Type() == "float64" && f.Changed {
		cfg.Grid.Sc = courant
	}
	if flags.Changed("left") {
		cfg.Boundaries.Left = left
	}
	if flags.Changed("right") {
		cfg.Boundaries.Right = right
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry, registry.DefaultMetrics()); err != nil {
		return err
	}

	eng := exp.Engine()
	fmt.Printf("running %s: %d cells, %d steps, dt=%.4g s\n", cfg.Name, eng.Size(), eng.TimeCounts(), eng.Dt())
	start := time.Now()

	ctx, cancel := interruptContext()
	defer cancel()

	result, err := exp.Run(ctx, tui.NewProgress(os.Stdout, 50))
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	ms := registry.DefaultMetrics()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry, ms); err != nil {
		return err
	}

	if _, err := tui.Run(tui.NewModel(cfg.Name, exp, ms, frameRate)); err != nil {
		return err
	}

	if !saveLive || exp.Engine().StepIndex() == 0 {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(exp.Result())
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tCELLS\tSTEPS\tSC\tLEFT\tRIGHT\tLAYERS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.3g\t%s\t%s\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Size,
			run.Steps,
			run.Sc,
			run.Left,
			run.Right,
			len(run.Layers),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.ProbeData, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	probes, err := st.LoadProbes(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, probes, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, probes, err := loadRun(runID)
	if err != nil {
		return err
	}
	_, e, _, err := storage.New(dataDir).LoadField(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %d cells, dx=%g m, %d steps\n\n", meta.Size, meta.SpaceStep, meta.Steps)

	for i, series := range probes.E {
		if len(series) == 0 {
			continue
		}
		graph := asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("probe %d E(t) at x=%g m", i, meta.Probes[i].Position)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if len(e) > 0 {
		graph := asciigraph.Plot(e,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("E(x) at t=%.4g s", float64(meta.Steps)*meta.Dt)),
		)
		fmt.Println(graph)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, probes, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(probes.E) == 0 || len(probes.Times) == 0 {
		return fmt.Errorf("no probe data")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROBE\tX\tPEAK T\tPEAK E\tDOMINANT F")
	for i, series := range probes.E {
		t, v := analysis.PeakArrival(series, meta.Dt)
		f := analysis.DominantFrequency(series, meta.Dt)
		fmt.Fprintf(w, "%d\t%g m\t%.4g s\t%.4g\t%.4g Hz\n", i, meta.Probes[i].Position, t, v, f)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	freqs, amps := analysis.Spectrum(probes.E[0], meta.Dt)
	if len(amps) > 4 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(amps[:len(amps)/4],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("amplitude spectrum, probe 0, 0..%.3g Hz", freqs[len(amps)/4-1])),
		))
	}

	if len(probes.E) > 1 {
		f0 := analysis.DominantFrequency(probes.E[0], meta.Dt)
		freqs, ratio := analysis.TransferFunction(probes.E[0], probes.E[len(probes.E)-1], meta.Dt, 0.05)
		for k := range freqs {
			if freqs[k] >= f0 {
				fmt.Printf("\n|E%d/E0| at %.4g Hz: %.4g\n", len(probes.E)-1, freqs[k], ratio[k])
				break
			}
		}
	}
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, probes, err := loadRun(runID)
	if err != nil {
		return err
	}
	x, e, _, err := storage.New(dataDir).LoadField(runID)
	if err != nil {
		return err
	}

	dir := outPath
	if dir == "" {
		dir = filepath.Join(dataDir, runID)
	}
	ext := strings.TrimPrefix(strings.ToLower(format), ".")

	pp, err := export.ProbePlot(meta, probes)
	if err != nil {
		return err
	}
	fp, err := export.FieldPlot(meta, x, e)
	if err != nil {
		return err
	}

	probePath := filepath.Join(dir, "probes."+ext)
	if err := export.SavePlot(pp, probePath); err != nil {
		return err
	}
	fieldPath := filepath.Join(dir, "field."+ext)
	if err := export.SavePlot(fp, fieldPath); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", probePath)
	fmt.Printf("wrote %s\n", fieldPath)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]
	meta, probes, err := loadRun(runID)
	if err != nil {
		return err
	}
	x, e, _, err := storage.New(dataDir).LoadField(runID)
	if err != nil {
		return err
	}

	data := export.NewExportData(meta, probes, x, e)
	if outPath == "" {
		return export.ExportJSONStdout(data)
	}
	if err := export.ExportJSON(outPath, data); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tAREA\tDX\tSC\tLEFT\tRIGHT\tLAYERS\tSOURCES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		kinds := make([]string, 0, len(p.Sources))
		for _, s := range p.Sources {
			kinds = append(kinds, s.Waveform.Type)
		}
		fmt.Fprintf(w, "%s\t%g m\t%g m\t%g\t%s\t%s\t%d\t%s\n",
			name, p.Grid.AreaSize, p.Grid.SpaceStep, p.Grid.Sc,
			p.Boundaries.Left, p.Boundaries.Right, len(p.Layers), strings.Join(kinds, ","))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := interruptContext()
	defer cancel()

	fmt.Printf("sweeping %s over sc=%v\n", cfg.Name, sweepSc)
	start := time.Now()
	results, err := experiment.Sweep(ctx, cfg, sweepSc)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	var st *storage.Store
	if saveSweep {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SC\tSTEPS\tDT\tPEAK FIELD\tRESIDUAL ENERGY\tSTABILITY\tRUN")
	for i, res := range results {
		runID := "-"
		if st != nil {
			if runID, err = st.Save(res); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%g\t%d\t%.4g\t%.4g\t%.4g\t%.3f\t%s\n",
			sweepSc[i], res.Steps, res.Dt,
			res.Metrics["peak_field"], res.Metrics["residual_energy"], res.Metrics["stability"], runID)
	}
	return w.Flush()
}
