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

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/clothsim/internal/analysis"
	"github.com/san-kum/clothsim/internal/automation"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/export"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
	"github.com/san-kum/clothsim/internal/viz"
	"github.com/spf13/cobra"
)

// Each command binds its own variables; cobra writes a flag's default into
// its variable at registration time.
var (
	dataDir    string
	configFile string
	preset     string

	debug     bool
	logFile   string
	exportDir string
	rootWind  bool

	runDt     float64
	runFrames int
	runWind   bool
	runSeed   int64
	runNoSave bool
	seeds     int

	replaySVG    string
	replayNoSave bool

	metricName string
	plotSVG    string

	threshold float64

	exportOut    string
	exportFrames int
	exportDt     float64
)

var (
	okColor    = color.New(color.FgGreen, color.Bold).SprintFunc()
	nameColor  = color.New(color.FgCyan).SprintFunc()
	warnColor  = color.New(color.FgYellow).SprintFunc()
	mutedColor = color.New(color.Faint).SprintFunc()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "clothsim",
		Short:        "interactive 2D cloth simulation",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "default", "preset scene")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log structural edits to a file")
	rootCmd.Flags().StringVar(&logFile, "log", "clothsim.log", "debug log path")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", ".", "directory for SVG exports")
	rootCmd.Flags().BoolVar(&rootWind, "wind", false, "enable wind gusts")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate the preset headlessly and record telemetry",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&runDt, "dt", config.DefaultDt, "frame time in ms")
	runCmd.Flags().IntVar(&runFrames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().BoolVar(&runWind, "wind", false, "enable wind gusts")
	runCmd.Flags().Int64Var(&runSeed, "seed", 1, "wind seed")
	runCmd.Flags().BoolVar(&runNoSave, "no-save", false, "do not record the run")
	runCmd.Flags().IntVar(&seeds, "seeds", 1, "run this many consecutive wind seeds")

	replayCmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "replay a scripted input sequence",
		Args:  cobra.ExactArgs(1),
		RunE:  replayScript,
	}
	replayCmd.Flags().StringVar(&replaySVG, "svg", "", "write the final frame as SVG")
	replayCmd.Flags().BoolVar(&replayNoSave, "no-save", false, "do not record the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot recorded metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&metricName, "metric", "", "plot a single metric")
	plotCmd.Flags().StringVar(&plotSVG, "svg", "", "write the plot as SVG instead")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarize recorded series: stats, sway frequency, settle time",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().Float64Var(&threshold, "settle", 0.01, "kinetic energy regarded as at rest")

	exportCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render the preset as SVG, optionally after simulating",
		Args:  cobra.NoArgs,
		RunE:  exportSVG,
	}
	exportCmd.Flags().StringVar(&exportOut, "out", "cloth.svg", "output path")
	exportCmd.Flags().IntVar(&exportFrames, "frames", 0, "frames to simulate first")
	exportCmd.Flags().Float64Var(&exportDt, "dt", config.DefaultDt, "frame time in ms")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	rootCmd.AddCommand(runCmd, replayCmd, listCmd, plotCmd, analyzeCmd, exportCmd, presetsCmd, initCmd)
	return rootCmd
}

// resolveConfig starts from the preset, replaces it with the config file if
// one is given, then applies the flags explicitly set on cmd.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	var err error
	if flags.Changed("dt") {
		if cfg.Run.Dt, err = flags.GetFloat64("dt"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("frames") {
		if cfg.Run.Frames, err = flags.GetInt("frames"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("wind") {
		if cfg.Wind.Enabled, err = flags.GetBool("wind"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("seed") {
		if cfg.Wind.Seed, err = flags.GetInt64("seed"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sceneName() string {
	if configFile != "" {
		return strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	return preset
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	opts := viz.Options{Preset: sceneName(), ExportDir: exportDir}
	if debug {
		f, err := tea.LogToFile(logFile, "clothsim")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		opts.Observers = append(opts.Observers, sim.LogObserver{})
	}
	return viz.Run(cfg, opts)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if seeds > 1 {
		return runEnsemble(cfg)
	}

	ctrl, grid, err := sim.Build(cfg)
	if err != nil {
		return err
	}
	ctrl.SetMode(sim.ModeSimulate)

	runner := sim.NewRunner(ctrl)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s: %dx%d grid, %d frames at %.2fms\n", nameColor(sceneName()), grid.Columns, grid.Rows, cfg.Run.Frames, cfg.Run.Dt)
	start := time.Now()
	result, runErr := runner.Run(ctx, sim.Idle{Dt: cfg.Run.Dt}, cfg.Run.Frames)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		fmt.Println(warnColor("stopped early: " + runErr.Error()))
	}
	fmt.Printf("%s in %v\n", okColor("completed"), time.Since(start))

	if !runNoSave {
		if err := saveRun(cfg, sceneName(), "", result); err != nil {
			return err
		}
	}
	printMetrics(result)
	return runErr
}

func runEnsemble(cfg *config.Config) error {
	if !cfg.Wind.Enabled {
		fmt.Println(warnColor("wind is off: every seed will produce the same run"))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(cfg, seeds, cfg.Wind.Seed)
	fmt.Printf("running %s across %d seeds\n", nameColor(sceneName()), seeds)
	start := time.Now()
	results, err := ens.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s in %v\n\n", okColor("completed"), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tKINETIC\tMAX STRAIN\tLINKS")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.0f\n", ens.Seed(i), r.Metrics["kinetic_energy"], r.Metrics["max_strain"], r.Metrics["links"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if runNoSave {
		return nil
	}
	for i, r := range results {
		seeded := *cfg
		seeded.Wind.Seed = ens.Seed(i)
		if err := saveRun(&seeded, sceneName(), "", r); err != nil {
			return err
		}
	}
	return nil
}

func replayScript(cmd *cobra.Command, args []string) error {
	script, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}
	if script.Name == "" {
		script.Name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
	}

	var cfg *config.Config
	if configFile != "" || cmd.Flags().Changed("preset") || script.Preset == "" {
		if cfg, err = resolveConfig(cmd); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl, result, err := automation.Replay(ctx, script, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("%s %d frames, %d events, mode %s\n", okColor("replayed"), result.Frames, result.Events, ctrl.Mode())

	scene := sceneName()
	if cfg == nil {
		cfg = config.GetPreset(script.Preset)
		scene = script.Preset
	}
	if replaySVG != "" {
		if err := export.WriteFrame(replaySVG, ctrl.Frame(), cfg.World.Width, cfg.World.Height); err != nil {
			return err
		}
		fmt.Printf("frame written to %s\n", nameColor(replaySVG))
	}
	if !replayNoSave {
		if err := saveRun(cfg, scene, script.Name, result); err != nil {
			return err
		}
	}
	printMetrics(result)
	return nil
}

func saveRun(cfg *config.Config, scene, script string, result *sim.Result) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset: scene,
		Script: script,
		Dt:     cfg.Run.Dt,
		Wind:   cfg.Wind.Enabled,
		Seed:   cfg.Wind.Seed,
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", nameColor(runID))
	return nil
}

func printMetrics(result *sim.Result) {
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", mutedColor(name), result.Metrics[name])
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tFRAMES\tDT\tWIND\tEVENTS")

	for _, run := range runs {
		scene := run.Preset
		if run.Script != "" {
			scene = run.Script + " (script)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fms\t%t\t%d\n",
			run.ID,
			scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Wind,
			run.Events,
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

	series, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(series))
	for name := range series {
		if metricName == "" || name == metricName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Errorf("no data to plot")
	}

	if plotSVG != "" {
		svg := export.SeriesToSVG(series[names[0]], 800, 300, "#00ff88")
		if svg == "" {
			return fmt.Errorf("not enough samples to plot %s", names[0])
		}
		if err := os.WriteFile(plotSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("%s written to %s\n", names[0], nameColor(plotSVG))
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", meta.Frames)

	for _, name := range names {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs frame"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("run: %s (%d frames at %.2fms)\n\n", meta.ID, meta.Frames, meta.Dt)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX")
	for _, name := range names {
		sum := analysis.Summarize(series[name])
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", name, sum.Mean, sum.StdDev, sum.Min, sum.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	energy := series["kinetic_energy"]
	if len(energy) == 0 {
		return nil
	}
	fmt.Println()
	if hz, ok := analysis.DominantFrequency(energy, meta.Dt); ok {
		fmt.Printf("dominant sway: %s\n", nameColor(fmt.Sprintf("%.3f Hz", hz)))
	} else {
		fmt.Println("dominant sway: none")
	}
	if frame, ok := analysis.SettleFrame(energy, threshold); ok {
		fmt.Printf("settled at frame %d (%.0fms)\n", frame+1, float64(frame+1)*meta.Dt)
	} else {
		fmt.Println(warnColor("never settled"))
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, _, err := sim.Build(cfg)
	if err != nil {
		return err
	}

	if exportFrames > 0 {
		ctrl.SetMode(sim.ModeSimulate)
		if _, err := sim.NewRunner(ctrl).Run(context.Background(), sim.Idle{Dt: cfg.Run.Dt}, exportFrames); err != nil {
			return err
		}
	}

	if err := export.WriteFrame(exportOut, ctrl.Frame(), cfg.World.Width, cfg.World.Height); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", okColor("wrote"), exportOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGRID\tPIN EVERY\tWIND")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%d\t%t\n", name, cfg.Grid.Columns, cfg.Grid.Rows, cfg.Grid.PinEvery, cfg.Wind.Enabled)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", okColor("wrote"), args[0])
	return nil
}
