package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/spanbench/internal/bench"
	"github.com/san-kum/spanbench/internal/config"
	"github.com/san-kum/spanbench/internal/export"
	"github.com/san-kum/spanbench/internal/particle"
	"github.com/san-kum/spanbench/internal/process"
	"github.com/san-kum/spanbench/internal/storage"
	"github.com/san-kum/spanbench/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	reps       int
	warmup     int
	maxSize    int
	dt         float64
	procNames  []string
	showPlot   bool
	noSave     bool
	stackSize  int
	steps      int
	svgOut     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spanbench",
		Short: "particle data-layout and dispatch micro-benchmarks",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spanbench", "data directory")

	benchCmd := &cobra.Command{
		Use:   "bench [method...]",
		Short: "run the benchmark sweep",
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	benchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	benchCmd.Flags().IntVar(&reps, "reps", config.DefaultReps, "timed repetitions per point")
	benchCmd.Flags().IntVar(&warmup, "warmup", config.DefaultWarmup, "warmup invocations per point")
	benchCmd.Flags().IntVar(&maxSize, "max-size", config.DefaultMaxSize, "largest stack size")
	benchCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "drift time step")
	benchCmd.Flags().StringSliceVar(&procNames, "process", nil, "process list for variant methods")
	benchCmd.Flags().BoolVar(&showPlot, "plot", false, "plot results after the sweep")
	benchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live [method...]",
		Short: "run the sweep with a live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	liveCmd.Flags().IntVar(&reps, "reps", config.DefaultReps, "timed repetitions per point")
	liveCmd.Flags().IntVar(&warmup, "warmup", config.DefaultWarmup, "warmup invocations per point")
	liveCmd.Flags().IntVar(&maxSize, "max-size", config.DefaultMaxSize, "largest stack size")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "drift time step")
	liveCmd.Flags().StringSliceVar(&procNames, "process", nil, "process list for variant methods")
	liveCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "apply a process list once over a stack and print the records",
		RunE:  runOnce,
	}
	runCmd.Flags().IntVar(&stackSize, "n", 8, "stack size")
	runCmd.Flags().IntVar(&steps, "steps", 1, "number of passes over the process list")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "drift time step")
	runCmd.Flags().StringSliceVar(&procNames, "process", []string{"drift", "energy_loss"}, "process list")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run timing curves as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(benchCmd, liveCmd, runCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildOptions layers defaults, preset, config file, CLI flags and method
// args into runner options.
func buildOptions(cmd *cobra.Command, args []string) (bench.Options, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return bench.Options{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return bench.Options{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("reps") {
		cfg.Reps = reps
	}
	if cmd.Flags().Changed("warmup") {
		cfg.Warmup = warmup
	}
	if cmd.Flags().Changed("max-size") {
		cfg.MaxSize = maxSize
		cfg.Sizes = nil
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("process") {
		cfg.Processes = procNames
	}
	if len(args) > 0 {
		cfg.Methods = args
	}

	if err := cfg.Validate(); err != nil {
		return bench.Options{}, err
	}

	methods := make([]bench.Method, 0, len(cfg.Methods))
	for _, name := range cfg.Methods {
		m, err := bench.ParseMethod(name)
		if err != nil {
			return bench.Options{}, err
		}
		methods = append(methods, m)
	}

	procs, err := process.ListFromNames(cfg.Processes)
	if err != nil {
		return bench.Options{}, err
	}
	for i := range procs {
		procs[i].Dt = float32(cfg.Dt)
	}

	return bench.Options{
		Methods: methods,
		Sizes:   cfg.GetSizes(),
		Reps:    cfg.Reps,
		Warmup:  cfg.Warmup,
		Procs:   procs,
	}, nil
}

func runBench(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd, args)
	if err != nil {
		return err
	}

	runner := bench.NewRunner(opts)
	report, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	printReport(report)

	if showPlot {
		fmt.Println()
		plotReport(report)
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(report)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions(cmd, args)
	if err != nil {
		return err
	}

	report, err := tui.Run(opts)
	if err != nil {
		return err
	}
	if report == nil {
		return nil
	}

	printReport(report)

	if !noSave && len(report.Points) > 0 {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(report)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}

	return nil
}

func printReport(report *bench.Report) {
	fmt.Printf("completed %d points in %v\n\n", len(report.Points), report.Elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tN\tMEAN NS/OP\tSTD\tMIN\tMEDIAN")
	for _, p := range report.Points {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\n",
			p.Method, p.N, p.Summary.Mean, p.Summary.Std, p.Summary.Min, p.Summary.Median)
	}
	w.Flush()
}

// plotReport draws one log10 timing curve per method over the swept sizes.
func plotReport(report *bench.Report) {
	for _, m := range report.Options.Methods {
		series := report.Series(m)
		if len(series) == 0 {
			continue
		}
		data := make([]float64, len(series))
		for i, p := range series {
			data[i] = math.Log10(p.Summary.Mean)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Caption(fmt.Sprintf("%s: log10 ns/op vs size step", m)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
}

func runOnce(cmd *cobra.Command, args []string) error {
	procs, err := process.ListFromNames(procNames)
	if err != nil {
		return err
	}
	for i := range procs {
		procs[i].Dt = float32(dt)
	}
	if stackSize < 1 {
		return fmt.Errorf("n must be >= 1")
	}
	if steps < 1 {
		return fmt.Errorf("steps must be >= 1")
	}

	stack := particle.NewBenchStack(stackSize)
	sp := particle.View(stack)

	for s := 0; s < steps; s++ {
		process.ApplyList(procs, sp)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "I\tID\tPX\tPY\tPZ\tE\tX\tY\tZ\tT")
	for i := 0; i < sp.Size(); i++ {
		p := sp.At(i)
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%.3f\t%.4f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			i, p.ID, p.Px, p.Py, p.Pz, p.E, p.X, p.Y, p.Z, p.T)
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
	fmt.Fprintln(w, "ID\tTIME\tMETHODS\tPOINTS\tREPS\tELAPSED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%d\t%.2fs\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Methods,
			run.Points,
			run.Reps,
			run.Elapsed,
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

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("methods: %v\n", meta.Methods)
	fmt.Printf("points: %d\n\n", len(series))

	byMethod := make(map[string][]float64)
	var order []string
	for _, p := range series {
		if _, ok := byMethod[p.Method]; !ok {
			order = append(order, p.Method)
		}
		byMethod[p.Method] = append(byMethod[p.Method], math.Log10(p.MeanNs))
	}

	for _, method := range order {
		graph := asciigraph.Plot(byMethod[method],
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Caption(fmt.Sprintf("%s: log10 ns/op vs size step", method)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}

	svg := export.SeriesToSVG(series, 800, 600)
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
