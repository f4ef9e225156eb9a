package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/akoven/enslab/internal/config"
	"github.com/akoven/enslab/internal/generate"
	"github.com/akoven/enslab/internal/kernel"
	"github.com/akoven/enslab/internal/potential"
	"github.com/akoven/enslab/internal/stats"
	"github.com/akoven/enslab/internal/store"
	"github.com/akoven/enslab/internal/tui"
)

var (
	dataDir    string
	verbose    bool
	atoms      int
	configs    int
	cell       float64
	temp       float64
	sigma      float64
	seed       int64
	kernelName string
	configFile string
	preset     string
	// export options
	exportFormat string
	exportOutput string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "enslab",
		Short: "ensemble potential evaluation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "generate an ensemble and compute energies and forces",
		RunE:  runCompute,
	}
	computeCmd.Flags().IntVar(&atoms, "atoms", config.DefaultAtoms, "atoms per configuration")
	computeCmd.Flags().IntVar(&configs, "configs", config.DefaultConfigs, "number of configurations")
	computeCmd.Flags().Float64Var(&cell, "cell", config.DefaultCell, "cell side length (angstrom)")
	computeCmd.Flags().Float64Var(&temp, "temp", config.DefaultTemperature, "temperature (kelvin)")
	computeCmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "displacement width (angstrom)")
	computeCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	computeCmd.Flags().StringVar(&kernelName, "kernel", config.DefaultKernel, "kernel (auto, cpu, native)")
	computeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	computeCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  runList,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energies per configuration",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run results",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format (json, csv)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark kernel throughput",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&atoms, "atoms", config.DefaultAtoms, "atoms per configuration")
	benchCmd.Flags().IntVar(&configs, "configs", config.DefaultConfigs, "number of configurations")
	benchCmd.Flags().StringVar(&kernelName, "kernel", config.DefaultKernel, "kernel (auto, cpu, native)")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "browse stored runs interactively",
		RunE:  runView,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	rootCmd.AddCommand(computeCmd, listCmd, showCmd, plotCmd, exportCmd, benchCmd, viewCmd, deleteCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildConfig() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have: %v)", preset, config.ListPresets())
		}
	default:
		cfg = &config.Config{
			Atoms: atoms, Configs: configs, Cell: cell,
			Temperature: temp, Sigma: sigma, Kernel: kernelName,
			DataDir: dataDir,
		}
	}
	cfg.Seed = seed
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	kern, err := kernel.ByName(cfg.Kernel)
	if err != nil {
		return err
	}

	ens := generate.Ensemble(cfg)
	log.Debug().Int("configs", ens.Size()).Int("atoms", ens.NAtoms()).
		Str("kernel", kern.Name()).Msg("ensemble generated")

	start := time.Now()
	adapter := potential.New(kern)
	if err := adapter.ComputeEnsemble(cmd.Context(), ens); err != nil {
		return err
	}
	elapsed := time.Since(start)

	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.SaveRun(cmd.Context(), kern.Name(), cfg.Seed, ens)
	if err != nil {
		return err
	}

	printSummary(meta.ID, kern.Name(), elapsed, meta.Summary)
	return nil
}

func printSummary(id, kern string, elapsed time.Duration, s stats.Summary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "run\t%s\n", id)
	fmt.Fprintf(w, "kernel\t%s\n", kern)
	fmt.Fprintf(w, "configurations\t%d\n", s.Configs)
	fmt.Fprintf(w, "atoms\t%d\n", s.Atoms)
	fmt.Fprintf(w, "mean energy\t%.4f K\n", s.MeanEnergy)
	fmt.Fprintf(w, "energy std\t%.4f K\n", s.EnergyStd)
	fmt.Fprintf(w, "energy/atom\t%.4f K\n", s.EnergyPerAtom)
	fmt.Fprintf(w, "weighted energy\t%.4f K\n", s.WeightedEnergy)
	fmt.Fprintf(w, "mean |force|\t%.4f K/Å\n", s.MeanForceNorm)
	fmt.Fprintf(w, "max force\t%.4f K/Å\n", s.MaxForce)
	fmt.Fprintf(w, "elapsed\t%s\n", elapsed.Round(time.Millisecond))
	w.Flush()
}

func runList(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs stored")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKERNEL\tCONFIGS\tATOMS\tMEAN ENERGY\tCREATED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3f K\t%s\n",
			run.ID, run.Kernel, run.Configs, run.Atoms,
			run.Summary.MeanEnergy, run.CreatedAt.Local().Format(time.DateTime))
	}
	return w.Flush()
}

func runShow(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printSummary(meta.ID, meta.Kernel, 0, meta.Summary)
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	data, err := st.LoadData(args[0])
	if err != nil {
		return err
	}
	if len(data.Energies) < 2 {
		return fmt.Errorf("run %s has too few configurations to plot", args[0])
	}

	fmt.Println(asciigraph.Plot(data.Energies,
		asciigraph.Height(14),
		asciigraph.Width(70),
		asciigraph.Caption("energy per configuration (K)")))
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	data, err := st.LoadData(args[0])
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	switch exportFormat {
	case "json":
		return store.ExportJSON(out, meta, data)
	case "csv":
		return store.ExportCSV(out, data)
	default:
		return fmt.Errorf("unknown format %q (json, csv)", exportFormat)
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	kern, err := kernel.ByName(kernelName)
	if err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	cfg.Atoms = atoms
	cfg.Configs = configs
	cfg.Seed = 1

	ens := generate.Ensemble(cfg)
	adapter := potential.New(kern)

	start := time.Now()
	if err := adapter.ComputeEnsemble(cmd.Context(), ens); err != nil {
		return err
	}
	elapsed := time.Since(start)

	rate := float64(ens.Size()) / elapsed.Seconds()
	fmt.Printf("%s: %d configs x %d atoms in %s (%.1f configs/s)\n",
		kern.Name(), ens.Size(), ens.NAtoms(), elapsed.Round(time.Millisecond), rate)
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()
	return tui.Run(st)
}

func runDelete(cmd *cobra.Command, args []string) error {
	st, err := store.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}
