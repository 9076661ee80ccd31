package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/2x3systems/clusters/clusters"
	walker "github.com/2x3systems/clusters/fine/cluster-walker"
	"github.com/2x3systems/clusters/libclusters/catalog"
	"github.com/2x3systems/clusters/libclusters/graph"
	"github.com/2x3systems/clusters/libclusters/sink"
)

type runFlags struct {
	configPath string
	cfg        clusters.Config
}

func newRunCmd() *cobra.Command {
	rf := &runFlags{
		cfg: clusters.DefaultConfig(),
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Grow a seed graph and write each generation's unique graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rf.run(cmd)
		},
	}

	f := runCmd.Flags()
	f.StringVar(&rf.configPath, "config", "", "YAML config file (flags override its values)")
	f.IntVarP(&rf.cfg.DegreeBound, "degree-bound", "d", rf.cfg.DegreeBound, "a vertex accepts new edges while its degree is below this")
	f.IntVarP(&rf.cfg.MaxVertices, "max-vertices", "n", rf.cfg.MaxVertices, "vertex count of the last generation")
	f.StringVar(&rf.cfg.Seed, "seed", rf.cfg.Seed, `seed graph edge expression, e.g. "0-1-2, 2-3"`)
	f.IntVar(&rf.cfg.Workers, "workers", rf.cfg.Workers, "goroutines used per phase (0 uses every CPU)")
	f.StringVar(&rf.cfg.Dedup, "dedup", rf.cfg.Dedup, "dedup strategy: serial, parallel, or bucketed")
	f.StringVarP(&rf.cfg.Output, "output", "o", rf.cfg.Output, `append-only output file ("" disables)`)
	f.StringVar(&rf.cfg.Format, "format", rf.cfg.Format, "output format: pairs or graph6")
	f.StringVar(&rf.cfg.CatalogPath, "catalog", rf.cfg.CatalogPath, "badger catalog directory")
	f.StringVar(&rf.cfg.MetricsFile, "metrics-file", rf.cfg.MetricsFile, "prometheus textfile written when the run ends")
	f.BoolVar(&rf.cfg.Table, "table", rf.cfg.Table, "print a per-generation table when the run ends")

	return runCmd
}

// resolveConfig layers explicitly set flags over the config file (if any).
func (rf *runFlags) resolveConfig(cmd *cobra.Command) (clusters.Config, error) {
	if rf.configPath == "" {
		return rf.cfg, rf.cfg.Validate()
	}

	cfg, err := clusters.LoadConfig(rf.configPath)
	if err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	override := func(name string, apply func()) {
		if f.Changed(name) {
			apply()
		}
	}
	override("degree-bound", func() { cfg.DegreeBound = rf.cfg.DegreeBound })
	override("max-vertices", func() { cfg.MaxVertices = rf.cfg.MaxVertices })
	override("seed", func() { cfg.Seed = rf.cfg.Seed })
	override("workers", func() { cfg.Workers = rf.cfg.Workers })
	override("dedup", func() { cfg.Dedup = rf.cfg.Dedup })
	override("output", func() { cfg.Output = rf.cfg.Output })
	override("format", func() { cfg.Format = rf.cfg.Format })
	override("catalog", func() { cfg.CatalogPath = rf.cfg.CatalogPath })
	override("metrics-file", func() { cfg.MetricsFile = rf.cfg.MetricsFile })
	override("table", func() { cfg.Table = rf.cfg.Table })

	return cfg, cfg.Validate()
}

func (rf *runFlags) run(cmd *cobra.Command) (err error) {
	cfg, err := rf.resolveConfig(cmd)
	if err != nil {
		return err
	}

	seed, err := graph.ParseEdgeExpr(cfg.Seed)
	if err != nil {
		return errors.Wrap(clusters.ErrBadSeed, err.Error())
	}

	strategy, ok := walker.ParseDedupStrategy(cfg.Dedup)
	if !ok {
		return errors.Wrapf(clusters.ErrBadConfig, "unknown dedup strategy %q", cfg.Dedup)
	}
	opts := walker.EnumOpts{
		DegreeBound: cfg.DegreeBound,
		MaxVertices: cfg.MaxVertices,
		Workers:     cfg.NumWorkers(),
		Dedup:       strategy,
		Telemetry:   []clusters.TelemetrySink{sink.LogSink{}},
	}

	var closers []clusters.Closer
	defer func() {
		for _, closer := range closers {
			if cerr := closer.Close(); err == nil {
				err = cerr
			}
		}
	}()

	if cfg.Output != "" {
		pw, err := sink.OpenPairsFile(cfg.Output, cfg.Format)
		if err != nil {
			return err
		}
		closers = append(closers, pw)
		opts.Results = append(opts.Results, pw)
	}
	if cfg.CatalogPath != "" {
		cat, err := catalog.OpenCatalog(catalog.Opts{DbPathName: cfg.CatalogPath})
		if err != nil {
			return err
		}
		closers = append(closers, cat)
		opts.Results = append(opts.Results, cat)
	}
	if cfg.MetricsFile != "" {
		ms := sink.NewMetricsSink(cfg.MetricsFile)
		closers = append(closers, ms)
		opts.Telemetry = append(opts.Telemetry, ms)
	}
	if cfg.Table {
		ts := sink.NewTableSink(cmd.OutOrStdout())
		closers = append(closers, ts)
		opts.Telemetry = append(opts.Telemetry, ts)
	}

	gw, err := walker.NewWalker(opts)
	if err != nil {
		return err
	}
	sum, err := gw.Run(seed)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d generations, %d unique graphs (N=%d: %d)\n",
		sum.Generations, sum.TotalUnique, sum.LastN, sum.FinalUnique)
	return nil
}
