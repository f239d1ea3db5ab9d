package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cognicore/lectern/pkg/lectern"
	"github.com/cognicore/lectern/pkg/lectern/config"
	"github.com/cognicore/lectern/pkg/lectern/report"
)

type analyzeOptions struct {
	reference      string
	output         string
	cache          string
	workers        int
	skipUnreadable bool
}

func (a *analyzeOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&a.reference, "reference", "r", "", "Reference document (default test_python.pdf)")
	f.StringVarP(&a.output, "output", "o", "", "Report file (default COVERAGE_REPORT.md)")
	f.StringVar(&a.cache, "cache", "", "SQLite extraction cache path")
	f.IntVarP(&a.workers, "workers", "w", 1, "Number of documents extracted in parallel")
	f.BoolVar(&a.skipUnreadable, "skip-unreadable", false, "Leave out corpus documents that cannot be read")
}

func (a *analyzeOptions) apply(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		flags := cmd.Flags()
		if flags.Changed("reference") {
			cfg.Reference = a.reference
		}
		if flags.Changed("output") {
			cfg.Output = a.output
		}
		if flags.Changed("cache") {
			cfg.Cache.Path = a.cache
		}
		if flags.Changed("workers") {
			cfg.Workers = a.workers
		}
		if flags.Changed("skip-unreadable") {
			cfg.SkipUnreadable = a.skipUnreadable
		}
	}
}

func newAnalyzeCmd(g *globalOptions, a *analyzeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the corpus against the reference and write the coverage report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, g, a)
		},
	}
	a.register(cmd)
	return cmd
}

func runAnalyze(cmd *cobra.Command, g *globalOptions, a *analyzeOptions) error {
	cfg, err := resolveConfig(cmd, g, a.apply(cmd))
	if err != nil {
		return err
	}
	ctx, logger, err := newRunLogger(cmd, cfg)
	if err != nil {
		return err
	}

	comp, err := (&config.Loader{Config: cfg, Logger: logger}).Load(ctx)
	if err != nil {
		return err
	}
	defer comp.Close()

	res, err := newEngine(cfg, comp, logger).Analyze(ctx)
	if err != nil {
		return err
	}

	out := cfg.OutputPath()
	if err := report.WriteFile(out, res.Report); err != nil {
		return err
	}
	logger.Info("report written", "path", out, "documents", res.Report.CorpusFiles)

	printSummary(cmd.OutOrStdout(), out, res)
	return nil
}

func printSummary(w io.Writer, path string, res *lectern.Result) {
	r := lipgloss.NewRenderer(w)
	label := r.NewStyle().Bold(true)
	value := r.NewStyle().Foreground(lipgloss.Color("10"))
	warn := r.NewStyle().Foreground(lipgloss.Color("11"))

	g := res.Report.Global
	fmt.Fprintf(w, "%s %s\n", label.Render("Saved:"), path)
	fmt.Fprintf(w, "%s %s | %s %s\n",
		label.Render("Coverage (keywords):"), value.Render(fmt.Sprintf("%.1f%%", g.Coverage)),
		label.Render("Similarity (cosine):"), value.Render(fmt.Sprintf("%.1f%%", g.Cosine)))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "%s %s\n", warn.Render("Skipped:"), strings.Join(res.Skipped, ", "))
	}
}
