package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognicore/lectern/internal/logging"
	"github.com/cognicore/lectern/pkg/lectern"
	"github.com/cognicore/lectern/pkg/lectern/config"
)

type globalOptions struct {
	configPath string
	dir        string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	a := &analyzeOptions{}

	root := &cobra.Command{
		Use:   "lectern",
		Short: "Keyword coverage and cosine similarity of lecture documents against a reference",
		Long: "lectern extracts text from a reference document and a numbered corpus (W1.pdf, W2.pdf, ...), " +
			"measures keyword coverage and cosine similarity and writes a Markdown report.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, g, a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Path to YAML config (default: "+config.DefaultFile+" if present)")
	pf.StringVarP(&g.dir, "dir", "d", "", "Directory holding the reference and corpus documents")
	pf.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	a.register(root)
	root.AddCommand(newAnalyzeCmd(g, a), newKeywordsCmd(g), newStopwordsCmd(g))
	return root
}

// resolveConfig applies defaults, the YAML file, the environment and
// finally the flags that were set on cmd.
func resolveConfig(cmd *cobra.Command, g *globalOptions, apply func(*config.Config)) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.Load(g.configPath)
	} else {
		cfg, err = config.LoadOptional(config.DefaultFile)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = g.dir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if apply != nil {
		apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newRunLogger builds the run logger and tags it with a fresh run id.
func newRunLogger(cmd *cobra.Command, cfg *config.Config) (context.Context, *slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, logging.NewRunID())
	logger := logging.WithContext(logging.NewLogger(cmd.ErrOrStderr(), level, cfg.Log.Format), ctx)
	return ctx, logger, nil
}

func newEngine(cfg *config.Config, comp *config.Components, logger *slog.Logger) *lectern.Lectern {
	missing := cfg.Analysis.MissingLimit
	if missing == 0 {
		missing = -1
	}
	return lectern.New(lectern.Options{
		Dir:       cfg.Dir,
		Reference: cfg.Reference,
		Pattern: lectern.Pattern{
			Prefix:    cfg.Corpus.Prefix,
			MaxDigits: cfg.Corpus.MaxDigits,
			Extension: cfg.Corpus.Extension,
		},
		TopKeywords:    cfg.Analysis.TopKeywords,
		MissingLimit:   missing,
		MinTokenLen:    cfg.Analysis.MinTokenLen,
		Workers:        cfg.Workers,
		SkipUnreadable: cfg.SkipUnreadable,
		Pipeline:       comp.Pipeline,
		Source:         comp.Source,
		Logger:         logger,
	})
}
