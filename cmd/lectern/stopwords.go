package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cognicore/lectern/pkg/lectern/autotune/stopwords"
	"github.com/cognicore/lectern/pkg/lectern/config"
)

func newStopwordsCmd(g *globalOptions) *cobra.Command {
	th := stopwords.DefaultThresholds()

	cmd := &cobra.Command{
		Use:   "stopwords",
		Short: "Suggest stopwords: tokens present in most corpus documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, g, nil)
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

			cands, err := newEngine(cfg, comp, logger).SuggestStopwords(ctx, th)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			share := lipgloss.NewRenderer(w).NewStyle().Faint(true)
			for _, c := range cands {
				fmt.Fprintf(w, "%s %s\n", c.Token, share.Render(fmt.Sprintf("(%.0f%% of documents, %d occurrences)", c.DFPercent, c.Count)))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&th.MinDFPercent, "min-df", th.MinDFPercent, "Minimum share of documents containing the token, in percent")
	cmd.Flags().IntVar(&th.MinDocs, "min-docs", th.MinDocs, "Minimum corpus size for suggestions")
	return cmd
}
