package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cognicore/lectern/pkg/lectern/config"
)

func newKeywordsCmd(g *globalOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "keywords <file>",
		Short: "Print the most frequent keywords of a single document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, g, func(cfg *config.Config) {
				if cmd.Flags().Changed("top") {
					cfg.Analysis.TopKeywords = top
				}
			})
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

			terms, err := newEngine(cfg, comp, logger).Keywords(ctx, args[0], cfg.Analysis.TopKeywords)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			count := lipgloss.NewRenderer(w).NewStyle().Faint(true)
			for _, t := range terms {
				fmt.Fprintf(w, "%s %s\n", t.Token, count.Render(fmt.Sprintf("(%d)", t.Count)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 0, "Number of keywords (default from config, 50)")
	return cmd
}
