package main

import (
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/catalog"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find movies whose title contains the query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return searchMovies(newPrinter(cmd, ctx.jsonOutput()), svc, strings.Join(args, " "))
		},
	}
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	var f catalog.Filter

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List movies by minimum rating and release year range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return filterMovies(newPrinter(cmd, ctx.jsonOutput()), svc, f)
		},
	}
	cmd.Flags().Float64Var(&f.MinRating, "min-rating", 0, "Minimum rating (inclusive)")
	cmd.Flags().IntVar(&f.StartYear, "start-year", 0, "Earliest release year (inclusive)")
	cmd.Flags().IntVar(&f.EndYear, "end-year", 0, "Latest release year (inclusive)")
	return cmd
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show average, median, best, and worst ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return showStats(newPrinter(cmd, ctx.jsonOutput()), svc)
		},
	}
}

func newRandomCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Pick a random movie to watch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return showRandom(newPrinter(cmd, ctx.jsonOutput()), svc)
		},
	}
}

func newHistogramCommand(ctx *commandContext) *cobra.Command {
	var bins int

	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Show how ratings are distributed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			if bins <= 0 {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				bins = cfg.Catalog.HistogramBins
			}
			return showHistogram(newPrinter(cmd, ctx.jsonOutput()), svc, bins)
		},
	}
	cmd.Flags().IntVar(&bins, "bins", 0, "Number of rating buckets (default from catalog.histogram_bins)")
	return cmd
}
