package main

import (
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/catalog"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var sortKey string
	var desc bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every movie in the collection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return listMovies(newPrinter(cmd, ctx.jsonOutput()), svc, sortKey, desc)
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", "", "Order by rating, year, or title (default: insertion order)")
	cmd.Flags().BoolVar(&desc, "desc", false, "Newest or Z-first when sorting by year or title")
	return cmd
}

func newSortCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "List movies best rated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return listMovies(newPrinter(cmd, ctx.jsonOutput()), svc, sortRating, false)
		},
	}
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var req catalog.AddRequest
	var noEnrich bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie, looking up missing details online when configured",
		Long: `Add a movie to the collection.

When a metadata provider is configured, year, rating, poster, and link are
looked up online and only fill in what was not given on the command line.
Without a provider, or with --no-enrich, --rating is required.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req.Title = strings.Join(args, " ")
			req.Enrich = cfg.Catalog.EnrichOnAdd && !noEnrich
			return addMovie(cmd.Context(), newPrinter(cmd, ctx.jsonOutput()), svc, req)
		},
	}
	cmd.Flags().IntVar(&req.Year, "year", 0, "Release year")
	cmd.Flags().Float64Var(&req.Rating, "rating", 0, "Rating from 1 to 10")
	cmd.Flags().StringVar(&req.Poster, "poster", "", "Poster image URL")
	cmd.Flags().StringVar(&req.Link, "link", "", "Details page URL")
	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Skip the online lookup")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <title>",
		Aliases: []string{"rm"},
		Short:   "Delete a movie by title (case-insensitive)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return deleteMovie(cmd.Context(), newPrinter(cmd, ctx.jsonOutput()), svc, strings.Join(args, " "))
		},
	}
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "update <title> <rating>",
		Short: "Change the rating of a movie",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := parseRating(args[1])
			if err != nil {
				return err
			}
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			return updateMovie(cmd.Context(), newPrinter(cmd, ctx.jsonOutput()), svc, args[0], rating)
		},
	}
}
