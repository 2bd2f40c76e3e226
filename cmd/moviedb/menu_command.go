package main

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/catalog"
	"moviedb/internal/config"
	"moviedb/internal/movie"
)

func newMenuCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Manage the collection through an interactive numbered menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			m := &menu{
				ctx: cmd.Context(),
				p:   newPrinter(cmd, false),
				svc: svc,
				cfg: cfg,
				in:  bufio.NewScanner(cmd.InOrStdin()),
			}
			return m.run()
		},
	}
}

type menuEntry struct {
	label  string
	action func() error
}

type menu struct {
	ctx context.Context
	p   printer
	svc *catalog.Service
	cfg *config.Config
	in  *bufio.Scanner
}

func (m *menu) entries() []menuEntry {
	return []menuEntry{
		{"Exit", nil},
		{"List movies", func() error { return listMovies(m.p, m.svc, sortNone, false) }},
		{"Add movie", m.add},
		{"Delete movie", m.delete},
		{"Update movie", m.update},
		{"Stats", func() error { return showStats(m.p, m.svc) }},
		{"Random movie", func() error { return showRandom(m.p, m.svc) }},
		{"Search movie", m.search},
		{"Movies sorted by rating", func() error { return listMovies(m.p, m.svc, sortRating, false) }},
		{"Movies sorted by year", m.sortByYear},
		{"Filter movies", m.filter},
		{"Rating histogram", func() error { return showHistogram(m.p, m.svc, m.cfg.Catalog.HistogramBins) }},
		{"Generate website", func() error { return writeWebsite(m.p, m.cfg, m.svc, "", "") }},
	}
}

// run loops until the user picks Exit or input ends. Failed actions are
// reported and the menu is shown again.
func (m *menu) run() error {
	entries := m.entries()
	for {
		if err := m.ctx.Err(); err != nil {
			return err
		}
		m.p.line("")
		m.p.line("********** %s **********", m.cfg.Report.Title)
		m.p.line("Menu:")
		for i, e := range entries {
			m.p.line("%d. %s", i, e.label)
		}
		choice, ok := m.prompt(fmt.Sprintf("Enter choice (0-%d): ", len(entries)-1))
		if !ok {
			m.p.line("Goodbye!")
			return nil
		}
		n, err := strconv.Atoi(choice)
		if err != nil || n < 0 || n >= len(entries) {
			m.p.status(statusError, "Invalid choice %q; enter a number between 0 and %d", choice, len(entries)-1)
			continue
		}
		if n == 0 {
			m.p.line("Goodbye!")
			return nil
		}
		if err := entries[n].action(); err != nil {
			if m.ctx.Err() != nil {
				return m.ctx.Err()
			}
			m.p.status(statusError, "%v", err)
		}
	}
}

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (m *menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.p.out, label)
	if !m.in.Scan() {
		fmt.Fprintln(m.p.out)
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *menu) add() error {
	title, _ := m.prompt("Enter movie name: ")
	yearText, _ := m.prompt("Enter release year (blank if unknown): ")
	year, err := movie.ParseYear(yearText)
	if err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrInvalidYear, err)
	}
	label := "Enter rating (1-10): "
	if m.svc.EnrichmentAvailable() && m.cfg.Catalog.EnrichOnAdd {
		label = "Enter rating (1-10, blank to look it up online): "
	}
	ratingText, _ := m.prompt(label)
	var rating float64
	if ratingText != "" {
		if rating, err = parseRating(ratingText); err != nil {
			return err
		}
	}
	return addMovie(m.ctx, m.p, m.svc, catalog.AddRequest{
		Title:  title,
		Year:   year,
		Rating: rating,
		Enrich: m.cfg.Catalog.EnrichOnAdd,
	})
}

func (m *menu) delete() error {
	title, _ := m.prompt("Enter movie name to delete: ")
	return deleteMovie(m.ctx, m.p, m.svc, title)
}

func (m *menu) update() error {
	title, _ := m.prompt("Enter movie name to update: ")
	ratingText, _ := m.prompt("Enter new rating (1-10): ")
	rating, err := parseRating(ratingText)
	if err != nil {
		return err
	}
	return updateMovie(m.ctx, m.p, m.svc, title, rating)
}

func (m *menu) search() error {
	query, _ := m.prompt("Enter part of movie name: ")
	return searchMovies(m.p, m.svc, query)
}

func (m *menu) sortByYear() error {
	answer, _ := m.prompt("Show newest movies first? (y/N): ")
	return listMovies(m.p, m.svc, sortYear, strings.HasPrefix(strings.ToLower(answer), "y"))
}

func (m *menu) filter() error {
	var f catalog.Filter
	var err error
	if text, _ := m.prompt("Minimum rating (blank for none): "); text != "" {
		if f.MinRating, err = parseRating(text); err != nil {
			return err
		}
	}
	if f.StartYear, err = m.promptYear("Start year (blank for none): "); err != nil {
		return err
	}
	if f.EndYear, err = m.promptYear("End year (blank for none): "); err != nil {
		return err
	}
	return filterMovies(m.p, m.svc, f)
}

func (m *menu) promptYear(label string) (int, error) {
	text, _ := m.prompt(label)
	year, err := movie.ParseYear(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", catalog.ErrInvalidYear, err)
	}
	return year, nil
}
