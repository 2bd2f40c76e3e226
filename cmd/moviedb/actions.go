package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"moviedb/internal/catalog"
	"moviedb/internal/config"
	"moviedb/internal/movie"
	"moviedb/internal/report"
)

// The functions below back both the subcommands and the interactive menu.

const (
	sortNone   = ""
	sortRating = "rating"
	sortYear   = "year"
	sortTitle  = "title"
)

func listMovies(p printer, svc *catalog.Service, sortKey string, desc bool) error {
	listing, err := svc.List()
	if err != nil {
		return err
	}
	movies := listing.Movies
	switch strings.ToLower(strings.TrimSpace(sortKey)) {
	case sortNone:
	case sortRating:
		catalog.SortByRating(movies)
	case sortYear:
		catalog.SortByYear(movies, desc)
	case sortTitle:
		catalog.SortByTitle(movies)
		if desc {
			slices.Reverse(movies)
		}
	default:
		return fmt.Errorf("unsupported sort %q (want rating, year, or title)", sortKey)
	}

	if p.json() {
		out := listJSON{Count: len(movies), Movies: toMoviesJSON(movies)}
		if listing.Warning != nil {
			out.Warning = listing.Warning.Error()
		}
		return writeJSON(p.out, out)
	}
	if listing.Warning != nil {
		p.warn("%v; showing an empty collection", listing.Warning)
	}
	printMovieTable(p, fmt.Sprintf("%s in total", report.CountLabel(len(movies))), movies)
	return nil
}

func printMovieTable(p printer, heading string, movies []movie.Movie) {
	if len(movies) == 0 {
		p.line("No movies found.")
		return
	}
	p.section(heading)
	rows := make([][]string, len(movies))
	for i, m := range movies {
		rows[i] = []string{strconv.Itoa(i + 1), m.Title, yearText(m.Year), ratingText(m.Rating)}
	}
	p.line("%s", renderTable(
		[]string{"#", "Title", "Year", "Rating"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight},
	))
}

func printMovieDetail(p printer, m movie.Movie) {
	rows := [][]string{
		{"Title", m.Title},
		{"Year", yearText(m.Year)},
		{"Rating", ratingText(m.Rating) + "/10"},
		{"Poster", m.Poster},
		{"Link", m.Link},
	}
	p.line("%s", renderTable([]string{"Field", "Value"}, rows, nil))
}

func addMovie(ctx context.Context, p printer, svc *catalog.Service, req catalog.AddRequest) error {
	m, err := svc.Add(ctx, req)
	if err != nil {
		return err
	}
	if p.json() {
		return writeJSON(p.out, toMovieJSON(m))
	}
	p.status(statusOK, "Movie %q (%s) added with rating %s", m.Title, yearText(m.Year), ratingText(m.Rating))
	return nil
}

func deleteMovie(ctx context.Context, p printer, svc *catalog.Service, title string) error {
	if err := svc.Delete(ctx, title); err != nil {
		return err
	}
	if p.json() {
		return writeJSON(p.out, map[string]any{"deleted": strings.TrimSpace(title)})
	}
	p.status(statusOK, "Movie %q deleted", strings.TrimSpace(title))
	return nil
}

func updateMovie(ctx context.Context, p printer, svc *catalog.Service, title string, rating float64) error {
	if err := svc.Update(ctx, title, rating); err != nil {
		return err
	}
	if p.json() {
		return writeJSON(p.out, map[string]any{"updated": strings.TrimSpace(title), "rating": rating})
	}
	p.status(statusOK, "Movie %q now rated %s", strings.TrimSpace(title), ratingText(rating))
	return nil
}

func searchMovies(p printer, svc *catalog.Service, query string) error {
	res, err := svc.Search(query)
	if err != nil {
		return err
	}
	if p.json() {
		return writeJSON(p.out, searchJSON{
			Query:       strings.TrimSpace(query),
			Matches:     toMoviesJSON(res.Matches),
			Suggestions: nonNil(res.Suggestions),
		})
	}
	if len(res.Matches) > 0 {
		printMovieTable(p, fmt.Sprintf("Matches for %q", strings.TrimSpace(query)), res.Matches)
		return nil
	}
	if len(res.Suggestions) == 0 {
		p.status(statusWarn, "No movies match %q and nothing similar was found", strings.TrimSpace(query))
		return nil
	}
	p.status(statusWarn, "No movies match %q. Did you mean:", strings.TrimSpace(query))
	for _, s := range res.Suggestions {
		p.line("  - %s", s)
	}
	return nil
}

func filterMovies(p printer, svc *catalog.Service, f catalog.Filter) error {
	movies, err := svc.Filter(f)
	if err != nil {
		return err
	}
	if p.json() {
		return writeJSON(p.out, listJSON{Count: len(movies), Movies: toMoviesJSON(movies)})
	}
	printMovieTable(p, fmt.Sprintf("%s match", report.CountLabel(len(movies))), movies)
	return nil
}

func showStats(p printer, svc *catalog.Service) error {
	st, err := svc.Stats()
	if err != nil {
		return err
	}
	if p.json() {
		return writeJSON(p.out, toStatsJSON(st))
	}
	rows := [][]string{
		{"Movies", strconv.Itoa(st.Count)},
		{"Average rating", ratingText(st.Mean)},
		{"Median rating", ratingText(st.Median)},
		{"Best", titlesWithRating(st.Best)},
		{"Worst", titlesWithRating(st.Worst)},
	}
	p.line("%s", renderTable([]string{"Metric", "Value"}, rows, nil))
	return nil
}

func showRandom(p printer, svc *catalog.Service) error {
	m, err := svc.Random()
	if err != nil {
		return err
	}
	if p.json() {
		return writeJSON(p.out, toMovieJSON(m))
	}
	p.line("Your movie for tonight: %s (%s), rated %s", m.Title, yearText(m.Year), ratingText(m.Rating))
	printMovieDetail(p, m)
	return nil
}

const histogramBarWidth = 30

func showHistogram(p printer, svc *catalog.Service, bins int) error {
	hist, err := svc.Histogram(bins)
	if err != nil {
		return err
	}
	if p.json() {
		out := make([]binJSON, len(hist))
		for i, b := range hist {
			out[i] = binJSON{Low: b.Low, High: b.High, Count: b.Count}
		}
		return writeJSON(p.out, out)
	}
	peak := 0
	total := 0
	for _, b := range hist {
		peak = max(peak, b.Count)
		total += b.Count
	}
	rows := make([][]string, len(hist))
	for i, b := range hist {
		bar := ""
		if peak > 0 {
			bar = strings.Repeat("#", b.Count*histogramBarWidth/peak)
		}
		rows[i] = []string{b.Label(), strconv.Itoa(b.Count), bar}
	}
	p.line("%s", renderTable(
		[]string{"Rating", "Movies", ""},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft},
		"Total", strconv.Itoa(total),
	))
	return nil
}

// reportFormat names the output of the report command.
type reportFormat string

const (
	reportMarkdown reportFormat = "markdown"
	reportHTML     reportFormat = "html"
	reportTerminal reportFormat = "terminal"
)

// buildReport renders the collection, best rated first, in the requested format.
func buildReport(svc *catalog.Service, title string, format reportFormat, width int, style report.TerminalStyle) ([]byte, error) {
	movies, err := svc.SortedByRating()
	if err != nil {
		return nil, err
	}
	var stats *catalog.Stats
	if st, err := catalog.ComputeStats(movies); err == nil {
		stats = &st
	}
	md := report.Markdown(title, movies, stats)

	switch format {
	case reportMarkdown:
		return []byte(md), nil
	case reportHTML:
		return report.HTML(title, md)
	case reportTerminal:
		out, err := report.RenderTerminal(md, width, style)
		return []byte(out), err
	default:
		return nil, fmt.Errorf("unsupported report format %q (want markdown, html, or terminal)", format)
	}
}

func writeWebsite(p printer, cfg *config.Config, svc *catalog.Service, output, title string) error {
	movies, err := svc.SortedByRating()
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		title = cfg.Report.Title
	}
	target, err := resolveOutputPath(cfg, output, "index.html")
	if err != nil {
		return err
	}
	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create website file: %w", err)
	}
	if err := report.Website(file, title, movies); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close website file: %w", err)
	}
	if p.json() {
		return writeJSON(p.out, map[string]any{"path": target, "count": len(movies)})
	}
	p.status(statusOK, "Website with %s written to %s", report.CountLabel(len(movies)), target)
	return nil
}

// resolveOutputPath places relative output paths under report.output_dir and
// creates the parent directory.
func resolveOutputPath(cfg *config.Config, output, fallback string) (string, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		output = fallback
	}
	var target string
	if filepath.IsAbs(output) || strings.HasPrefix(output, "~") {
		expanded, err := config.ExpandPath(output)
		if err != nil {
			return "", err
		}
		target = expanded
	} else {
		target = filepath.Join(cfg.Report.OutputDir, output)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	return target, nil
}

func yearText(year int) string {
	if year == 0 {
		return "unknown"
	}
	return strconv.Itoa(year)
}

func ratingText(rating float64) string {
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

func titlesWithRating(movies []movie.Movie) string {
	if len(movies) == 0 {
		return ""
	}
	titles := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
	}
	return fmt.Sprintf("%s (%s)", strings.Join(titles, ", "), ratingText(movies[0].Rating))
}

func parseRating(value string) (float64, error) {
	rating, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", catalog.ErrInvalidRating, value)
	}
	return rating, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
