package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"moviedb/internal/movie"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	funcs = template.FuncMap{
		"yearLabel": yearLabel,
		"rating":    formatRating,
	}
	websiteTemplate = template.Must(template.New("website.html").Funcs(funcs).ParseFS(templateFS, "templates/website.html"))
	pageTemplate    = template.Must(template.New("page.html").ParseFS(templateFS, "templates/page.html"))
)

type pageData struct {
	Title string
	Body  template.HTML
}

// trustedHTML marks goldmark output as safe. goldmark escapes raw HTML in its
// input by default, so the converted body carries no user markup.
func trustedHTML(s string) template.HTML {
	return template.HTML(s) //nolint:gosec
}

type websiteData struct {
	Title     string
	Movies    []movie.Movie
	Generated time.Time
}

// WebsiteOption adjusts Website output.
type WebsiteOption func(*websiteData)

// WithGenerated stamps the page with a generation date.
func WithGenerated(t time.Time) WebsiteOption {
	return func(d *websiteData) { d.Generated = t }
}

// Website writes a standalone HTML page showing movies as a poster grid. All
// movie fields are escaped by html/template; URLs that are not http(s) are
// replaced with a harmless placeholder by the template engine.
func Website(w io.Writer, title string, movies []movie.Movie, opts ...WebsiteOption) error {
	data := websiteData{Title: orDefault(title), Movies: make([]movie.Movie, len(movies))}
	for i, m := range movies {
		if m.Poster == "" {
			m.Poster = movie.PlaceholderPoster
		}
		data.Movies[i] = m.WithDefaults()
	}
	for _, opt := range opts {
		opt(&data)
	}
	if err := websiteTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render website: %w", err)
	}
	return nil
}
