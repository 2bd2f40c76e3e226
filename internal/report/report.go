package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"moviedb/internal/catalog"
	"moviedb/internal/movie"
)

// DefaultTitle heads reports when no title is configured.
const DefaultTitle = "My Movie Collection"

// Markdown renders a collection summary: a heading, a statistics table when
// stats is non-nil, and one table row per movie in the order given.
func Markdown(title string, movies []movie.Movie, stats *catalog.Stats) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", escapeInline(title))
	fmt.Fprintf(&b, "_%s_\n\n", CountLabel(len(movies)))

	if stats != nil && stats.Count > 0 {
		b.WriteString("## Statistics\n\n")
		b.WriteString("| Metric | Value |\n| --- | --- |\n")
		fmt.Fprintf(&b, "| Movies | %d |\n", stats.Count)
		fmt.Fprintf(&b, "| Average rating | %s |\n", formatRating(stats.Mean))
		fmt.Fprintf(&b, "| Median rating | %s |\n", formatRating(stats.Median))
		fmt.Fprintf(&b, "| Best | %s |\n", titledRating(stats.Best))
		fmt.Fprintf(&b, "| Worst | %s |\n", titledRating(stats.Worst))
		b.WriteString("\n")
	}

	b.WriteString("## Movies\n\n")
	if len(movies) == 0 {
		b.WriteString("No movies yet.\n")
		return b.String()
	}
	b.WriteString("| # | Title | Year | Rating |\n| ---: | --- | ---: | ---: |\n")
	for i, m := range movies {
		name := escapeCell(m.Title)
		if link := strings.TrimSpace(m.Link); link != "" {
			name = fmt.Sprintf("[%s](<%s>)", name, strings.ReplaceAll(link, ">", "%3E"))
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", i+1, name, yearLabel(m.Year), formatRating(m.Rating))
	}
	return b.String()
}

// HTML converts a Markdown document to a complete HTML page.
func HTML(title, markdown string) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var out bytes.Buffer
	if err := pageTemplate.Execute(&out, pageData{Title: orDefault(title), Body: trustedHTML(body.String())}); err != nil {
		return nil, fmt.Errorf("render html page: %w", err)
	}
	return out.Bytes(), nil
}

// TerminalStyle selects the glamour style used by RenderTerminal.
type TerminalStyle string

const (
	StylePlain TerminalStyle = TerminalStyle(styles.NoTTYStyle)
	StyleASCII TerminalStyle = TerminalStyle(styles.AsciiStyle)
	StyleDark  TerminalStyle = TerminalStyle(styles.DarkStyle)
	StyleLight TerminalStyle = TerminalStyle(styles.LightStyle)
)

// RenderTerminal formats markdown for a terminal of the given width. A width
// of zero or less disables wrapping.
func RenderTerminal(markdown string, width int, style TerminalStyle) (string, error) {
	if style == "" {
		style = StylePlain
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(string(style)),
		glamour.WithWordWrap(max(width, 0)),
	)
	if err != nil {
		return "", fmt.Errorf("create terminal renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// CountLabel renders "1 movie" or "N movies".
func CountLabel(n int) string {
	if n == 1 {
		return "1 movie"
	}
	return strconv.Itoa(n) + " movies"
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

func yearLabel(year int) string {
	if year == 0 {
		return "unknown"
	}
	return strconv.Itoa(year)
}

func titledRating(movies []movie.Movie) string {
	if len(movies) == 0 {
		return ""
	}
	names := make([]string, len(movies))
	for i, m := range movies {
		names[i] = escapeCell(m.Title)
	}
	return fmt.Sprintf("%s (%s)", strings.Join(names, ", "), formatRating(movies[0].Rating))
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
)

// escapeInline neutralizes Markdown syntax in user-supplied text.
func escapeInline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return inlineEscaper.Replace(s)
}

// escapeCell is escapeInline plus table pipes.
func escapeCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}

func orDefault(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return DefaultTitle
}
