// Package report renders a movie collection for people rather than programs:
// a Markdown summary, that summary converted to HTML, a styled terminal view,
// and a standalone static website with a poster grid.
package report
