package storage

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"moviedb/internal/movie"
)

var csvHeader = []string{"title", "year", "rating", "poster", "link"}

// CSVStore keeps the collection as comma-separated rows under the header
// title,year,rating,poster,link. Row order is insertion order.
type CSVStore struct {
	*fileStore
}

var _ Storage = (*CSVStore)(nil)

// NewCSV returns a CSV-backed store for path. The file need not exist.
func NewCSV(path string, opts ...Option) *CSVStore {
	return &CSVStore{fileStore: newFileStore(path, csvCodec{}, opts...)}
}

type csvCodec struct{}

func (csvCodec) format() string { return "csv" }

func (csvCodec) decode(r io.Reader) (*movie.Collection, error) {
	c := movie.NewCollection()

	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && string(bom) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return c, nil
	}
	if err != nil {
		return nil, csvReadError(err)
	}
	columns, err := indexHeader(header)
	if err != nil {
		return nil, malformedAt(1, err)
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return c, nil
		}
		if err != nil {
			return nil, csvReadError(err)
		}
		line, _ := reader.FieldPos(0)
		if blankRecord(record) {
			continue
		}
		m, err := columns.movie(record)
		if err != nil {
			return nil, malformedAt(line, err)
		}
		if !c.Insert(m.WithDefaults()) {
			return nil, malformedAt(line, fmt.Errorf("movie %q appears more than once", m.Title))
		}
	}
}

// csvColumns maps each known field to its position in the header, or -1.
type csvColumns struct {
	title, year, rating, poster, link int
}

func indexHeader(header []string) (csvColumns, error) {
	cols := csvColumns{title: -1, year: -1, rating: -1, poster: -1, link: -1}
	for i, name := range header {
		var slot *int
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "title":
			slot = &cols.title
		case "year":
			slot = &cols.year
		case "rating":
			slot = &cols.rating
		case "poster":
			slot = &cols.poster
		case "link":
			slot = &cols.link
		default:
			continue
		}
		if *slot >= 0 {
			return cols, fmt.Errorf("column %q repeated in header", name)
		}
		*slot = i
	}
	if cols.title < 0 {
		return cols, errors.New(`header is missing the "title" column`)
	}
	if cols.rating < 0 {
		return cols, errors.New(`header is missing the "rating" column`)
	}
	return cols, nil
}

func (cols csvColumns) movie(record []string) (movie.Movie, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	m := movie.Movie{
		Title:  field(cols.title),
		Poster: strings.TrimSpace(field(cols.poster)),
		Link:   strings.TrimSpace(field(cols.link)),
	}
	if strings.TrimSpace(m.Title) == "" {
		return m, movie.ErrEmptyTitle
	}

	rawRating := strings.TrimSpace(field(cols.rating))
	if rawRating == "" {
		return m, fmt.Errorf("movie %q: rating is required", m.Title)
	}
	rating, err := strconv.ParseFloat(rawRating, 64)
	if err != nil {
		return m, fmt.Errorf("movie %q: rating %q is not a number", m.Title, rawRating)
	}
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return m, fmt.Errorf("movie %q: %w", m.Title, movie.ErrNonFiniteRating)
	}
	m.Rating = rating

	year, err := movie.ParseYear(field(cols.year))
	if err != nil {
		return m, fmt.Errorf("movie %q: %w", m.Title, err)
	}
	m.Year = year
	return m, nil
}

func (csvCodec) encode(w io.Writer, c *movie.Collection) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range c.Movies() {
		year := ""
		if m.Year != 0 {
			year = strconv.Itoa(m.Year)
		}
		row := []string{
			m.Title,
			year,
			strconv.FormatFloat(m.Rating, 'f', -1, 64),
			m.Poster,
			m.Link,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("encode movie %q: %w", m.Title, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func blankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// csvReadError turns parser errors into malformed-data errors and passes
// through everything else.
func csvReadError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return malformedAt(parseErr.Line, parseErr.Err)
	}
	return err
}
