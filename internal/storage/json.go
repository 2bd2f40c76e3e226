package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"moviedb/internal/movie"
)

const jsonIndent = "    "

// JSONStore keeps the collection in a single JSON document:
//
//	{"movies": {"<title>": {"year": 2010, "rating": 8.8, "poster": "...", "link": "..."}}}
//
// Titles are object keys in insertion order.
type JSONStore struct {
	*fileStore
}

var _ Storage = (*JSONStore)(nil)

// NewJSON returns a JSON-backed store for path. The file need not exist.
func NewJSON(path string, opts ...Option) *JSONStore {
	return &JSONStore{fileStore: newFileStore(path, jsonCodec{}, opts...)}
}

type jsonCodec struct{}

func (jsonCodec) format() string { return "json" }

// jsonRecord is the on-disk value stored under each title key.
type jsonRecord struct {
	Year   jsonYear `json:"year"`
	Rating *float64 `json:"rating"`
	Poster string   `json:"poster"`
	Link   string   `json:"link"`
}

// jsonYear accepts a number or numeric text so files written by hand or by
// older tools that quoted the year still load.
type jsonYear int

func (y *jsonYear) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*y = 0
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		year, err := movie.ParseYear(text)
		if err != nil {
			return err
		}
		*y = jsonYear(year)
		return nil
	}
	var number float64
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return fmt.Errorf("year must be a number or numeric string: %w", err)
	}
	if number != math.Trunc(number) {
		return fmt.Errorf("year must be a whole number, got %v", number)
	}
	*y = jsonYear(number)
	return nil
}

func (jsonCodec) decode(r io.Reader) (*movie.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	c := movie.NewCollection()
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	fail := func(err error) error {
		return malformedAt(lineAt(data, dec.InputOffset()), err)
	}

	if err := expectDelim(dec, '{'); err != nil {
		return nil, fail(err)
	}
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, fail(err)
		}
		if key != "movies" {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, fail(err)
			}
			continue
		}
		if err := decodeMovies(dec, c); err != nil {
			return nil, fail(err)
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fail(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fail(errors.New("unexpected data after top-level object"))
	}
	return c, nil
}

func decodeMovies(dec *json.Decoder, c *movie.Collection) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf(`"movies" must be an object keyed by title, got %v`, describeToken(tok))
	}
	for dec.More() {
		title, err := readKey(dec)
		if err != nil {
			return err
		}
		var rec jsonRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("movie %q: %w", title, err)
		}
		if rec.Rating == nil {
			return fmt.Errorf("movie %q: rating is required", title)
		}
		m := movie.Movie{
			Title:  title,
			Year:   int(rec.Year),
			Rating: *rec.Rating,
			Poster: rec.Poster,
			Link:   rec.Link,
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("movie %q: %w", title, err)
		}
		if !c.Insert(m.WithDefaults()) {
			return fmt.Errorf("movie %q appears more than once", title)
		}
	}
	return expectDelim(dec, '}')
}

func (jsonCodec) encode(w io.Writer, c *movie.Collection) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	buf.WriteString(jsonIndent + `"movies": {`)

	movies := c.Movies()
	for i, m := range movies {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n" + jsonIndent + jsonIndent)
		key, err := marshalNoEscape(m.Title, "", "")
		if err != nil {
			return fmt.Errorf("encode title %q: %w", m.Title, err)
		}
		buf.Write(key)
		buf.WriteString(": ")
		value, err := marshalNoEscape(struct {
			Year   int     `json:"year"`
			Rating float64 `json:"rating"`
			Poster string  `json:"poster"`
			Link   string  `json:"link"`
		}{m.Year, m.Rating, m.Poster, m.Link}, jsonIndent+jsonIndent, jsonIndent)
		if err != nil {
			return fmt.Errorf("encode movie %q: %w", m.Title, err)
		}
		buf.Write(value)
	}
	if len(movies) > 0 {
		buf.WriteString("\n" + jsonIndent)
	}
	buf.WriteString("}\n}\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// marshalNoEscape is json.MarshalIndent without HTML escaping, so titles
// such as "Malcolm & Marie" stay readable on disk.
func marshalNoEscape(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent(prefix, indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", string(want), describeToken(tok))
	}
	return nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", describeToken(tok))
	}
	return key, nil
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case json.Delim:
		return fmt.Sprintf("%q", string(v))
	case string:
		return fmt.Sprintf("string %q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func lineAt(data []byte, offset int64) int {
	if offset < 0 {
		return 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	return strings.Count(string(data[:offset]), "\n") + 1
}
