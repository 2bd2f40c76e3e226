package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileStore is a Storage bound to one collection file.
type FileStore interface {
	Storage
	Path() string
	Format() string
}

// Open returns the backend for format ("json", "csv" or "auto"). Auto picks
// CSV for a .csv extension and JSON for everything else.
func Open(path, format string, opts ...Option) (FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	switch resolved := ResolveFormat(path, format); resolved {
	case "json":
		return NewJSON(path, opts...), nil
	case "csv":
		return NewCSV(path, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported storage format %q", format)
	}
}

// ResolveFormat maps a configured format to a concrete backend name.
func ResolveFormat(path, format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && format != "auto" {
		return format
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return "csv"
	}
	return "json"
}
