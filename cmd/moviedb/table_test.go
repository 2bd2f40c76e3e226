package main

import (
	"strings"
	"testing"
)

func TestRenderTableFooterPadsShortRowAndKeepsCase(t *testing.T) {
	out := renderTable(
		[]string{"Rating", "Movies", ""},
		[][]string{{"8-9", "2", "##"}},
		[]columnAlignment{alignLeft, alignRight, alignLeft},
		"Total", "2",
	)
	if !strings.Contains(out, "Total") {
		t.Fatalf("footer label missing or re-cased:\n%s", out)
	}
	if strings.Contains(out, "TOTAL") {
		t.Fatalf("footer was upper-cased:\n%s", out)
	}
	if strings.Contains(out, "<NIL>") || strings.Contains(out, "<nil>") {
		t.Fatalf("unfilled footer cell rendered as nil:\n%s", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Title", "Year"}, [][]string{{"Heat"}}, nil)
	if !strings.Contains(out, "Heat") {
		t.Fatalf("row missing:\n%s", out)
	}
	if strings.Contains(strings.ToLower(out), "<nil>") {
		t.Fatalf("padded cell rendered as nil:\n%s", out)
	}
}

func TestRenderTableWithoutHeaders(t *testing.T) {
	if out := renderTable(nil, [][]string{{"x"}}, nil); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}
