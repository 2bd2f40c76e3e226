package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func renderStatusLine(kind statusKind, message string, colorize bool) string {
	base := fmt.Sprintf("[%s] %s", statusKindLabel(kind), message)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printer writes human output to stdout and warnings to stderr, colouring
// each stream only when it is a terminal.
type printer struct {
	out       io.Writer
	errOut    io.Writer
	colorOut  bool
	colorErr  bool
	jsonValue bool
}

func newPrinter(cmd *cobra.Command, jsonOutput bool) printer {
	return printer{
		out:       cmd.OutOrStdout(),
		errOut:    cmd.ErrOrStderr(),
		colorOut:  shouldColorize(cmd.OutOrStdout()),
		colorErr:  shouldColorize(cmd.ErrOrStderr()),
		jsonValue: jsonOutput,
	}
}

func (p printer) json() bool { return p.jsonValue }

func (p printer) line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p printer) status(kind statusKind, format string, args ...any) {
	fmt.Fprintln(p.out, renderStatusLine(kind, fmt.Sprintf(format, args...), p.colorOut))
}

func (p printer) warn(format string, args ...any) {
	fmt.Fprintln(p.errOut, renderStatusLine(statusWarn, fmt.Sprintf(format, args...), p.colorErr))
}

func (p printer) section(title string) {
	for _, line := range renderSectionHeader(title, p.colorOut) {
		fmt.Fprintln(p.out, line)
	}
}
