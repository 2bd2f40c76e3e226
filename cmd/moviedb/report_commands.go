package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"moviedb/internal/report"
)

const terminalWidth = 100

func newReportCommand(ctx *commandContext) *cobra.Command {
	var kind string
	var output string
	var title string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a Markdown, HTML, or terminal report of the collection",
		Long: `Render a report with rating statistics and every movie, best rated first.

Markdown printed to a terminal is styled for reading; redirect or use -o to
get the raw document. Relative -o paths are placed under report.output_dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureService()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(title) == "" {
				title = cfg.Report.Title
			}

			format := reportFormat(strings.ToLower(strings.TrimSpace(kind)))
			out := cmd.OutOrStdout()
			styled := output == "" && format == reportMarkdown && shouldColorize(out)
			style := report.StylePlain
			if styled {
				format, style = reportTerminal, report.StyleDark
			}

			data, err := buildReport(svc, title, format, terminalWidth, style)
			if err != nil {
				return err
			}
			if output == "" {
				_, err := out.Write(data)
				return err
			}

			fallback := "report.md"
			if format == reportHTML {
				fallback = "report.html"
			}
			target, err := resolveOutputPath(cfg, output, fallback)
			if err != nil {
				return err
			}
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			p := newPrinter(cmd, ctx.jsonOutput())
			if p.json() {
				return writeJSON(p.out, map[string]any{"path": target, "format": string(format)})
			}
			p.status(statusOK, "Report written to %s", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", string(reportMarkdown), "Report type: markdown, html, or terminal")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&title, "title", "", "Report heading (default from report.title)")
	return cmd
}

func newWebsiteCommand(ctx *commandContext) *cobra.Command {
	var output string
	var title string

	cmd := &cobra.Command{
		Use:   "website",
		Short: "Generate a static HTML page with a poster grid",
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
			return writeWebsite(newPrinter(cmd, ctx.jsonOutput()), cfg, svc, output, title)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (default index.html under report.output_dir)")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default from report.title)")
	return cmd
}
