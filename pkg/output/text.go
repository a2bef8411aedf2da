package output

import (
	"fmt"
	"io"
	"strings"
)

// textRenderer provides plain text output without colors or styling
type textRenderer struct {
	output io.Writer
}

func newTextRenderer(w io.Writer) *textRenderer {
	return &textRenderer{output: w}
}

func (r *textRenderer) RenderReport(report *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (source: %s)\n", report.Command, report.Source)
	if report.DryRun {
		b.WriteString("DRY RUN: no changes were made\n")
	}
	for _, item := range report.Items {
		fmt.Fprintf(&b, "  %-17s %s", item.Outcome, item.Target)
		if item.Error != "" {
			fmt.Fprintf(&b, ": %s", item.Error)
		} else if item.Detail != "" {
			fmt.Fprintf(&b, ": %s", item.Detail)
		}
		b.WriteString("\n")
	}
	b.WriteString(summaryLine(report.Summary) + "\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *textRenderer) RenderMessage(style, msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *textRenderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

func (r *textRenderer) RenderDocument(name, content string) error {
	_, err := io.WriteString(r.output, content)
	return err
}

// summaryLine is shared by the text and terminal renderers
func summaryLine(s Summary) string {
	parts := []string{fmt.Sprintf("%d targets", s.Total)}
	for _, p := range []struct {
		n     int
		label string
	}{
		{s.Changed, "changed"},
		{s.OK, "ok"},
		{s.Skipped, "skipped"},
		{s.Drift, "need attention"},
		{s.Failed, "failed"},
	} {
		if p.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", p.n, p.label))
		}
	}
	return strings.Join(parts, ", ")
}
