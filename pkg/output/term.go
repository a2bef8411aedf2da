package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/agentlink/pkg/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

// statusSymbols prefix each target line
var statusSymbols = map[Status]string{
	StatusOK:      "✓",
	StatusChanged: "✚",
	StatusSkipped: "•",
	StatusDrift:   "!",
	StatusError:   "✗",
}

// statusStyles maps statuses to style names
var statusStyles = map[Status]string{
	StatusOK:      "Success",
	StatusChanged: "Changed",
	StatusSkipped: "Skipped",
	StatusDrift:   "Drift",
	StatusError:   "Error",
}

// termRenderer renders rich terminal output with lipgloss styles
type termRenderer struct {
	output   io.Writer
	renderer *lipgloss.Renderer
}

func newTermRenderer(w io.Writer) *termRenderer {
	return &termRenderer{output: w, renderer: lipgloss.NewRenderer(w)}
}

// style binds a registry style to this renderer's color profile
func (r *termRenderer) style(name string) lipgloss.Style {
	return r.renderer.NewStyle().Inherit(styles.GetStyle(name))
}

func (r *termRenderer) RenderReport(report *Report) error {
	var b strings.Builder

	header := fmt.Sprintf("agentlink %s", report.Command)
	b.WriteString(r.style("Header").Render(header))
	b.WriteString(" ")
	b.WriteString(r.style("Muted").Render("source: " + report.Source))
	b.WriteString("\n")
	if report.DryRun {
		b.WriteString(r.style("DryRun").Render("dry run: no changes were made"))
		b.WriteString("\n")
	}

	width := 0
	for _, item := range report.Items {
		if len(item.Target) > width {
			width = len(item.Target)
		}
	}

	for _, item := range report.Items {
		st := r.style(statusStyles[item.Status])
		line := fmt.Sprintf("  %s %s  %s",
			st.Render(statusSymbols[item.Status]),
			r.style("Target").Render(fmt.Sprintf("%-*s", width, item.Target)),
			st.Render(fmt.Sprintf("%-17s", item.Outcome)),
		)
		if item.Error != "" {
			line += " " + r.style("Error").Render(item.Error)
		} else if item.Detail != "" {
			line += " " + r.style("Muted").Render(item.Detail)
		}
		b.WriteString(line + "\n")
	}

	if _, err := io.WriteString(r.output, b.String()); err != nil {
		return err
	}

	summary := summaryLine(report.Summary)
	switch {
	case report.Summary.Failed > 0:
		pterm.Error.WithWriter(r.output).Println(summary)
	case report.Summary.Drift > 0:
		pterm.Warning.WithWriter(r.output).Println(summary)
	default:
		pterm.Success.WithWriter(r.output).Println(summary)
	}
	return nil
}

func (r *termRenderer) RenderMessage(style, msg string) error {
	_, err := fmt.Fprintln(r.output, r.style(style).Render(msg))
	return err
}

func (r *termRenderer) RenderError(err error) error {
	pterm.Error.WithWriter(r.output).Println(err.Error())
	return nil
}

func (r *termRenderer) RenderDocument(name, content string) error {
	md := NewMarkdownRenderer()
	_, err := io.WriteString(r.output, md.Render(content))
	return err
}
