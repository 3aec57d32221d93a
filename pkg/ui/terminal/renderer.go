// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/errors"
	"github.com/arthur-debert/cyrelease/pkg/packaging"
	"github.com/arthur-debert/cyrelease/pkg/types"
	"github.com/arthur-debert/cyrelease/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles and pterm tables
type Renderer struct {
	output io.Writer
	styles styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, styles: styles.Default()}
}

// RenderResult renders any result type with rich terminal formatting
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.Report:
		return r.write(r.report(v))
	case *packaging.Result:
		return r.write(r.pkg(v))
	default:
		return r.write(fmt.Sprintf("%+v\n", result))
	}
}

func (r *Renderer) report(rep *types.Report) string {
	var b strings.Builder
	b.WriteString(r.styles.Render("Header", fmt.Sprintf("%s  %s", rep.Operation, r.styles.Render("Muted", rep.RunID))))
	b.WriteString("\n")

	rows := [][]string{{"Directory", "Compiled", "Skipped", "Missing", "Failed", "Removed", "Time"}}
	for _, t := range rep.Tasks {
		if t == nil {
			continue
		}
		rows = append(rows, []string{
			t.Dir,
			strconv.Itoa(len(t.Compiled)),
			strconv.Itoa(len(t.Skipped)),
			strconv.Itoa(len(t.Missing)),
			strconv.Itoa(len(t.Failed)),
			strconv.Itoa(len(t.Removed)),
			t.Duration.Round(time.Millisecond).String(),
		})
	}
	if table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender(); err == nil {
		b.WriteString(table)
		b.WriteString("\n")
	}

	for _, t := range rep.Tasks {
		if t == nil || (t.OK() && len(t.Missing) == 0) {
			continue
		}
		b.WriteString("\n")
		b.WriteString(r.styles.Render("Dir", t.Dir))
		b.WriteString("\n")
		if t.Error != "" {
			b.WriteString(r.styles.Render("Error", "  "+t.Error))
			b.WriteString("\n")
		}
		for _, f := range t.Failed {
			b.WriteString(r.styles.Render("Bullet", r.styles.Render("Error", "✗ ")+r.styles.Render("FilePath", f)))
			b.WriteString("\n")
		}
		for _, f := range t.Missing {
			b.WriteString(r.styles.Render("Bullet", r.styles.Render("Warning", "? ")+r.styles.Render("FilePath", f)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if rep.OK() {
		b.WriteString(r.styles.Render("Success", "✓ done"))
	} else {
		b.WriteString(r.styles.Render("Error", fmt.Sprintf("✗ %d file(s) failed", len(rep.Failures()))))
	}
	b.WriteString("\n")
	return b.String()
}

func (r *Renderer) pkg(res *packaging.Result) string {
	var b strings.Builder
	b.WriteString(r.styles.Render("Header", "package"))
	b.WriteString("\n")

	rows := [][]string{{"Asset"}}
	for _, a := range res.Assets {
		rows = append(rows, []string{a})
	}
	if len(res.Assets) > 0 {
		if table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender(); err == nil {
			b.WriteString(table)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "%s %s\n", r.styles.Render("Info", "manifest"), r.styles.Render("FilePath", res.Manifest))
	fmt.Fprintf(&b, "%s %s\n", r.styles.Render("Info", "marker  "), r.styles.Render("FilePath", res.Marker))
	if res.ProjectFile != "" {
		fmt.Fprintf(&b, "%s %s\n", r.styles.Render("Info", "project "), r.styles.Render("FilePath", res.ProjectFile))
	}
	if res.Output != "" {
		b.WriteString(r.styles.Render("Muted", res.Output))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Render("Success", "✓ distribution built"))
	b.WriteString("\n")
	return b.String()
}

// RenderError renders an error with its code and captured toolchain output
func (r *Renderer) RenderError(err error) error {
	var b strings.Builder
	b.WriteString(r.styles.Render("Error", "Error: ") + err.Error() + "\n")
	if stderr, ok := errors.GetErrorDetails(err)["stderr"].(string); ok && stderr != "" {
		b.WriteString(r.styles.Render("Muted", stderr))
		b.WriteString("\n")
	}
	return r.write(b.String())
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.write(r.styles.Render("Info", msg) + "\n")
}

func (r *Renderer) write(s string) error {
	_, err := io.WriteString(r.output, s)
	return err
}
