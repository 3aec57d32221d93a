// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"time"

	"github.com/arthur-debert/cyrelease/pkg/packaging"
	"github.com/arthur-debert/cyrelease/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.Report:
		return r.renderReport(v)
	case *packaging.Result:
		return r.renderPackage(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

func (r *Renderer) renderReport(rep *types.Report) error {
	w := &errWriter{w: r.output}
	w.printf("%s (run %s)\n", rep.Operation, rep.RunID)
	for _, t := range rep.Tasks {
		if t == nil {
			continue
		}
		w.printf("%s: compiled %d, skipped %d, missing %d, failed %d, removed %d (%s)\n",
			t.Dir, len(t.Compiled), len(t.Skipped), len(t.Missing), len(t.Failed), len(t.Removed),
			t.Duration.Round(time.Millisecond))
		if t.Error != "" {
			w.printf("  error: %s\n", t.Error)
		}
		for _, f := range t.Missing {
			w.printf("  missing: %s\n", f)
		}
		for _, f := range t.Failed {
			w.printf("  failed: %s\n", f)
		}
	}
	if rep.OK() {
		w.printf("ok\n")
	} else {
		w.printf("%d file(s) failed\n", len(rep.Failures()))
	}
	return w.err
}

func (r *Renderer) renderPackage(res *packaging.Result) error {
	w := &errWriter{w: r.output}
	w.printf("manifest: %s (%d assets)\n", res.Manifest, len(res.Assets))
	for _, a := range res.Assets {
		w.printf("  include %s\n", a)
	}
	w.printf("marker: %s\n", res.Marker)
	if res.ProjectFile != "" {
		w.printf("project: %s\n", res.ProjectFile)
	}
	if res.Output != "" {
		w.printf("%s\n", res.Output)
	}
	return w.err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

// errWriter keeps the first write error so rendering code stays linear
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
