// Package ui provides a unified interface for rendering command results in
// different formats: rich terminal, plain text, JSON and YAML.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/cyrelease/pkg/ui/json"
	"github.com/arthur-debert/cyrelease/pkg/ui/terminal"
	"github.com/arthur-debert/cyrelease/pkg/ui/text"
	"github.com/arthur-debert/cyrelease/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result (*types.Report, *packaging.Result, ...)
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output to choose between terminal and text.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
