package output

import (
	"io"
	"os"

	"github.com/arthur-debert/agentlink/pkg/errors"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderReport renders the result of a batch command
	RenderReport(report *Report) error

	// RenderMessage renders a simple message with a semantic style name
	RenderMessage(style, msg string) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderDocument renders a markdown document
	RenderDocument(name, content string) error
}

// NewRenderer creates a new renderer based on the specified format.
// FormatAuto inspects output when it is a file and falls back to terminal.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatTerminal, output)
	case FormatTerminal:
		return newTermRenderer(output), nil
	case FormatText:
		return newTextRenderer(output), nil
	case FormatJSON:
		return newJSONRenderer(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
