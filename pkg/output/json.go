package output

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/agentlink/pkg/errors"
)

// jsonRenderer provides JSON output for machine consumption
type jsonRenderer struct {
	encoder *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return &jsonRenderer{encoder: encoder}
}

func (r *jsonRenderer) RenderReport(report *Report) error {
	return r.encoder.Encode(report)
}

func (r *jsonRenderer) RenderMessage(style, msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}

func (r *jsonRenderer) RenderError(err error) error {
	obj := map[string]interface{}{
		"error": err.Error(),
		"code":  errors.GetErrorCode(err),
	}
	if details := errors.GetErrorDetails(err); len(details) > 0 {
		obj["details"] = details
	}
	return r.encoder.Encode(obj)
}

func (r *jsonRenderer) RenderDocument(name, content string) error {
	return r.encoder.Encode(map[string]string{"source": name, "content": content})
}
