package output

import (
	"bytes"
	"encoding/json"
)

// JSONFormatter formats a document as a single indented JSON object.
// Map keys keep their snapshot insertion order.
type JSONFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *JSONFormatter) Format(w *bytes.Buffer, doc *Document) error {
	data, err := json.MarshalIndent(doc.Data, "", "  ")
	if err != nil {
		return err
	}
	w.Write(data)
	w.WriteByte('\n')
	return nil
}

func init() {
	Register("json", func() Formatter {
		return &JSONFormatter{}
	})
}

// Ensure JSONFormatter implements Formatter.
var _ Formatter = (*JSONFormatter)(nil)
