package output

import (
	"bytes"
	"encoding/csv"

	"github.com/statz-dev/statz/pkg/statz/flatten"
)

// CSVFormatter formats a document as Key,Value rows over the flattened
// snapshot. The output round-trips through the flat loader tier.
type CSVFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *CSVFormatter) Format(w *bytes.Buffer, doc *Document) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Key", "Value"}); err != nil {
		return err
	}
	for _, entry := range flatten.Flatten(doc.Data) {
		if err := cw.Write([]string{entry.Path, entry.Value}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func init() {
	Register("csv", func() Formatter {
		return &CSVFormatter{}
	})
}

// Ensure CSVFormatter implements Formatter.
var _ Formatter = (*CSVFormatter)(nil)
