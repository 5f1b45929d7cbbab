package output

import (
	"bytes"
	"text/tabwriter"

	"github.com/statz-dev/statz/pkg/statz/flatten"
)

// PlainFormatter formats a document as a simple tab-separated table of
// flattened key paths. It produces plain text output suitable for
// scripting and piping. No colors or styling are applied.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, doc *Document) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)

	if _, err := tw.Write([]byte("KEY\tVALUE\n")); err != nil {
		return err
	}

	for _, entry := range flatten.Flatten(doc.Data) {
		if _, err := tw.Write([]byte(entry.Path + "\t" + entry.Value + "\n")); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
