package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/statz-dev/statz/pkg/statz/flatten"
	"github.com/statz-dev/statz/pkg/statz/snapshot"
)

// PrettyFormatter formats a document with colors and styling using
// lipgloss. It produces a visually appealing output suitable for
// terminal display: one section per top-level component, with the
// component's subtree flattened into label/value lines.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, doc *Document) error {
	if doc.Title != "" {
		w.WriteString(HeaderBox.Render(TitleStyle.Render(doc.Title)))
		w.WriteString("\n")
	}

	root, ok := doc.Data.(*snapshot.Map)
	if !ok {
		// Scalar or sequence roots have no sections to head.
		for _, entry := range flatten.Flatten(doc.Data) {
			f.writeLine(w, entry.Path, entry.Value)
		}
		return nil
	}

	for _, key := range root.Keys() {
		section, _ := root.Get(key)
		w.WriteString(SectionStyle.Render(strings.ToUpper(key)))
		w.WriteString("\n")
		f.writeSection(w, section)
		w.WriteString("\n")
	}
	return nil
}

// writeSection renders one component subtree as indented lines.
func (f *PrettyFormatter) writeSection(w *bytes.Buffer, section snapshot.Node) {
	if isErrorEntry(section) {
		m := section.(*snapshot.Map)
		msg, _ := m.Get("error")
		text, _ := snapshot.Text(msg)
		w.WriteString("  " + ErrorStyle.Render(text) + "\n")
		return
	}

	for _, entry := range flatten.Flatten(section) {
		f.writeLine(w, entry.Path, entry.Value)
	}
}

func (f *PrettyFormatter) writeLine(w *bytes.Buffer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n",
		LabelStyle.Render(label+":"),
		ValueStyle.Render(value))
}

// isErrorEntry reports whether a node is a single-key {"error": ...}
// map, the shape collectors use for unavailable components.
func isErrorEntry(n snapshot.Node) bool {
	m, ok := n.(*snapshot.Map)
	if !ok || m.Len() != 1 {
		return false
	}
	return m.Has("error")
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
