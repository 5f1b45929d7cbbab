package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/statz-dev/statz/pkg/statz/collect"
)

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel(Options{})

	if m.options.Refresh != 2*time.Second {
		t.Errorf("Refresh = %v, want 2s", m.options.Refresh)
	}
	if m.options.SampleWindow != collect.DefaultInterval {
		t.Errorf("SampleWindow = %v, want %v", m.options.SampleWindow, collect.DefaultInterval)
	}
	if !m.options.Selection.Any() {
		t.Error("empty selection should default to all components")
	}
}

func TestView_BeforeFirstSample(t *testing.T) {
	m := NewModel(Options{})

	view := m.View()

	if !strings.Contains(view, "Sampling...") {
		t.Errorf("view missing sampling placeholder:\n%s", view)
	}
	if !strings.Contains(view, "statz dashboard") {
		t.Errorf("view missing title:\n%s", view)
	}
}

func TestUpdate_SampleMsgStoresReadingAndReschedules(t *testing.T) {
	m := NewModel(Options{Selection: collect.Selection{CPU: true}})

	sample := &collect.UsageSample{Cores: []collect.CorePercent{{Name: "cpu0", Percent: 42.5}}}
	updated, cmd := m.Update(sampleMsg{sample: sample, taken: time.Now()})

	model := updated.(Model)
	if model.sample != sample {
		t.Error("sample not stored")
	}
	if cmd == nil {
		t.Error("expected a reschedule command")
	}

	view := model.View()
	if !strings.Contains(view, "cpu0") {
		t.Errorf("view missing core gauge:\n%s", view)
	}
	if !strings.Contains(view, "42.5%") {
		t.Errorf("view missing percentage:\n%s", view)
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	m := NewModel(Options{})

	for _, key := range []string{"q", "esc", "ctrl+c"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
			continue
		}
		if msg := cmd(); msg != tea.Quit() {
			t.Errorf("key %q returned %v, want tea.Quit", key, msg)
		}
	}
}

func TestView_ComponentErrors(t *testing.T) {
	m := NewModel(Options{Selection: collect.Selection{Battery: true}})
	sample := &collect.UsageSample{BatteryErr: errors.New("Battery information not available on this system")}

	updated, _ := m.Update(sampleMsg{sample: sample, taken: time.Now()})

	view := updated.(Model).View()
	if !strings.Contains(view, "not available on this system") {
		t.Errorf("view missing error entry:\n%s", view)
	}
}

// keyMsg builds a tea.KeyMsg for a key name.
func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}
