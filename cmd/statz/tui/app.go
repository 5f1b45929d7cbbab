package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/statz-dev/statz/pkg/statz/collect"
)

// gaugeWidth is the block count of every utilization gauge.
const gaugeWidth = 20

// Options configures the dashboard.
type Options struct {
	// Selection picks which components to display.
	Selection collect.Selection

	// Refresh is the delay between samples.
	Refresh time.Duration

	// SampleWindow is the window for rate-based readings within one
	// refresh.
	SampleWindow time.Duration
}

// sampleMsg delivers a completed usage sample.
type sampleMsg struct {
	sample *collect.UsageSample
	temps  []collect.TempReading
	taken  time.Time
}

// Model is the Bubble Tea model for the statz dashboard.
type Model struct {
	options Options

	sample *collect.UsageSample
	temps  []collect.TempReading
	lastAt time.Time

	// Window dimensions
	width  int
	height int
}

// NewModel creates a dashboard model with the given options.
func NewModel(opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = 2 * time.Second
	}
	if opts.SampleWindow <= 0 {
		opts.SampleWindow = collect.DefaultInterval
	}
	if !opts.Selection.Any() {
		opts.Selection = collect.AllComponents()
	}

	return Model{
		options: opts,
		width:   80,
		height:  24,
	}
}

// Init starts the first sample immediately.
func (m Model) Init() tea.Cmd {
	return m.takeSample(0)
}

// takeSample samples usage off the UI goroutine after the given delay.
func (m Model) takeSample(delay time.Duration) tea.Cmd {
	sel := m.options.Selection
	window := m.options.SampleWindow
	return func() tea.Msg {
		time.Sleep(delay)
		sample := collect.TakeUsageSample(sel, collect.UsageOptions{Interval: window})
		temps, _ := collect.Temperatures()
		return sampleMsg{sample: sample, temps: temps, taken: time.Now()}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case sampleMsg:
		m.sample = msg.sample
		m.temps = msg.temps
		m.lastAt = msg.taken
		// The sampling window already consumed part of the refresh
		// delay; subtract it so updates stay on cadence.
		delay := m.options.Refresh - m.options.SampleWindow
		if delay < 0 {
			delay = 0
		}
		return m, m.takeSample(delay)
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("  statz dashboard"))
	if !m.lastAt.IsZero() {
		b.WriteString(valueStyle.Render(fmt.Sprintf("  (updated %s)", humanize.Time(m.lastAt))))
	}
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", max(m.width-6, 10))))
	b.WriteString("\n\n")

	if m.sample == nil {
		b.WriteString(valueStyle.Render("  Sampling..."))
		b.WriteString("\n")
	} else {
		m.renderSections(&b)
	}

	b.WriteString("\n")
	b.WriteString("  " + keyStyle.Render("[q]") + " " + keyDescStyle.Render("quit"))
	b.WriteString("\n")

	return outerBoxStyle.Width(max(m.width-2, 20)).Render(b.String())
}

// renderSections writes each selected component's metrics.
func (m Model) renderSections(b *strings.Builder) {
	sel := m.options.Selection
	sample := m.sample

	if sel.CPU {
		b.WriteString(sectionStyle.Render("  CPU"))
		b.WriteString("\n")
		if sample.CPUErr != nil {
			m.writeError(b, sample.CPUErr.Error())
		} else {
			for _, core := range sample.Cores {
				m.writeGauge(b, core.Name, core.Percent)
			}
			m.writeGauge(b, "average", sample.CPUAverage())
		}
		b.WriteString("\n")
	}

	if sel.RAM {
		b.WriteString(sectionStyle.Render("  RAM"))
		b.WriteString("\n")
		if sample.RAMErr != nil {
			m.writeError(b, sample.RAMErr.Error())
		} else {
			m.writeGauge(b, "used", sample.RAM.Percent)
			m.writeValue(b, "total", fmt.Sprintf("%.0f MB", sample.RAM.TotalMB))
			m.writeValue(b, "available", fmt.Sprintf("%.0f MB", sample.RAM.AvailableMB))
		}
		b.WriteString("\n")
	}

	if sel.Disk {
		b.WriteString(sectionStyle.Render("  DISK"))
		b.WriteString("\n")
		if sample.DisksErr != nil {
			m.writeError(b, sample.DisksErr.Error())
		} else {
			m.writeGauge(b, "root used", sample.RootUsedPercent)
			for _, disk := range sample.Disks {
				m.writeValue(b, disk.Device,
					fmt.Sprintf("read %.2f MB/s  write %.2f MB/s", disk.ReadMBps, disk.WriteMBps))
			}
		}
		b.WriteString("\n")
	}

	if sel.Network {
		b.WriteString(sectionStyle.Render("  NETWORK"))
		b.WriteString("\n")
		if sample.NetErr != nil {
			m.writeError(b, sample.NetErr.Error())
		} else {
			m.writeValue(b, "sent", fmt.Sprintf("%.2f MB/s", sample.Net.SentMBps))
			m.writeValue(b, "received", fmt.Sprintf("%.2f MB/s", sample.Net.RecvMBps))
		}
		b.WriteString("\n")
	}

	if len(m.temps) > 0 {
		b.WriteString(sectionStyle.Render("  TEMPS"))
		b.WriteString("\n")
		for _, reading := range m.temps {
			m.writeValue(b, reading.Sensor, fmt.Sprintf("%.1f °C", reading.Celsius))
		}
		b.WriteString("\n")
	}

	if sel.Battery {
		b.WriteString(sectionStyle.Render("  BATTERY"))
		b.WriteString("\n")
		if sample.BatteryErr != nil {
			m.writeError(b, sample.BatteryErr.Error())
		} else {
			m.writeGauge(b, "charge", sample.Battery.Percent)
			state := "discharging"
			if sample.Battery.PluggedIn {
				state = "plugged in"
			}
			m.writeValue(b, "state", state)
			if sample.Battery.TimeLeftMins > 0 {
				m.writeValue(b, "time left", fmt.Sprintf("%d min", sample.Battery.TimeLeftMins))
			}
		}
		b.WriteString("\n")
	}
}

// writeGauge renders one labelled utilization gauge.
func (m Model) writeGauge(b *strings.Builder, label string, percent float64) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100 * gaugeWidth)
	gauge := gaugeStyleFor(percent).Render(strings.Repeat("█", filled)) +
		gaugeEmptyStyle.Render(strings.Repeat("░", gaugeWidth-filled))

	fmt.Fprintf(b, "  %s %s %5.1f%%\n", labelStyle.Render(label), gauge, percent)
}

// writeValue renders one labelled plain value.
func (m Model) writeValue(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) writeError(b *strings.Builder, msg string) {
	b.WriteString("  " + errorTextStyle.Render(msg) + "\n")
}

// gaugeStyleFor picks the gauge fill color for a load percentage.
func gaugeStyleFor(percent float64) lipgloss.Style {
	switch {
	case percent >= 85:
		return gaugeHighStyle
	case percent >= 60:
		return gaugeMidStyle
	default:
		return gaugeLowStyle
	}
}

// Run starts the dashboard.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
