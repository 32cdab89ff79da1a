package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DawnLiExplorer/Me2Comic/internal/processor"
)

// Model renders a running conversion: spinner, per-subdirectory note,
// processed/failed counters, elapsed time, and a progress bar. It consumes
// the engine's progress stream and quits when the channel closes.
type Model struct {
	updates  <-chan processor.ProgressUpdate
	onCancel func()

	sp         spinner.Model
	started    time.Time
	width      int
	total      int
	processed  int
	failed     int
	note       string
	cancelling bool
	quitting   bool
}

type doneMsg struct{}

type updateMsg processor.ProgressUpdate

// NewModel builds a progress model over updates. onCancel is invoked once
// when the user requests a stop (q or ctrl+c); it may block, so it is run
// off the update loop.
func NewModel(updates <-chan processor.ProgressUpdate, onCancel func()) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinStyle))
	return Model{updates: updates, onCancel: onCancel, sp: sp, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, listenForUpdates(m.updates))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.total += msg.TotalDelta
		m.processed += msg.ProcessedDelta
		m.failed += msg.FailedDelta
		if msg.Note != "" {
			m.note = msg.Note
		}
		return m, listenForUpdates(m.updates)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.cancelling && m.onCancel != nil {
				m.cancelling = true
				go m.onCancel()
			}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.processed+m.failed) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	status := m.note
	if m.cancelling {
		status = "cancelling, stopping gm processes..."
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)

	lines := []string{
		titleStyle.Render("me2comic"),
		m.sp.View() + " " + labelStyle.Render(status),
		labelStyle.Render(fmt.Sprintf("Pages: %d/%d", m.processed, m.total)) +
			dimStyle.Render(fmt.Sprintf("  failed:%d", m.failed)),
		dimStyle.Render(fmt.Sprintf("Elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, ratio)),
	}

	return strings.Join(lines, "\n")
}

func listenForUpdates(updates <-chan processor.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return doneMsg{}
		}
		return updateMsg(update)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	spinStyle  = lipgloss.NewStyle().Foreground(ColorAccent)
)
