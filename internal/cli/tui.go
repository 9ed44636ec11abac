package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/vector"
	"github.com/matzehuels/stepsort/pkg/visualizer"
)

// Chart layout
const (
	defaultChartHeight = 16
	minChartHeight     = 4
	chrome             = 7 // Lines used by header, status and help
	barChar            = "█"
)

var (
	tuiHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuiStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	tuiFrameStyle  = lipgloss.NewStyle().Padding(1, 2)
)

// =============================================================================
// Key Bindings
// =============================================================================

type keyMap struct {
	Toggle     key.Binding
	Step       key.Binding
	RunToEnd   key.Binding
	Reset      key.Binding
	Shuffle    key.Binding
	Regenerate key.Binding
	Next       key.Binding
	Prev       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Step, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Step, k.RunToEnd},
		{k.Reset, k.Shuffle, k.Regenerate},
		{k.Next, k.Prev},
		{k.Help, k.Quit},
	}
}

var defaultKeys = keyMap{
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
	Step:       key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "step")),
	RunToEnd:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "finish")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Shuffle:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
	Regenerate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "new values")),
	Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next algorithm")),
	Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous algorithm")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// =============================================================================
// VisualizerModel - Interactive sorting animation
// =============================================================================

// tickMsg advances a running animation. Ticks carry the id of the animation
// that scheduled them so that stale ticks from a stopped run are dropped.
type tickMsg struct {
	id int
}

// VisualizerModel is the bubbletea model that animates a visualizer session.
type VisualizerModel struct {
	vis    *visualizer.Visualizer
	keys   keyMap
	help   help.Model
	delay  time.Duration
	tickID int
	width  int
	height int
	err    error
}

// NewVisualizerModel creates a model that advances v once per delay while
// running.
func NewVisualizerModel(v *visualizer.Visualizer, delay time.Duration) VisualizerModel {
	return VisualizerModel{
		vis:   v,
		keys:  defaultKeys,
		help:  help.New(),
		delay: delay,
	}
}

func (m VisualizerModel) Init() tea.Cmd {
	return nil
}

func (m VisualizerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tickMsg:
		if msg.id != m.tickID || m.vis.State() != visualizer.Running {
			return m, nil
		}
		m.vis.Tick()
		if m.vis.State() == visualizer.Running {
			return m, m.tick()
		}
	}
	return m, nil
}

func (m VisualizerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.vis.Toggle()
		if m.vis.State() == visualizer.Running {
			m.tickID++
			return m, m.tick()
		}
	case key.Matches(msg, m.keys.Step):
		m.vis.Stop()
		m.vis.Step()
	case key.Matches(msg, m.keys.RunToEnd):
		m.err = m.vis.RunToEnd()
	case key.Matches(msg, m.keys.Reset):
		m.vis.Reset()
	case key.Matches(msg, m.keys.Shuffle):
		m.vis.Shuffle()
	case key.Matches(msg, m.keys.Regenerate):
		m.vis.Regenerate()
	case key.Matches(msg, m.keys.Next):
		m.vis.SetAlgorithm(m.vis.Algorithm().Next())
	case key.Matches(msg, m.keys.Prev):
		m.vis.SetAlgorithm(m.vis.Algorithm().Prev())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m VisualizerModel) tick() tea.Cmd {
	id := m.tickID
	return tea.Tick(m.delay, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m VisualizerModel) View() string {
	var b strings.Builder

	b.WriteString(tuiHeaderStyle.Render(m.vis.Algorithm().Title()))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s · step %d · session %s",
		m.vis.State(), m.vis.Steps(), m.vis.ID())))
	b.WriteString("\n\n")

	b.WriteString(renderBars(m.vis.Sequence(), m.vis.Marks(), m.chartHeight(), m.columnWidth()))
	b.WriteString("\n\n")

	b.WriteString(tuiStatusStyle.Render(m.status()))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(StyleError.Render(errors.UserMessage(m.err)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return tuiFrameStyle.Render(b.String())
}

func (m VisualizerModel) status() string {
	if m.vis.State() == visualizer.Finished {
		return fmt.Sprintf("sorted %d values in %d steps", len(m.vis.Sequence()), m.vis.Steps())
	}
	special := m.vis.Special()
	if special == sorter.NoPair {
		return m.vis.Reason().String()
	}
	return fmt.Sprintf("%s %s", m.vis.Reason(), special)
}

func (m VisualizerModel) chartHeight() int {
	if m.height == 0 {
		return defaultChartHeight
	}
	return max(minChartHeight, m.height-chrome-4)
}

func (m VisualizerModel) columnWidth() int {
	n := len(m.vis.Sequence())
	if m.width == 0 || n == 0 {
		return 2
	}
	return min(3, max(1, (m.width-4)/n-1))
}

// renderBars draws seq as a vertical bar chart, one column per value scaled
// so that the largest value fills height rows.
func renderBars(seq []uint32, marks []visualizer.Mark, height, colWidth int) string {
	if len(seq) == 0 {
		return StyleDim.Render("(empty)")
	}
	peak := max(vector.Max(seq), 1)
	bars := make([]int, len(seq))
	for i, v := range seq {
		bars[i] = int((uint64(v)*uint64(height) + uint64(peak) - 1) / uint64(peak))
	}

	full := strings.Repeat(barChar, colWidth)
	blank := strings.Repeat(" ", colWidth)
	rows := make([]string, height)
	for r := range height {
		level := height - r
		var line strings.Builder
		for i, h := range bars {
			if i > 0 {
				line.WriteByte(' ')
			}
			if h < level {
				line.WriteString(blank)
				continue
			}
			mark := visualizer.MarkDefault
			if i < len(marks) {
				mark = marks[i]
			}
			line.WriteString(markStyles[mark].Render(full))
		}
		rows[r] = line.String()
	}
	return strings.Join(rows, "\n")
}
