package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jargon/internal/harness"
)

type progressModel struct {
	title     string
	events    <-chan harness.Event
	spinner   spinner.Model
	prog      progress.Model
	items     []caseItem
	index     map[string]int
	groupNote string
	width     int
	done      bool
}

type caseItem struct {
	key    string
	status harness.Status
}

type eventMsg harness.Event
type doneMsg struct{}

// CaseKey identifies a case across groups.
func CaseKey(group, name string) string { return group + "/" + name }

// NewProgressModel returns a Bubble Tea model that renders test-case
// progress. cases are CaseKey values in run order.
func NewProgressModel(title string, cases []string, events <-chan harness.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]caseItem, 0, len(cases))
	index := make(map[string]int, len(cases))
	for i, key := range cases {
		items = append(items, caseItem{key: key, status: harness.StatusQueued})
		index[key] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(harness.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.groupNote != "" {
		header = fmt.Sprintf("%s (%s)", header, m.groupNote)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 10
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%10s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.key, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev harness.Event) tea.Cmd {
	if ev.Case == "" {
		m.groupNote = groupLabel(ev)
		return nil
	}
	idx, ok := m.index[CaseKey(ev.Group, ev.Case)]
	if !ok {
		return nil
	}
	m.items[idx].status = ev.Status
	return m.prog.SetPercent(m.fraction())
}

// fraction is the share of cases with a final outcome.
func (m *progressModel) fraction() float64 {
	if len(m.items) == 0 {
		return 0
	}
	done := 0
	for _, item := range m.items {
		if item.status.Done() {
			done++
		}
	}
	return float64(done) / float64(len(m.items))
}

func groupLabel(ev harness.Event) string {
	switch {
	case ev.Stage == harness.StageGroup && ev.Status == harness.StatusRunning:
		return "group " + ev.Group
	case ev.Status == harness.StatusFailed:
		return fmt.Sprintf("group %s: %s failed", ev.Group, ev.Stage)
	default:
		return fmt.Sprintf("group %s %s", ev.Group, ev.Status)
	}
}

func styleStatus(status harness.Status) lipgloss.Style {
	switch status {
	case harness.StatusPassed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case harness.StatusFailed, harness.StatusFaulted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case harness.StatusSkipped:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case harness.StatusRunning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
