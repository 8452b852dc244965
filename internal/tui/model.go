package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ctxreduce/internal/compare"
)

// ComparePort is the TUI-facing subset of the comparison harness.
type ComparePort interface {
	Compare(query string) (compare.Comparison, error)
}

// Model is the Bubble Tea model for the interactive comparison view.
type Model struct {
	harness  ComparePort
	input    textinput.Model
	viewport viewport.Model
	result   *compare.Comparison
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model instance.
func New(harness ComparePort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{harness: harness, input: ti, viewport: vp, status: "Loaded. Type a query to compare reducers."}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 1
		totalFooterLines := 1
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentStrategy())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				res, err := m.harness.Compare(q)
				if err != nil {
					m.status = "Error: " + err.Error()
					m.result = nil
				} else {
					m.status = fmt.Sprintf("Comparison for %q — tab switches strategies", q)
					m.result = &res
					m.cursor = 0
				}
				m.viewport.SetContent(m.renderCurrentStrategy())
				return m, nil
			}
		case "tab", "right", "left":
			if m.result != nil && len(m.result.Entries) > 0 {
				n := len(m.result.Entries)
				if msg.String() == "left" {
					m.cursor = (m.cursor - 1 + n) % n
				} else {
					m.cursor = (m.cursor + 1) % n
				}
				m.viewport.SetContent(m.renderCurrentStrategy())
				return m, nil
			}
		case "up", "down", "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and the current strategy's reduction.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Context Reducer Comparison")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentStrategy() string {
	if m.result == nil || len(m.result.Entries) == 0 {
		return "No comparison yet."
	}
	e := m.result.Entries[m.cursor]
	t := e.Result.Timing
	title := titleStyle.Render(fmt.Sprintf("%s (%d/%d)", e.Strategy, m.cursor+1, len(m.result.Entries)))
	meta := metaStyle.Render(fmt.Sprintf(
		"total %.2f ms  matches %d  size %d chars",
		float64(t.Total.Microseconds())/1000, e.Matches, e.Chars,
	))
	if e.Result.Fallback {
		meta += "  " + fallbackStyle.Render("fallback")
	}
	return title + "\n" + meta + "\n\n" + e.Result.Text
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	fallbackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
