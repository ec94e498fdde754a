// Package picker is an in-process selector built on Bubble Tea.
// It prints the same three fields as fzf with --print-query and --expect.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/oconnor663/founder/internal/runner"
)

// Exit statuses, matching fzf.
const (
	ExitAccepted = 0
	ExitNoMatch  = 1
	ExitAborted  = 130
)

const defaultHeight = 20

// candidatesMsg carries a batch of lines read from the selector input.
type candidatesMsg []string

// Model is a Bubble Tea model for picking one line out of a growing list.
type Model struct {
	// Candidates is every line received so far, in arrival order.
	Candidates []string

	// Filtered holds indices into Candidates, best match first.
	Filtered []int

	// FilterInput holds the query.
	FilterInput textinput.Model

	// Key is the expect key that ended the selection, in fzf notation.
	Key string

	// Accepted is set when the user pressed enter.
	Accepted bool

	// Aborted is set when the user pressed esc or ctrl+c.
	Aborted bool

	cursor    int
	height    int
	expectKey string
	teaKey    string

	normalStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	countStyle    lipgloss.Style
}

// NewModel creates a picker for req. The prompt and query come from req.
func NewModel(req runner.Request) Model {
	ti := textinput.New()
	ti.Prompt = req.Prompt
	ti.SetValue(req.Query)
	ti.CursorEnd()
	ti.Focus()

	return Model{
		FilterInput:   ti,
		height:        defaultHeight,
		expectKey:     req.ExpectKey,
		teaKey:        TeaKey(req.ExpectKey),
		normalStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		countStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// TeaKey converts an fzf key name such as "ctrl-t" to Bubble Tea's "ctrl+t".
func TeaKey(fzfKey string) string {
	return strings.ReplaceAll(fzfKey, "-", "+")
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case candidatesMsg:
		m.Candidates = append(m.Candidates, msg...)
		m.applyFilter()
		return m, nil

	case tea.WindowSizeMsg:
		m.height = max(1, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if m.teaKey != "" && key == m.teaKey {
			m.Key = m.expectKey
			return m, tea.Quit
		}

		switch key {
		case "ctrl+c", "esc":
			m.Aborted = true
			return m, tea.Quit

		case "enter":
			m.Accepted = true
			return m, tea.Quit

		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.Filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	oldQuery := m.FilterInput.Value()
	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	if m.FilterInput.Value() != oldQuery {
		m.cursor = 0
		m.applyFilter()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.FilterInput.View())
	b.WriteString("\n")
	b.WriteString(m.countStyle.Render(fmt.Sprintf("  %d/%d", len(m.Filtered), len(m.Candidates))))
	b.WriteString("\n")

	start := max(0, m.cursor-m.height+1)
	end := min(len(m.Filtered), start+m.height)
	for i := start; i < end; i++ {
		line := m.Candidates[m.Filtered[i]]
		if i == m.cursor {
			b.WriteString(m.selectedStyle.Render("> " + line))
		} else {
			b.WriteString(m.normalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Current returns the highlighted candidate, if any.
func (m Model) Current() (string, bool) {
	if len(m.Filtered) == 0 {
		return "", false
	}
	return m.Candidates[m.Filtered[m.cursor]], true
}

// Output renders the final state as query, key and selection lines, plus the
// exit status.
func (m Model) Output() ([]byte, int) {
	query := m.FilterInput.Value()
	current, ok := m.Current()

	switch {
	case m.Aborted:
		return nil, ExitAborted
	case m.Key != "":
		return []byte(query + "\n" + m.Key + "\n" + current + "\n"), ExitAccepted
	case m.Accepted && ok:
		return []byte(query + "\n\n" + current + "\n"), ExitAccepted
	default:
		return []byte(query + "\n\n"), ExitNoMatch
	}
}

// applyFilter ranks candidates against the current query.
func (m *Model) applyFilter() {
	query := m.FilterInput.Value()

	filtered := make([]int, 0, len(m.Candidates))
	if query == "" {
		for i := range m.Candidates {
			filtered = append(filtered, i)
		}
	} else {
		for _, match := range fuzzy.Find(query, m.Candidates) {
			filtered = append(filtered, match.Index)
		}
	}
	m.Filtered = filtered

	if m.cursor >= len(m.Filtered) {
		m.cursor = max(0, len(m.Filtered)-1)
	}
}
