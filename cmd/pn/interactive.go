package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pnpm/pn/internal/manifest"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	commandStyle  = lipgloss.NewStyle().Faint(true)
)

type scriptItem struct {
	name    string
	command string
}

// pickerModel lets the user filter the scripts by name and pick one.
type pickerModel struct {
	filter  textinput.Model
	items   []scriptItem
	matches []scriptItem
	cursor  int
	chosen  string
	done    bool
	aborted bool
}

func newPickerModel(scripts manifest.Scripts) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()

	m := pickerModel{filter: ti}
	for name, command := range scripts.All() {
		m.items = append(m.items, scriptItem{name: name, command: command})
	}
	m.matches = m.items
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.chosen = m.matches[m.cursor].name
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

// refilter keeps the scripts whose name contains the filter text, ignoring
// case, and clamps the cursor to the result.
func (m *pickerModel) refilter() {
	needle := strings.ToLower(m.filter.Value())
	m.matches = m.matches[:0:0]
	for _, it := range m.items {
		if strings.Contains(strings.ToLower(it.name), needle) {
			m.matches = append(m.matches, it)
		}
	}
	if m.cursor >= len(m.matches) {
		m.cursor = max(len(m.matches)-1, 0)
	}
}

func (m pickerModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select a script") + "\n")
	b.WriteString(m.filter.View() + "\n")
	if len(m.matches) == 0 {
		b.WriteString(errStyle.Render("no matching scripts") + "\n")
		return b.String()
	}
	for i, it := range m.matches {
		if i == m.cursor {
			fmt.Fprintf(&b, "> %s  %s\n", selectedStyle.Render(it.name), commandStyle.Render(it.command))
		} else {
			fmt.Fprintf(&b, "  %s  %s\n", it.name, commandStyle.Render(it.command))
		}
	}
	return b.String()
}

// promptScript shows the picker on stderr, leaving stdout to the script.
func promptScript(scripts manifest.Scripts) (string, error) {
	result, err := tea.NewProgram(newPickerModel(scripts), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return "", err
	}
	rm := result.(pickerModel)
	if rm.aborted || !rm.done {
		return "", fmt.Errorf("user aborted")
	}
	return rm.chosen, nil
}
