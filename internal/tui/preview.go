// Package tui provides the interactive commit preview for v4apply-ui.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kvit-s/v4apply/internal/patch"
	"github.com/kvit-s/v4apply/internal/ui"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	fileStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	addStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	delStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hunkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type entry struct {
	path string
	diff string
}

// Model is the bubbletea model for the commit preview. After the
// program finishes, Accepted() reports whether the user chose apply.
type Model struct {
	entries  []entry
	selected int
	viewport viewport.Model
	ready    bool
	accepted bool
	quitting bool
	fuzz     patch.Fuzz
}

// New builds a preview over every change in the commit, in stable path
// order.
func New(commit patch.Commit, fuzz patch.Fuzz, contextLines int) (*Model, error) {
	m := &Model{fuzz: fuzz}
	for _, path := range sortedPaths(commit) {
		diff, err := ui.RenderDiff(path, commit[path], contextLines)
		if err != nil {
			return nil, fmt.Errorf("diff %s: %w", path, err)
		}
		if diff == "" {
			diff = "(no content change)\n"
		}
		m.entries = append(m.entries, entry{path: path, diff: diff})
	}
	return m, nil
}

// Accepted reports whether the user chose to apply the commit.
func (m *Model) Accepted() bool { return m.accepted }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "a", "enter":
			m.accepted = true
			m.quitting = true
			return m, tea.Quit
		case "tab", "l", "right":
			if len(m.entries) > 0 {
				m.selected = (m.selected + 1) % len(m.entries)
				m.setContent()
			}
		case "shift+tab", "h", "left":
			if len(m.entries) > 0 {
				m.selected = (m.selected - 1 + len(m.entries)) % len(m.entries)
				m.setContent()
			}
		}
	case tea.WindowSizeMsg:
		headerHeight := len(m.entries) + 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
			m.setContent()
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) setContent() {
	if !m.ready || len(m.entries) == 0 {
		return
	}
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(m.entries[m.selected].diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkStyle.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addStyle.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(delStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	title := fmt.Sprintf("Patch preview - %d file(s)", len(m.entries))
	if m.fuzz != 0 {
		title += fmt.Sprintf(" (fuzz: %s)", m.fuzz)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	for i, e := range m.entries {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + e.path))
		} else {
			b.WriteString(fileStyle.Render("  " + e.path))
		}
		b.WriteByte('\n')
	}
	if m.ready {
		b.WriteString(m.viewport.View())
		b.WriteByte('\n')
	}
	b.WriteString(helpStyle.Render("tab: next file • a/enter: apply • q: quit"))
	return b.String()
}

func sortedPaths(commit patch.Commit) []string {
	paths := make([]string, 0, len(commit))
	for p := range commit {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
