// Package tui provides an interactive chord and key explorer for the terminal
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/james-see/chordkey/pkg/theory"
)

var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")
	dimGray    = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(acidGreen).
			Bold(true).
			PaddingLeft(2)

	chordStyle = lipgloss.NewStyle().
			Foreground(acidYellow).
			Bold(true)

	chromaticStyle = lipgloss.NewStyle().
			Foreground(dimGray)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	OctaveDn  key.Binding
	OctaveUp  key.Binding
	Inversion key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.OctaveDn, k.OctaveUp, k.Inversion, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.OctaveDn, k.OctaveUp},
		{k.Inversion, k.Quit},
	}
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "prev quality")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next quality")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "root down")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "root up")),
	OctaveDn:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "octave down")),
	OctaveUp:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "octave up")),
	Inversion: key.NewBinding(key.WithKeys("i", "tab"), key.WithHelp("i", "inversion")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// Model is the explorer state
type Model struct {
	chord     theory.Chord
	qualities []theory.Quality
	qIndex    int
	help      help.Model
	width     int
}

// New creates an explorer starting on the given root, major, root position
func New(root theory.Pitch) Model {
	return Model{
		chord:     theory.Chord{Root: root, Quality: theory.Major},
		qualities: theory.Qualities(),
		help:      help.New(),
	}
}

// Chord returns the chord currently displayed
func (m Model) Chord() theory.Chord {
	return m.chord
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.qIndex = (m.qIndex + len(m.qualities) - 1) % len(m.qualities)
		case key.Matches(msg, keys.Down):
			m.qIndex = (m.qIndex + 1) % len(m.qualities)
		case key.Matches(msg, keys.Left):
			m.chord.Root--
		case key.Matches(msg, keys.Right):
			m.chord.Root++
		case key.Matches(msg, keys.OctaveDn):
			m.chord.Root -= 12
		case key.Matches(msg, keys.OctaveUp):
			m.chord.Root += 12
		case key.Matches(msg, keys.Inversion):
			m.chord.Inversion = (m.chord.Inversion + 1) % (theory.Second + 1)
		}
		m.chord.Quality = m.qualities[m.qIndex]
	}
	return m, nil
}

// View renders the explorer
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" CHORDKEY "))
	s.WriteString("\n")

	left := m.viewQualities()
	right := m.viewChord()
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxStyle.Render(left), "  ", boxStyle.Render(right)))
	s.WriteString("\n")
	s.WriteString(m.help.View(keys))

	return s.String()
}

func (m Model) viewQualities() string {
	var s strings.Builder
	for i, q := range m.qualities {
		if i == m.qIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", q)))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", q)))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) viewChord() string {
	var s strings.Builder

	c := m.chord
	k := theory.Key{Root: c.Root}
	s.WriteString(chordStyle.Render(c.Name()))
	s.WriteString(fmt.Sprintf("  (%s inversion)\n\n", c.Inversion))

	for _, n := range c.Notes() {
		line := fmt.Sprintf("%-5s %4d", n, int(n))
		if degree, ok := k.Position(n); ok {
			s.WriteString(fmt.Sprintf("%s  degree %d\n", line, degree))
		} else {
			s.WriteString(chromaticStyle.Render(line+"  chromatic") + "\n")
		}
	}

	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%s:", k.Name()))
	for _, n := range k.Notes() {
		s.WriteString(" " + n.Class())
	}
	return s.String()
}

// Run starts the TUI application
func Run(root theory.Pitch) error {
	p := tea.NewProgram(New(root), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
