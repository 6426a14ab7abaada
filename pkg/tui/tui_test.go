package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/james-see/chordkey/pkg/theory"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestNew(t *testing.T) {
	m := New(60)
	c := m.Chord()
	if c.Root != 60 || c.Quality != theory.Major || c.Inversion != theory.Root {
		t.Errorf("New(60).Chord() = %+v", c)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		msgs     []tea.Msg
		expected theory.Chord
	}{
		{"down selects minor", []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}}, theory.Chord{Root: 60, Quality: theory.Minor}},
		{"up wraps to augmented", []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}}, theory.Chord{Root: 60, Quality: theory.Augmented}},
		{"right raises root", []tea.Msg{tea.KeyMsg{Type: tea.KeyRight}, runes("l")}, theory.Chord{Root: 62, Quality: theory.Major}},
		{"left lowers root", []tea.Msg{tea.KeyMsg{Type: tea.KeyLeft}}, theory.Chord{Root: 59, Quality: theory.Major}},
		{"octaves", []tea.Msg{runes("["), runes("["), runes("]")}, theory.Chord{Root: 48, Quality: theory.Major}},
		{"inversion cycles", []tea.Msg{runes("i"), runes("i")}, theory.Chord{Root: 60, Quality: theory.Major, Inversion: theory.Second}},
		{"inversion wraps", []tea.Msg{runes("i"), runes("i"), runes("i")}, theory.Chord{Root: 60, Quality: theory.Major}},
		{"window size is ignored", []tea.Msg{tea.WindowSizeMsg{Width: 80, Height: 24}}, theory.Chord{Root: 60, Quality: theory.Major}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(New(60), tt.msgs...)
			if m.Chord() != tt.expected {
				t.Errorf("Chord() = %+v, want %+v", m.Chord(), tt.expected)
			}
		})
	}
}

func TestQuit(t *testing.T) {
	_, cmd := New(60).Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestView(t *testing.T) {
	m := press(New(60), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	view := m.View()

	for _, want := range []string{"Cm7", "C4", "D#4", "chromatic", "degree 5", "C major"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestHelpLabels(t *testing.T) {
	pairs := [][2]string{
		{"↑ prev quality", "↓ next quality"},
		{"← root down", "→ root up"},
		{"[ octave down", "] octave up"},
	}

	view := New(60).View()
	for _, pair := range pairs {
		for _, want := range pair {
			if !strings.Contains(view, want) {
				t.Errorf("View() help missing %q", want)
			}
		}
	}

	for _, b := range keys.ShortHelp() {
		if strings.Contains(b.Help().Key, "/") {
			t.Errorf("help key %q should name a single key", b.Help().Key)
		}
	}
}
