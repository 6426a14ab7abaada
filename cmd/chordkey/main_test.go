package main

import (
	"bytes"
	"testing"

	"github.com/james-see/chordkey/pkg/theory"
)

func TestParseChordSpec(t *testing.T) {
	tests := []struct {
		spec     string
		expected theory.Chord
	}{
		{"C4", theory.Chord{Root: 60, Quality: theory.Major}},
		{"60:m7", theory.Chord{Root: 60, Quality: theory.MinorSeventh}},
		{"A3:m:first", theory.Chord{Root: 57, Quality: theory.Minor, Inversion: theory.First}},
		{"G3:7:2", theory.Chord{Root: 55, Quality: theory.Seventh, Inversion: theory.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := parseChordSpec(tt.spec)
			if err != nil {
				t.Fatalf("parseChordSpec(%q) error = %v", tt.spec, err)
			}
			if c != tt.expected {
				t.Errorf("parseChordSpec(%q) = %+v, want %+v", tt.spec, c, tt.expected)
			}
		})
	}
}

func TestParseChordSpecErrors(t *testing.T) {
	for _, spec := range []string{"", "Q4", "C4:sus2", "C4:maj:third", "C4:maj:first:x"} {
		t.Run(spec, func(t *testing.T) {
			if _, err := parseChordSpec(spec); err == nil {
				t.Errorf("parseChordSpec(%q) should fail", spec)
			}
		})
	}
}

func TestFormatPitches(t *testing.T) {
	got := formatPitches([]theory.Pitch{72, 64, 67})
	if got != "72(C5) 64(E4) 67(G4)" {
		t.Errorf("formatPitches() = %q", got)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		inversionName = "root"
		chordCmd.Flags().Lookup("inversion").Changed = false
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunChord(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"root position", []string{"chord", "C4"}, "C: 60(C4) 64(E4) 67(G4)\n"},
		{"inline inversion", []string{"chord", "C4:maj:first"}, "C/E: 72(C5) 64(E4) 67(G4)\n"},
		{"inline inversion after quality", []string{"chord", "C4", "maj:first"}, "C/E: 72(C5) 64(E4) 67(G4)\n"},
		{"inversion flag", []string{"chord", "C4", "maj", "--inversion", "second"}, "C/G: 72(C5) 76(E5) 67(G4)\n"},
		{"short flag with root spec", []string{"chord", "60:m7", "-i", "first"}, "Cm7/D#: 72(C5) 63(D#4) 67(G4) 70(A#4)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("chord %v error = %v", tt.args, err)
			}
			if got != tt.expected {
				t.Errorf("chord %v = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestRunChordConflictingInversion(t *testing.T) {
	if _, err := execute(t, "chord", "C4:maj:first", "--inversion", "second"); err == nil {
		t.Error("inline and flag inversions together should fail")
	}
}
