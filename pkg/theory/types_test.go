package theory

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input    string
		expected Quality
	}{
		{"major", Major},
		{"maj", Major},
		{"M", Major},
		{"m", Minor},
		{"Minor", Minor},
		{"7", Seventh},
		{"dom7", Seventh},
		{"maj7", MajorSeventh},
		{"M7", MajorSeventh},
		{"m7", MinorSeventh},
		{"minor-seventh", MinorSeventh},
		{"minor_seventh", MinorSeventh},
		{"MajorSeventh", MajorSeventh},
		{"6", MajorSixth},
		{"m6", MinorSixth},
		{"dim", Diminished},
		{"aug", Augmented},
		{"+", Augmented},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuality(tt.input)
			if err != nil {
				t.Fatalf("ParseQuality(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseQuality(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	if _, err := ParseQuality("sus4"); !errors.Is(err, ErrUnknownQuality) {
		t.Errorf("ParseQuality(sus4) error = %v, want ErrUnknownQuality", err)
	}
	if _, err := ParseQuality(""); !errors.Is(err, ErrUnknownQuality) {
		t.Errorf("ParseQuality(\"\") error = %v, want ErrUnknownQuality", err)
	}
}

func TestQualityNamesRoundTrip(t *testing.T) {
	qs := Qualities()
	if len(qs) != 9 {
		t.Fatalf("Qualities() returned %d, want 9", len(qs))
	}
	for _, q := range qs {
		got, err := ParseQuality(q.String())
		if err != nil || got != q {
			t.Errorf("ParseQuality(%q) = %v, %v", q.String(), got, err)
		}
	}
}

func TestParseInversion(t *testing.T) {
	tests := []struct {
		input    string
		expected Inversion
	}{
		{"", Root},
		{"root", Root},
		{"0", Root},
		{"First", First},
		{"1", First},
		{"second", Second},
		{"2nd", Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInversion(tt.input)
			if err != nil || got != tt.expected {
				t.Errorf("ParseInversion(%q) = %v, %v; want %v", tt.input, got, err, tt.expected)
			}
		})
	}

	if _, err := ParseInversion("third"); !errors.Is(err, ErrUnknownInversion) {
		t.Errorf("ParseInversion(third) error = %v", err)
	}
}

func TestChordJSON(t *testing.T) {
	data, err := json.Marshal(Chord{Root: 60, Quality: MinorSeventh, Inversion: First})
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	expected := `{"root":60,"quality":"minor-seventh","inversion":"first"}`
	if string(data) != expected {
		t.Errorf("Marshal = %s, want %s", data, expected)
	}

	if _, err := json.Marshal(Chord{Quality: Quality(99)}); err == nil {
		t.Error("marshalling an unknown quality should fail")
	}
}
