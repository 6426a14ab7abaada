// Package theory provides chord and major-key arithmetic over integer pitches
package theory

import (
	"errors"
	"fmt"
	"strings"
)

// Pitch is a chromatic semitone position. 60 is middle C (C4).
type Pitch int

// Quality is the interval structure of a chord
type Quality int

const (
	Major Quality = iota
	Minor
	Seventh // dominant seventh
	MajorSeventh
	MinorSeventh
	MajorSixth
	MinorSixth
	Diminished
	Augmented
)

// Inversion selects which chord tones are raised an octave
type Inversion int

const (
	Root Inversion = iota
	First
	Second
)

var (
	ErrUnknownQuality   = errors.New("unknown chord quality")
	ErrUnknownInversion = errors.New("unknown inversion")
)

type qualityInfo struct {
	name    string
	symbol  string
	aliases []string
	offsets []int
}

var qualities = [...]qualityInfo{
	Major:        {"major", "", []string{"maj", "M"}, []int{0, 4, 7}},
	Minor:        {"minor", "m", []string{"min", "-"}, []int{0, 3, 7}},
	Seventh:      {"seventh", "7", []string{"dom7", "dominant"}, []int{0, 4, 7, 10}},
	MajorSeventh: {"major-seventh", "maj7", []string{"M7", "^7"}, []int{0, 4, 7, 11}},
	MinorSeventh: {"minor-seventh", "m7", []string{"min7", "-7"}, []int{0, 3, 7, 10}},
	MajorSixth:   {"major-sixth", "6", []string{"maj6", "M6"}, []int{0, 4, 7, 9}},
	MinorSixth:   {"minor-sixth", "m6", []string{"min6", "-6"}, []int{0, 3, 7, 9}},
	Diminished:   {"diminished", "dim", []string{"o"}, []int{0, 3, 6}},
	Augmented:    {"augmented", "aug", []string{"+"}, []int{0, 4, 8}},
}

// Qualities returns every chord quality in declaration order
func Qualities() []Quality {
	res := make([]Quality, len(qualities))
	for i := range qualities {
		res[i] = Quality(i)
	}
	return res
}

// Valid reports whether q is one of the declared qualities
func (q Quality) Valid() bool {
	return q >= 0 && int(q) < len(qualities)
}

func (q Quality) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualities[q].name
}

// Symbol returns the chord-symbol suffix, e.g. "m7" for MinorSeventh.
// Major has an empty symbol.
func (q Quality) Symbol() string {
	if !q.Valid() {
		return "?"
	}
	return qualities[q].symbol
}

// Offsets returns a copy of the semitone offsets from the chord root
func (q Quality) Offsets() []int {
	info := q.mustInfo()
	res := make([]int, len(info.offsets))
	copy(res, info.offsets)
	return res
}

func (q Quality) mustInfo() qualityInfo {
	if !q.Valid() {
		panic(fmt.Sprintf("theory: %v: %d", ErrUnknownQuality, int(q)))
	}
	return qualities[q]
}

// MarshalText implements encoding.TextMarshaler
func (q Quality) MarshalText() ([]byte, error) {
	if !q.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownQuality, int(q))
	}
	return []byte(q.String()), nil
}

// ParseQuality accepts a quality name ("minor-seventh"), its symbol ("m7")
// or a common alias ("min7"). Names match case-insensitively; symbols are
// tried case-sensitively first so that "M7" and "m7" stay distinct.
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	for i, info := range qualities {
		if s == info.symbol && s != "" {
			return Quality(i), nil
		}
		for _, a := range info.aliases {
			if s == a {
				return Quality(i), nil
			}
		}
	}
	norm := strings.ReplaceAll(strings.ToLower(s), "_", "-")
	norm = strings.ReplaceAll(norm, " ", "-")
	for i, info := range qualities {
		if norm == info.name || norm == strings.ReplaceAll(info.name, "-", "") {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownQuality, s)
}

// Valid reports whether inv is one of the declared inversions
func (inv Inversion) Valid() bool {
	return inv >= Root && inv <= Second
}

func (inv Inversion) String() string {
	switch inv {
	case Root:
		return "root"
	case First:
		return "first"
	case Second:
		return "second"
	default:
		return fmt.Sprintf("Inversion(%d)", int(inv))
	}
}

// MarshalText implements encoding.TextMarshaler
func (inv Inversion) MarshalText() ([]byte, error) {
	if !inv.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInversion, int(inv))
	}
	return []byte(inv.String()), nil
}

// ParseInversion accepts root|first|second or 0|1|2. An empty string is Root.
func ParseInversion(s string) (Inversion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "root", "0":
		return Root, nil
	case "first", "1", "1st":
		return First, nil
	case "second", "2", "2nd":
		return Second, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownInversion, s)
}
