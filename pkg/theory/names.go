package theory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPitch is returned by ParsePitch
var ErrInvalidPitch = errors.New("invalid pitch")

// DefaultOctave is used by ParsePitch when a note name has no octave
const DefaultOctave = 4

var classNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// natural note letter -> pitch class
var letters = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// Class returns the pitch-class name with sharps, e.g. "F#"
func (p Pitch) Class() string {
	return classNames[PitchClass(p)]
}

// Octave returns the scientific octave number, C4 = 60
func (p Pitch) Octave() int {
	o := int(p) / 12
	if p < 0 && int(p)%12 != 0 {
		o--
	}
	return o - 1
}

// String returns the scientific pitch name, e.g. "C4" for 60 and "B-2" for -1
func (p Pitch) String() string {
	return p.Class() + strconv.Itoa(p.Octave())
}

// ParsePitch accepts an integer ("60", "-3") or a note name such as "C4",
// "F#3", "Bb-1" or "e". Names without an octave use DefaultOctave.
func ParsePitch(s string) (Pitch, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPitch)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return Pitch(n), nil
	}

	pc, ok := letters[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPitch, s)
	}
	rest := s[1:]
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			pc++
		} else {
			pc--
		}
		rest = rest[1:]
	}

	octave := DefaultOctave
	if rest != "" {
		o, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("%w: bad octave in %q", ErrInvalidPitch, s)
		}
		octave = o
	}
	return Pitch((octave+1)*12 + pc), nil
}

// MustParsePitch is like ParsePitch but panics on error
func MustParsePitch(s string) Pitch {
	p, err := ParsePitch(s)
	if err != nil {
		panic(err)
	}
	return p
}
