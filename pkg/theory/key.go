package theory

import (
	"errors"
	"fmt"
)

// KeySize is the number of entries in a key: seven degrees plus the octave
const KeySize = 8

// ErrDegreeOutOfRange is returned when a key index falls outside [0, KeySize)
var ErrDegreeOutOfRange = errors.New("degree out of range")

// majorKeyOffsets spans one octave. The trailing 12 can never match a
// mod-12 offset but it keeps the octave in KeyNotes.
var majorKeyOffsets = [KeySize]int{0, 2, 4, 5, 7, 9, 11, 12}

// Key is a major key identified by its root pitch
type Key struct {
	Root Pitch `json:"root"`
}

// KeyNotes returns the major key on root, from root to octave inclusive
func KeyNotes(root Pitch) [KeySize]Pitch {
	var notes [KeySize]Pitch
	for i, o := range majorKeyOffsets {
		notes[i] = root + Pitch(o)
	}
	return notes
}

// NthNoteInKey returns KeyNotes(root)[n]
func NthNoteInKey(root Pitch, n int) (Pitch, error) {
	if n < 0 || n >= KeySize {
		return 0, fmt.Errorf("%w: %d not in [0,%d]", ErrDegreeOutOfRange, n, KeySize-1)
	}
	return KeyNotes(root)[n], nil
}

// PositionInKey returns the 1-based scale degree of note in the major key
// on root, ignoring octave. ok is false for the five chromatic pitches
// outside the key.
func PositionInKey(root, note Pitch) (degree int, ok bool) {
	offset := int(PitchClass(note - root))
	for i, o := range majorKeyOffsets {
		if o == offset {
			return i + 1, true
		}
	}
	return 0, false
}

// PitchClass returns p modulo 12 in [0, 11], also for negative p
func PitchClass(p Pitch) Pitch {
	pc := p % 12
	if pc < 0 {
		pc += 12
	}
	return pc
}

// Notes returns KeyNotes(k.Root)
func (k Key) Notes() [KeySize]Pitch {
	return KeyNotes(k.Root)
}

// Nth returns NthNoteInKey(k.Root, n)
func (k Key) Nth(n int) (Pitch, error) {
	return NthNoteInKey(k.Root, n)
}

// Position returns PositionInKey(k.Root, note)
func (k Key) Position(note Pitch) (int, bool) {
	return PositionInKey(k.Root, note)
}

// Contains reports whether note is diatonic to the key
func (k Key) Contains(note Pitch) bool {
	_, ok := k.Position(note)
	return ok
}

// Degrees maps each note to its scale degree, 0 for non-diatonic notes
func (k Key) Degrees(notes []Pitch) []int {
	res := make([]int, len(notes))
	for i, n := range notes {
		res[i], _ = k.Position(n)
	}
	return res
}

// Name returns e.g. "C major"
func (k Key) Name() string {
	return k.Root.Class() + " major"
}

func (k Key) String() string {
	return k.Name()
}
